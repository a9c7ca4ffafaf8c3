package headless

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/wrapsnake/internal/config"
	"github.com/vovakirdan/wrapsnake/internal/core"
	"github.com/vovakirdan/wrapsnake/internal/games/snake"
)

func boardConfig(size int) config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Size = size
	return cfg
}

func TestParseMoves(t *testing.T) {
	got, err := ParseMoves("uD.lR")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	want := []core.Action{core.ActionUp, core.ActionDown, core.ActionNone, core.ActionLeft, core.ActionRight}
	if !slices.Equal(got, want) {
		t.Errorf("ParseMoves = %v, want %v", got, want)
	}

	if _, err := ParseMoves("ux"); err == nil {
		t.Error("expected error for unknown move")
	}
}

func TestRunClassicPlaysEveryStep(t *testing.T) {
	res, err := Run(Options{
		Variant: snake.VariantClassic,
		Config:  boardConfig(5),
		Steps:   20,
		Seed:    7,
		// Head spawns at 12 with the neck at 11, so the first "l" is a
		// reversal; after two moves down "r" is a legal turn.
		Moves: "l.r",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Steps != 20 {
		t.Errorf("Steps = %d, want 20", res.Steps)
	}
	if res.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", res.Rejected)
	}
	if res.Final.Status != snake.StatusRunning {
		t.Errorf("Status = %v, want running", res.Final.Status)
	}
	if res.Final.Heading != snake.DirRight {
		t.Errorf("Heading = %v, want right", res.Final.Heading)
	}
	if got, want := len(res.Final.Body), 3+res.Rewards; got != want {
		t.Errorf("body length = %d, want %d", got, want)
	}
	if res.Final.Score != res.Rewards {
		t.Errorf("Score = %d, want %d", res.Final.Score, res.Rewards)
	}
	if strings.Count(res.Board, "H") != 1 {
		t.Errorf("board should show one head:\n%s", res.Board)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	opts := Options{Config: boardConfig(6), Steps: 60, Seed: 42, Moves: "rrdddlluuurrr"}

	a, err := Run(opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := Run(opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !slices.Equal(a.Final.Body, b.Final.Body) || a.Final.Reward != b.Final.Reward ||
		a.Final.Status != b.Final.Status || a.Steps != b.Steps {
		t.Errorf("runs differ:\n%+v\n%+v", a.Final, b.Final)
	}
	if a.Board != b.Board {
		t.Errorf("boards differ:\n%s\n\n%s", a.Board, b.Board)
	}
}

func TestRunWritesFrames(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(Options{Config: boardConfig(4), Steps: 3, Seed: 1, Frames: true, Out: &out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	text := out.String()
	for _, want := range []string{"step 1", "step 2", "step 3"} {
		if !strings.Contains(text, want) {
			t.Errorf("frames missing %q:\n%s", want, text)
		}
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	tooLong := boardConfig(3)
	tooLong.Snake.InitialLength = 9

	tests := []struct {
		name string
		opts Options
	}{
		{"auto size", Options{Config: config.DefaultSnakeConfig(), Steps: 1}},
		{"body does not fit", Options{Config: tooLong, Steps: 1}},
		{"bad moves", Options{Config: boardConfig(4), Steps: 1, Moves: "z"}},
		{"frames without writer", Options{Config: boardConfig(4), Steps: 1, Frames: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Run(Options{Config: config.DefaultSnakeConfig()}); !errors.Is(err, ErrSizeRequired) {
		t.Errorf("auto size error = %v, want ErrSizeRequired", err)
	}
}
