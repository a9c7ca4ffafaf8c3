// Package headless drives a snake game without a terminal: one move per
// step, directions from a scripted move string, optional text frames.
package headless

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wrapsnake/internal/config"
	"github.com/vovakirdan/wrapsnake/internal/core"
	"github.com/vovakirdan/wrapsnake/internal/games/snake"
)

// ErrSizeRequired is returned when the board would be fitted to a screen.
var ErrSizeRequired = errors.New("headless: grid.size must be set")

// Options configures a run.
type Options struct {
	Variant snake.Variant
	Config  config.SnakeConfig
	Steps   int
	Seed    int64
	// Moves holds one character per step: u, d, l, r turn; '.' keeps the heading.
	// Steps past the end of Moves keep the heading.
	Moves  string
	Frames bool      // Write the board after every step
	Out    io.Writer // Frame destination, required with Frames
	Logger *log.Logger
}

// Result summarises a run.
type Result struct {
	Steps    int // Steps taken, fewer than requested if the game ended
	Rewards  int
	Rejected int // Turns refused as reversals
	Final    snake.Snapshot
	Board    string
}

// ParseMoves turns a move string into per-step actions.
func ParseMoves(moves string) ([]core.Action, error) {
	actions := make([]core.Action, 0, len(moves))
	for i, r := range strings.ToLower(moves) {
		switch r {
		case 'u':
			actions = append(actions, core.ActionUp)
		case 'd':
			actions = append(actions, core.ActionDown)
		case 'l':
			actions = append(actions, core.ActionLeft)
		case 'r':
			actions = append(actions, core.ActionRight)
		case '.':
			actions = append(actions, core.ActionNone)
		default:
			return nil, fmt.Errorf("headless: unknown move %q at position %d", r, i)
		}
	}
	return actions, nil
}

// Run plays opts.Steps moves and stops early when the game ends.
func Run(opts Options) (Result, error) {
	cfg := opts.Config
	cfg.Snake.MoveEveryTicks = 1
	if cfg.Grid.Size == config.AutoSize {
		return Result{}, ErrSizeRequired
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if opts.Frames && opts.Out == nil {
		return Result{}, errors.New("headless: frames need an output writer")
	}

	actions, err := ParseMoves(opts.Moves)
	if err != nil {
		return Result{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	variant := opts.Variant
	if variant == "" {
		variant = snake.VariantStandard
	}

	size := cfg.Grid.Size
	game := snake.New(variant, cfg)
	game.Reset(core.RuntimeConfig{
		ScreenW:  size*2 + 2,
		ScreenH:  size + 4,
		TickRate: 1,
		Seed:     opts.Seed,
	})
	world := game.World()
	if world == nil {
		return Result{}, fmt.Errorf("headless: no world for a %dx%d board", size, size)
	}

	var res Result
	prev := game.Snapshot()
	for i := range opts.Steps {
		in := core.NewInputFrame()
		if i == 0 {
			in.Set(core.ActionConfirm)
		}
		if i < len(actions) {
			if dir, ok := snake.DirectionForAction(actions[i]); ok && !world.SetDirection(dir) {
				res.Rejected++
				logger.Debug("turn rejected", "step", i+1, "heading", world.Heading(), "requested", dir)
			}
		}

		step := game.Step(in)
		snap := game.Snapshot()
		res.Steps++

		if step.Ate {
			res.Rewards++
			logger.Info("reward eaten", "step", i+1, "length", len(snap.Body), "next", snap.Reward)
		}
		if snap.Status != prev.Status {
			logger.Info("status changed", "step", i+1, "from", prev.Status, "to", snap.Status)
		}
		if opts.Frames {
			fmt.Fprintf(opts.Out, "step %d  score %d  %s\n%s\n\n", i+1, snap.Score, snap.Status, world)
		}

		prev = snap
		if snap.Status.Terminal() {
			break
		}
	}

	res.Final = prev
	res.Board = world.String()
	return res, nil
}
