package snake

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

// scriptedRand returns queued values, then falls back to a seeded source.
type scriptedRand struct {
	queue    []int
	fallback *rand.Rand
	calls    int
}

func newScriptedRand(values ...int) *scriptedRand {
	return &scriptedRand{queue: values, fallback: rand.New(rand.NewSource(1))}
}

func (r *scriptedRand) Intn(n int) int {
	r.calls++
	if len(r.queue) > 0 {
		v := r.queue[0]
		r.queue = r.queue[1:]
		return v % n
	}
	return r.fallback.Intn(n)
}

func startedWorld(t *testing.T, size, spawn int, rng RandomSource, opts ...Option) *World {
	t.Helper()
	w := NewWorld(size, spawn, rng, opts...)
	if err := w.StartGame(); err != nil {
		t.Fatalf("StartGame() failed: %v", err)
	}
	return w
}

func TestWorldDimensions(t *testing.T) {
	for _, size := range []int{2, 3, 8, 20} {
		w := NewWorld(size, 2, newScriptedRand())
		if w.Width() != size || w.Height() != size {
			t.Errorf("size %d: Width/Height = %d/%d", size, w.Width(), w.Height())
		}
		if w.Capacity() != size*size {
			t.Errorf("size %d: Capacity = %d", size, w.Capacity())
		}
	}

	w := NewWorld(1, 2, newScriptedRand())
	if w.Width() != 2 {
		t.Errorf("size 1 should clamp to 2, got %d", w.Width())
	}
}

func TestWorldInitialState(t *testing.T) {
	w := NewWorld(8, 27, newScriptedRand(0))

	if !slices.Equal(w.SnakeCells(), []int{27, 26, 25}) {
		t.Errorf("SnakeCells() = %v, expected [27 26 25]", w.SnakeCells())
	}
	if w.SnakeHeadIndex() != 27 {
		t.Errorf("SnakeHeadIndex() = %d, expected 27", w.SnakeHeadIndex())
	}
	if w.Heading() != DirDown {
		t.Errorf("Heading() = %s, expected down", w.Heading())
	}
	if w.RewardCell() != 0 {
		t.Errorf("RewardCell() = %d, expected 0", w.RewardCell())
	}
	if _, ok := w.GameStatus(); ok {
		t.Error("GameStatus() should be absent before StartGame")
	}
}

func TestWorldInitialRewardAvoidsBody(t *testing.T) {
	// 27, 26, 25 are occupied; the fourth draw is free.
	rng := newScriptedRand(27, 26, 25, 40)
	w := NewWorld(8, 27, rng)

	if w.RewardCell() != 40 {
		t.Errorf("RewardCell() = %d, expected 40", w.RewardCell())
	}
	if rng.calls != 4 {
		t.Errorf("expected 4 draws, got %d", rng.calls)
	}
}

func TestWorldSpawnPreconditions(t *testing.T) {
	tests := []struct {
		name        string
		size, spawn int
	}{
		{"spawn underflows body", 8, 1},
		{"spawn negative", 8, -1},
		{"spawn past capacity", 4, 16},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("NewWorld(%d, %d) should panic", tc.size, tc.spawn)
				}
			}()
			NewWorld(tc.size, tc.spawn, newScriptedRand())
		})
	}
}

func TestWithInitialLengthRejectsShortBody(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("WithInitialLength(1) should panic")
		}
	}()
	WithInitialLength(1)
}

func TestStartGameTwice(t *testing.T) {
	w := NewWorld(8, 27, newScriptedRand(0))

	if err := w.StartGame(); err != nil {
		t.Fatalf("first StartGame() failed: %v", err)
	}
	if err := w.StartGame(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second StartGame() = %v, expected ErrAlreadyStarted", err)
	}
	if status, ok := w.GameStatus(); !ok || status != StatusRunning {
		t.Errorf("GameStatus() = %s, %v; expected running", status, ok)
	}
}

func TestStepMovesDown(t *testing.T) {
	w := startedWorld(t, 8, 27, newScriptedRand(0))
	w.Step()

	if w.SnakeHeadIndex() != 35 {
		t.Errorf("head = %d, expected 35", w.SnakeHeadIndex())
	}
	if !slices.Equal(w.SnakeCells(), []int{35, 27, 26}) {
		t.Errorf("body = %v, expected [35 27 26]", w.SnakeCells())
	}
}

func TestStepWrapsRight(t *testing.T) {
	w := startedWorld(t, 4, 3, newScriptedRand(15))
	if !w.SetDirection(DirRight) {
		t.Fatal("turn right should be accepted")
	}
	w.Step()

	if w.SnakeHeadIndex() != 0 {
		t.Errorf("head = %d, expected 0 after wrapping right from column 3", w.SnakeHeadIndex())
	}
}

func TestStepWrapsUp(t *testing.T) {
	w := startedWorld(t, 4, 2, newScriptedRand(15))
	// Head on cell 0 with the body trailing to the right.
	w.snake.body = []int{0, 1, 2}
	if !w.SetDirection(DirUp) {
		t.Fatal("turn up should be accepted")
	}
	w.Step()

	if w.SnakeHeadIndex() != 12 {
		t.Errorf("head = %d, expected 12 after wrapping up from row 0", w.SnakeHeadIndex())
	}
}

func TestSetDirectionReversalGuard(t *testing.T) {
	w := startedWorld(t, 8, 27, newScriptedRand(0))

	if w.SetDirection(DirLeft) {
		t.Fatal("reversal into the neck should be rejected")
	}
	if w.Heading() != DirDown {
		t.Errorf("heading = %s after rejected turn", w.Heading())
	}
	if _, ok := w.snake.PendingHead(); ok {
		t.Error("rejected turn should leave no pending head")
	}

	w.Step()
	if w.SnakeHeadIndex() != 35 {
		t.Errorf("head = %d, expected 35 (unchanged heading)", w.SnakeHeadIndex())
	}
}

func TestRejectedTurnKeepsPendingHead(t *testing.T) {
	w := startedWorld(t, 8, 27, newScriptedRand(0))

	if !w.SetDirection(DirRight) {
		t.Fatal("turn right should be accepted")
	}
	if w.SetDirection(DirLeft) {
		t.Fatal("reversal into the neck should be rejected")
	}

	if w.Heading() != DirRight {
		t.Errorf("heading = %s, expected right", w.Heading())
	}
	if next, ok := w.snake.PendingHead(); !ok || next != 28 {
		t.Errorf("PendingHead() = (%d, %v), expected (28, true)", next, ok)
	}

	w.Step()
	if w.SnakeHeadIndex() != 28 {
		t.Errorf("head = %d, expected 28", w.SnakeHeadIndex())
	}
}

func TestSetDirectionInvalid(t *testing.T) {
	w := NewWorld(8, 27, newScriptedRand(0))
	if w.SetDirection(Direction(42)) {
		t.Error("invalid direction should be rejected")
	}
}

func TestSetDirectionLastAcceptedWins(t *testing.T) {
	w := startedWorld(t, 8, 27, newScriptedRand(0))
	w.SetDirection(DirRight)
	w.SetDirection(DirUp)
	w.Step()

	if w.SnakeHeadIndex() != 19 {
		t.Errorf("head = %d, expected 19 after turning up", w.SnakeHeadIndex())
	}
	if w.Heading() != DirUp {
		t.Errorf("heading = %s, expected up", w.Heading())
	}
}

func TestStepNoOpUnlessRunning(t *testing.T) {
	w := NewWorld(8, 27, newScriptedRand(0))
	before := w.SnakeCells()
	reward := w.RewardCell()

	w.Step()
	w.Step()

	if !slices.Equal(w.SnakeCells(), before) {
		t.Errorf("body changed before StartGame: %v", w.SnakeCells())
	}
	if w.RewardCell() != reward || w.Heading() != DirDown {
		t.Error("reward or heading changed before StartGame")
	}
}

func TestStepNoOpAfterTerminal(t *testing.T) {
	w := startedWorld(t, 8, 27, newScriptedRand(0))
	w.status = StatusLost
	before := w.SnakeCells()

	w.Step()

	if !slices.Equal(w.SnakeCells(), before) {
		t.Error("Step after a terminal status should not move the snake")
	}
}

func TestStepGrowth(t *testing.T) {
	// First reward at 35 (directly below the head), next at 5.
	rng := newScriptedRand(35, 5)
	w := startedWorld(t, 8, 27, rng)
	w.Step()

	if w.SnakeLen() != 4 {
		t.Fatalf("SnakeLen() = %d, expected 4", w.SnakeLen())
	}
	if !slices.Equal(w.SnakeCells(), []int{35, 27, 26, 27}) {
		t.Errorf("body = %v, expected [35 27 26 27]", w.SnakeCells())
	}
	if w.RewardCell() != 5 {
		t.Errorf("RewardCell() = %d, expected 5", w.RewardCell())
	}
}

func TestStepGrowthRewardAvoidsBody(t *testing.T) {
	// After eating at 35 the body is [35 27 26]; draws 35, 27 and 26 are rejected.
	rng := newScriptedRand(35, 35, 27, 26, 9)
	w := startedWorld(t, 8, 27, rng)
	w.Step()

	if w.RewardCell() != 9 {
		t.Errorf("RewardCell() = %d, expected 9", w.RewardCell())
	}
	if slices.Contains(w.SnakeCells(), w.RewardCell()) {
		t.Error("reward placed on the body")
	}
}

func TestGrowthInvariantOverLongRun(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := startedWorld(t, 6, 14, rng)
	dirs := Directions()

	for i := 0; i < 2000; i++ {
		w.SetDirection(dirs[rng.Intn(len(dirs))])
		before := w.SnakeLen()
		reward := w.RewardCell()
		w.Step()

		ate := w.SnakeHeadIndex() == reward
		switch {
		case ate && w.SnakeLen() != before+1:
			t.Fatalf("step %d: ate but length %d -> %d", i, before, w.SnakeLen())
		case !ate && w.SnakeLen() != before:
			t.Fatalf("step %d: length changed without eating", i)
		}
		if w.HasReward() && slices.Contains(w.SnakeCells(), w.RewardCell()) {
			t.Fatalf("step %d: reward %d on body %v", i, w.RewardCell(), w.SnakeCells())
		}
		if w.SnakeLen() >= w.Capacity() {
			break
		}
	}
}

func TestFillingGridClearsReward(t *testing.T) {
	// 2x2 grid, body [2 1 0], reward must be 3.
	w := startedWorld(t, 2, 2, newScriptedRand(3))
	if w.RewardCell() != 3 {
		t.Fatalf("RewardCell() = %d, expected 3", w.RewardCell())
	}

	w.SetDirection(DirRight) // 2 -> 3
	w.Step()

	if w.HasReward() || w.RewardCell() != NoReward {
		t.Errorf("RewardCell() = %d, expected NoReward", w.RewardCell())
	}
	if w.SnakeLen() != 4 {
		t.Errorf("SnakeLen() = %d, expected 4", w.SnakeLen())
	}
	if status, _ := w.GameStatus(); status != StatusRunning {
		t.Errorf("status = %s, expected running without terminal rules", status)
	}
}

func TestTerminalRulesWin(t *testing.T) {
	w := startedWorld(t, 2, 2, newScriptedRand(3), WithTerminalRules(true))
	w.SetDirection(DirRight)
	w.Step()

	if status, ok := w.GameStatus(); !ok || status != StatusWon {
		t.Errorf("GameStatus() = %s, %v; expected won", status, ok)
	}
}

func TestTerminalRulesLose(t *testing.T) {
	w := startedWorld(t, 8, 20, newScriptedRand(63), WithTerminalRules(true), WithInitialLength(5))
	// Body [20 19 18 17 16] in row 2. Curl the head back onto the body:
	// down to 28, left to 27, up to 19.
	w.Step()
	w.SetDirection(DirLeft)
	w.Step()
	w.SetDirection(DirUp)
	w.Step()

	if status, _ := w.GameStatus(); status != StatusLost {
		t.Fatalf("GameStatus() = %s, expected lost; body %v", status, w.SnakeCells())
	}

	before := w.SnakeCells()
	w.Step()
	if !slices.Equal(before, w.SnakeCells()) {
		t.Error("lost world should not move")
	}
}

func TestSelfOverlapIgnoredWithoutTerminalRules(t *testing.T) {
	w := startedWorld(t, 8, 20, newScriptedRand(63), WithInitialLength(5))
	w.Step()
	w.SetDirection(DirLeft)
	w.Step()
	w.SetDirection(DirUp)
	w.Step()

	if status, _ := w.GameStatus(); status != StatusRunning {
		t.Errorf("GameStatus() = %s, expected running", status)
	}
	if w.SnakeHeadIndex() != 19 {
		t.Errorf("head = %d, expected 19", w.SnakeHeadIndex())
	}
}

func TestStatusStrings(t *testing.T) {
	if StatusNotStarted != 0 || StatusRunning != 1 || StatusWon != 2 || StatusLost != 3 {
		t.Error("status discriminants changed")
	}
	if !StatusWon.Terminal() || !StatusLost.Terminal() || StatusRunning.Terminal() {
		t.Error("Terminal() misreports")
	}
	if StatusLost.String() != "lost" {
		t.Errorf("StatusLost.String() = %q", StatusLost.String())
	}
}

func TestPlaceRewardSkipsOccupied(t *testing.T) {
	rng := newScriptedRand(1, 2, 1, 3)
	got := PlaceReward(rng, 4, []int{0, 1, 2})
	if got != 3 {
		t.Errorf("PlaceReward() = %d, expected 3", got)
	}
	if rng.calls != 4 {
		t.Errorf("expected 4 draws, got %d", rng.calls)
	}
}

func TestPlaceRewardEmptyBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		if got := PlaceReward(rng, 9, nil); got < 0 || got >= 9 {
			t.Fatalf("PlaceReward() = %d, outside [0, 9)", got)
		}
	}
}
