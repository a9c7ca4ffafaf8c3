package snake

import (
	"errors"
	"fmt"
)

// Status is the game status. Values are fixed.
type Status int

const (
	StatusNotStarted Status = 0
	StatusRunning    Status = 1
	StatusWon        Status = 2
	StatusLost       Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further steps can change the world.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// DefaultInitialLength is the body length a World starts with.
const DefaultInitialLength = 3

// ErrAlreadyStarted is returned by StartGame on a world that has left NotStarted.
var ErrAlreadyStarted = errors.New("snake: game already started")

// Option configures a World.
type Option func(*World)

// WithInitialLength sets the starting body length. It panics below 2,
// since the reversal guard needs a neck.
func WithInitialLength(n int) Option {
	if n < 2 {
		panic(fmt.Sprintf("snake: initial length %d must be at least 2", n))
	}
	return func(w *World) {
		w.initialLength = n
	}
}

// WithTerminalRules makes the world end the game: running into the body
// loses, filling the grid wins. Without it Won and Lost are never reached.
func WithTerminalRules(enabled bool) Option {
	return func(w *World) {
		w.terminalRules = enabled
	}
}

// World owns the grid, the snake, the reward cell and the game status.
// It is not safe for concurrent use; a single driver calls SetDirection
// and Step in sequence.
type World struct {
	grid   Grid
	snake  *Snake
	rng    RandomSource
	reward int
	status Status

	initialLength int
	terminalRules bool
}

// NewWorld creates a world on a size*size grid (size clamped to 2) with the
// snake's head at spawn, and places the first reward using rng.
// It panics if spawn is outside the grid or too small for the initial body.
func NewWorld(size, spawn int, rng RandomSource, opts ...Option) *World {
	w := &World{
		grid:          NewGrid(size),
		rng:           rng,
		initialLength: DefaultInitialLength,
	}
	for _, opt := range opts {
		opt(w)
	}

	if spawn < 0 || spawn >= w.grid.Capacity() {
		panic(fmt.Sprintf("snake: spawn index %d outside grid of %d cells", spawn, w.grid.Capacity()))
	}
	w.snake = NewSnake(spawn, w.initialLength)

	if w.snake.Len() < w.grid.Capacity() {
		w.reward = PlaceReward(w.rng, w.grid.Capacity(), w.snake.body)
	} else {
		w.reward = NoReward
	}
	return w
}

// Width returns the grid width.
func (w *World) Width() int {
	return w.grid.Size()
}

// Height returns the grid height; the grid is square.
func (w *World) Height() int {
	return w.grid.Size()
}

// Capacity returns the number of cells.
func (w *World) Capacity() int {
	return w.grid.Capacity()
}

// Grid returns the world's grid.
func (w *World) Grid() Grid {
	return w.grid
}

// SnakeHeadIndex returns the head cell.
func (w *World) SnakeHeadIndex() int {
	return w.snake.Head()
}

// SnakeCells returns the body cells, head first.
func (w *World) SnakeCells() []int {
	return w.snake.Cells()
}

// SnakeLen returns the body length.
func (w *World) SnakeLen() int {
	return w.snake.Len()
}

// InitialLength returns the body length the world started with.
func (w *World) InitialLength() int {
	return w.initialLength
}

// Heading returns the snake's current direction.
func (w *World) Heading() Direction {
	return w.snake.Heading()
}

// RewardCell returns the reward cell, or NoReward when the grid is full.
func (w *World) RewardCell() int {
	return w.reward
}

// HasReward reports whether a reward is on the board.
func (w *World) HasReward() bool {
	return w.reward != NoReward
}

// GameStatus returns the status; ok is false until StartGame is called.
func (w *World) GameStatus() (status Status, ok bool) {
	if w.status == StatusNotStarted {
		return StatusNotStarted, false
	}
	return w.status, true
}

// StartGame moves the world from NotStarted to Running. Any later call
// returns ErrAlreadyStarted and changes nothing.
func (w *World) StartGame() error {
	if w.status != StatusNotStarted {
		return ErrAlreadyStarted
	}
	w.status = StatusRunning
	return nil
}

// SetDirection requests a new heading. Invalid directions and immediate
// reversals into the neck are ignored and report false.
func (w *World) SetDirection(dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	return w.snake.DirectionChange(w.grid, dir)
}

// Step advances the world by one tick. It does nothing unless the game is
// running.
func (w *World) Step() {
	if w.status != StatusRunning {
		return
	}

	head := w.snake.takeNextHead(w.grid)
	w.snake.advance(head)

	if w.terminalRules && w.hitsBody(head) {
		w.status = StatusLost
		return
	}

	if head != w.reward {
		return
	}

	if w.snake.Len()+1 < w.grid.Capacity() {
		w.reward = PlaceReward(w.rng, w.grid.Capacity(), w.snake.body)
	} else {
		w.reward = NoReward
	}
	w.snake.grow()

	if w.terminalRules && w.reward == NoReward {
		w.status = StatusWon
	}
}

// hitsBody reports whether head overlaps any segment behind it.
func (w *World) hitsBody(head int) bool {
	for _, c := range w.snake.body[1:] {
		if c == head {
			return true
		}
	}
	return false
}
