package snake

import "fmt"

// Snake holds the body cells (head first) and the current heading.
// It has no movement logic of its own; World drives it.
type Snake struct {
	body    []int
	heading Direction

	pendingHead int
	hasPending  bool
}

// NewSnake lays out a body of the given length ending at spawn:
// [spawn, spawn-1, ..., spawn-(length-1)], heading down.
// It panics if length < 1 or spawn is too small for that layout.
func NewSnake(spawn, length int) *Snake {
	if length < 1 {
		panic(fmt.Sprintf("snake: body length %d must be at least 1", length))
	}
	if spawn < length-1 {
		panic(fmt.Sprintf("snake: spawn index %d cannot hold a body of length %d", spawn, length))
	}

	body := make([]int, length)
	for i := range body {
		body[i] = spawn - i
	}
	return &Snake{
		body:    body,
		heading: DirDown,
	}
}

// Head returns the head cell.
func (s *Snake) Head() int {
	return s.body[0]
}

// Neck returns the cell directly behind the head.
// Panics on a one-cell body.
func (s *Snake) Neck() int {
	return s.body[1]
}

// Len returns the number of body segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Heading returns the current direction of travel.
func (s *Snake) Heading() Direction {
	return s.heading
}

// Cells returns a copy of the body, head first.
func (s *Snake) Cells() []int {
	out := make([]int, len(s.body))
	copy(out, s.body)
	return out
}

// PendingHead returns the next head cell cached by an accepted direction change.
func (s *Snake) PendingHead() (int, bool) {
	return s.pendingHead, s.hasPending
}

// Occupies reports whether any segment sits on cell.
func (s *Snake) Occupies(cell int) bool {
	for _, c := range s.body {
		if c == cell {
			return true
		}
	}
	return false
}

// DirectionChange tries to turn the snake. The change is rejected when the
// resulting head cell would be the neck, i.e. an immediate reversal; other
// self-intersections are not checked here. An accepted change updates the
// heading and caches the next head cell for the following step.
func (s *Snake) DirectionChange(g Grid, requested Direction) bool {
	next := g.Neighbor(s.Head(), requested)
	if next == s.Neck() {
		return false
	}
	s.heading = requested
	s.pendingHead = next
	s.hasPending = true
	return true
}

// takeNextHead returns the head cell for the coming step and clears any
// pending override.
func (s *Snake) takeNextHead(g Grid) int {
	if s.hasPending {
		s.hasPending = false
		return s.pendingHead
	}
	return g.Neighbor(s.Head(), s.heading)
}

// advance moves every segment into the cell its predecessor occupied
// before the move and puts the head on next.
func (s *Snake) advance(next int) {
	prev := make([]int, len(s.body))
	copy(prev, s.body)
	for i := 1; i < len(s.body); i++ {
		s.body[i] = prev[i-1]
	}
	s.body[0] = next
}

// grow appends one segment copying the second segment's cell.
func (s *Snake) grow() {
	s.body = append(s.body, s.body[1])
}
