package snake

import "fmt"

// Direction is one of the four cardinal headings. The numeric values are
// fixed and may be relied on by external code.
type Direction int

const (
	DirUp    Direction = 0
	DirDown  Direction = 1
	DirLeft  Direction = 2
	DirRight Direction = 3
)

// Directions lists every valid direction.
func Directions() []Direction {
	return []Direction{DirUp, DirDown, DirLeft, DirRight}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// MinGridSize is the smallest edge length a Grid accepts.
const MinGridSize = 2

// Grid is a square toroidal board addressed by linear cell index.
// Row = index / size, column = index % size.
type Grid struct {
	size int
}

// NewGrid creates a grid with the given edge length, clamped to MinGridSize.
func NewGrid(size int) Grid {
	return Grid{size: max(size, MinGridSize)}
}

// Size returns the edge length.
func (g Grid) Size() int {
	return g.size
}

// Capacity returns the total number of cells.
func (g Grid) Capacity() int {
	return g.size * g.size
}

// RowCol converts a cell index to its row and column.
// The index must be in [0, Capacity()).
func (g Grid) RowCol(index int) (row, col int) {
	return index / g.size, index % g.size
}

// Index converts a row and column to a cell index.
func (g Grid) Index(row, col int) int {
	return row*g.size + col
}

// Neighbor returns the cell adjacent to index in direction dir, wrapping
// around the edges. Leaving the top re-enters at the bottom of the same
// column; leaving the left re-enters at the right of the same row.
func (g Grid) Neighbor(index int, dir Direction) int {
	row, col := g.RowCol(index)
	switch dir {
	case DirUp:
		row = (row - 1 + g.size) % g.size
	case DirDown:
		row = (row + 1) % g.size
	case DirLeft:
		col = (col - 1 + g.size) % g.size
	case DirRight:
		col = (col + 1) % g.size
	default:
		panic(fmt.Sprintf("snake: invalid direction %d", int(dir)))
	}
	return g.Index(row, col)
}
