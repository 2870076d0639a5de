// Package board implements the sliding-tile puzzle core: the square grid of
// tile values, the directional move engine and the tile spawn policy.
// It has no knowledge of rendering, input or persistence.
package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinSize is the smallest supported grid dimension.
const MinSize = 2

var (
	// ErrInvalidDimension is returned when a grid is smaller than MinSize or not square.
	ErrInvalidDimension = errors.New("board: invalid dimension")
	// ErrOutOfRange is returned for cell access outside [0, size).
	ErrOutOfRange = errors.New("board: cell out of range")
	// ErrInvalidValue is returned for negative or non-power-of-two tile values.
	ErrInvalidValue = errors.New("board: invalid tile value")
)

// Position addresses a single cell.
type Position struct {
	Row int
	Col int
}

// String returns "row-col", the same form used for persisted cell keys.
func (p Position) String() string {
	return strconv.Itoa(p.Row) + "-" + strconv.Itoa(p.Col)
}

// Grid is an N×N matrix of tile values. Zero means empty.
// Cells are stored row-major in a flat slice.
type Grid struct {
	size  int
	cells []int
}

// New creates an all-zero grid of the given size.
func New(size int) (*Grid, error) {
	if size < MinSize {
		return nil, fmt.Errorf("%w: size %d (minimum %d)", ErrInvalidDimension, size, MinSize)
	}
	return &Grid{
		size:  size,
		cells: make([]int, size*size),
	}, nil
}

// FromCells builds a grid from a square matrix, validating every value.
// The matrix is copied; later changes to it do not affect the grid.
func FromCells(cells [][]int) (*Grid, error) {
	size := len(cells)
	if size < MinSize {
		return nil, fmt.Errorf("%w: %d rows (minimum %d)", ErrInvalidDimension, size, MinSize)
	}

	g := &Grid{
		size:  size,
		cells: make([]int, size*size),
	}
	for r, row := range cells {
		if len(row) != size {
			return nil, fmt.Errorf("%w: %d rows but row %d has %d columns",
				ErrInvalidDimension, size, r, len(row))
		}
		for c, v := range row {
			if !ValidValue(v) {
				return nil, fmt.Errorf("%w: %d at %d-%d", ErrInvalidValue, v, r, c)
			}
			g.cells[r*size+c] = v
		}
	}
	return g, nil
}

// ValidValue reports whether v may be stored in a cell:
// zero, or a power of two no smaller than 2.
func ValidValue(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// Size returns the grid dimension.
func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// Get returns the value at (row, col).
func (g *Grid) Get(row, col int) (int, error) {
	if !g.inBounds(row, col) {
		return 0, fmt.Errorf("%w: %d-%d on %dx%d grid", ErrOutOfRange, row, col, g.size, g.size)
	}
	return g.cells[row*g.size+col], nil
}

// Set stores value at (row, col).
func (g *Grid) Set(row, col, value int) error {
	if !g.inBounds(row, col) {
		return fmt.Errorf("%w: %d-%d on %dx%d grid", ErrOutOfRange, row, col, g.size, g.size)
	}
	if !ValidValue(value) {
		return fmt.Errorf("%w: %d", ErrInvalidValue, value)
	}
	g.cells[row*g.size+col] = value
	return nil
}

// at and put are the unchecked accessors used by the move engine and spawner.
func (g *Grid) at(p Position) int {
	return g.cells[p.Row*g.size+p.Col]
}

func (g *Grid) put(p Position, v int) {
	g.cells[p.Row*g.size+p.Col] = v
}

// Clear zeroes every cell.
func (g *Grid) Clear() {
	clear(g.cells)
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells}
}

// Cells returns a copy of the grid as a row-major matrix.
func (g *Grid) Cells() [][]int {
	out := make([][]int, g.size)
	for r := range g.size {
		out[r] = make([]int, g.size)
		copy(out[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return out
}

// Equal reports whether both grids have the same size and values.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for i, v := range g.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (g *Grid) EmptyCells() []Position {
	var empty []Position
	for i, v := range g.cells {
		if v == 0 {
			empty = append(empty, Position{Row: i / g.size, Col: i % g.size})
		}
	}
	return empty
}

// IsEmpty reports whether every cell is zero.
func (g *Grid) IsEmpty() bool {
	for _, v := range g.cells {
		if v != 0 {
			return false
		}
	}
	return true
}

// Max returns the highest tile value on the grid.
func (g *Grid) Max() int {
	maxVal := 0
	for _, v := range g.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (g *Grid) Sum() int {
	total := 0
	for _, v := range g.cells {
		total += v
	}
	return total
}

// Accessible reports whether at least one move could still change the grid:
// there is an empty cell, or two orthogonally adjacent cells hold the same value.
// It is derived from scratch on every call.
func (g *Grid) Accessible() bool {
	n := g.size
	for r := range n {
		for c := range n {
			v := g.cells[r*n+c]
			if v == 0 {
				return true
			}
			// Right neighbour
			if c < n-1 && g.cells[r*n+c+1] == v {
				return true
			}
			// Bottom neighbour
			if r < n-1 && g.cells[(r+1)*n+c] == v {
				return true
			}
		}
	}
	return false
}

// String renders the grid as right-aligned columns, one row per line.
func (g *Grid) String() string {
	width := len(strconv.Itoa(g.Max()))
	if width < 1 {
		width = 1
	}

	var sb strings.Builder
	for r := range g.size {
		for c := range g.size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := g.cells[r*g.size+c]
			if v == 0 {
				sb.WriteString(strings.Repeat(" ", width-1) + ".")
				continue
			}
			fmt.Fprintf(&sb, "%*d", width, v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
