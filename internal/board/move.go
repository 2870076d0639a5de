package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirection is returned for an unrecognised direction symbol.
var ErrInvalidDirection = errors.New("board: invalid direction")

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all four directions in declaration order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// String returns the lower-case direction name.
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
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts a direction name or its wasd key to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w":
		return DirUp, nil
	case "down", "s":
		return DirDown, nil
	case "left", "a":
		return DirLeft, nil
	case "right", "d":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// MoveResult describes one move attempt. It is created fresh by every call
// to Move and never shared between moves.
type MoveResult struct {
	Direction Direction
	Changed   bool // Any tile moved or merged
	StepScore int  // Sum of all values created by merges
	StepMax   int  // Highest tile on the grid after the move

	size     int
	previous []int  // Grid before the move
	offsets  []int  // Cells travelled, indexed by pre-move position
	merged   []bool // Merge happened into this cell, indexed by post-move position
}

// Size returns the dimension of the grid the move was applied to.
func (r MoveResult) Size() int {
	return r.size
}

func (r MoveResult) index(row, col int) (int, bool) {
	if row < 0 || row >= r.size || col < 0 || col >= r.size {
		return 0, false
	}
	return row*r.size + col, true
}

// Offset returns the signed number of cells the tile that started at
// (row, col) travelled along the move axis. Negative values point towards
// index 0 (left/up), positive towards the last index (right/down).
func (r MoveResult) Offset(row, col int) int {
	if i, ok := r.index(row, col); ok {
		return r.offsets[i]
	}
	return 0
}

// Merged reports whether a merge produced the tile now at (row, col).
func (r MoveResult) Merged(row, col int) bool {
	if i, ok := r.index(row, col); ok {
		return r.merged[i]
	}
	return false
}

// Previous returns the value (row, col) held before the move.
func (r MoveResult) Previous(row, col int) int {
	if i, ok := r.index(row, col); ok {
		return r.previous[i]
	}
	return 0
}

// MergedCount returns the number of cells flagged as merged.
func (r MoveResult) MergedCount() int {
	n := 0
	for _, m := range r.merged {
		if m {
			n++
		}
	}
	return n
}

func (r *MoveResult) setOffset(p Position, offset int) {
	r.offsets[p.Row*r.size+p.Col] = offset
}

func (r *MoveResult) setMerged(p Position) {
	r.merged[p.Row*r.size+p.Col] = true
}

// lane addresses one line of the grid in scan order: step 0 is the
// leading edge the tiles move towards.
type lane struct {
	size     int
	fixed    int  // Row for horizontal lanes, column for vertical ones
	vertical bool // Column lane (up/down)
	backward bool // Leading edge is the last index (right/down)
}

func laneFor(dir Direction, i, size int) lane {
	switch dir {
	case DirLeft:
		return lane{size: size, fixed: i}
	case DirRight:
		return lane{size: size, fixed: i, backward: true}
	case DirUp:
		return lane{size: size, fixed: i, vertical: true}
	default:
		return lane{size: size, fixed: i, vertical: true, backward: true}
	}
}

// index maps a scan step to the grid index along the lane.
func (l lane) index(step int) int {
	if l.backward {
		return l.size - 1 - step
	}
	return step
}

func (l lane) at(step int) Position {
	i := l.index(step)
	if l.vertical {
		return Position{Row: i, Col: l.fixed}
	}
	return Position{Row: l.fixed, Col: i}
}

// Move slides and merges every line of g in the given direction, mutating g
// in place. Rows are processed for left/right, columns for up/down; lines
// never interact. Passing an invalid direction is a programming error and panics.
func Move(g *Grid, dir Direction) MoveResult {
	if !dir.Valid() {
		panic(fmt.Sprintf("%v: %d", ErrInvalidDirection, int(dir)))
	}

	n := g.size
	res := MoveResult{
		Direction: dir,
		size:      n,
		previous:  make([]int, len(g.cells)),
		offsets:   make([]int, len(g.cells)),
		merged:    make([]bool, len(g.cells)),
	}
	copy(res.previous, g.cells)

	for i := range n {
		slideLane(g, laneFor(dir, i, n), &res)
	}
	return res
}

// slideLane compacts and merges a single lane. position is the write cursor;
// a cell that received a merge is left behind by advancing the cursor, so it
// cannot merge again during this move.
func slideLane(g *Grid, l lane, res *MoveResult) {
	position := 0

	// The leading cell is never visited by the scan below
	if lead := g.at(l.at(0)); lead > res.StepMax {
		res.StepMax = lead
	}

	for j := 1; j < l.size; j++ {
		src := l.at(j)
		v := g.at(src)
		if v == 0 {
			continue
		}

		dst := l.at(position)
		switch cur := g.at(dst); {
		case cur == 0:
			// [p:0, j:2, 2, 4] -> [p:2, j:0, 2, 4]
			g.put(dst, v)
			g.put(src, 0)
			res.setOffset(src, l.index(position)-l.index(j))
			res.Changed = true

		case cur == v:
			// [p:2, 0, j:2, 4] -> [4, p:0, j:0, 4]
			g.put(dst, cur+v)
			g.put(src, 0)
			res.setOffset(src, l.index(position)-l.index(j))
			res.setMerged(dst)
			res.StepScore += cur + v
			res.Changed = true
			position++

		default:
			// [p:2, j:4, 8, 16] -> [2, p:j:4, 8, 16]
			// [p:2, 0, j:4, 16] -> [2, p:4, j:0, 16]
			position++
			dst = l.at(position)
			if position < j {
				g.put(dst, v)
				g.put(src, 0)
				res.Changed = true
			}
			res.setOffset(src, l.index(position)-l.index(j))
		}

		if landed := g.at(dst); landed > res.StepMax {
			res.StepMax = landed
		}
	}
}
