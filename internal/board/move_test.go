package board

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestMoveRowScenarios(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		input    []int
		expected []int
		score    int
		changed  bool
		merged   []int       // Post-move columns flagged merged
		offsets  map[int]int // Pre-move column -> offset
	}{
		{
			name:     "simple merge",
			dir:      DirLeft,
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
			changed:  true,
			merged:   []int{0},
			offsets:  map[int]int{0: 0, 1: -1},
		},
		{
			name:     "merge then slide without chaining",
			dir:      DirLeft,
			input:    []int{2, 0, 2, 2},
			expected: []int{4, 2, 0, 0},
			score:    4,
			changed:  true,
			merged:   []int{0},
			offsets:  map[int]int{0: 0, 2: -2, 3: -2},
		},
		{
			name:     "double merge",
			dir:      DirLeft,
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			score:    8,
			changed:  true,
			merged:   []int{0, 1},
			offsets:  map[int]int{1: -1, 2: -1, 3: -2},
		},
		{
			name:     "no chain merge into fresh tile",
			dir:      DirLeft,
			input:    []int{4, 2, 2, 0},
			expected: []int{4, 4, 0, 0},
			score:    4,
			changed:  true,
			merged:   []int{1},
			offsets:  map[int]int{0: 0, 1: 0, 2: -1},
		},
		{
			name:     "no merge possible",
			dir:      DirLeft,
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
			changed:  false,
			offsets:  map[int]int{0: 0, 1: 0, 2: 0, 3: 0},
		},
		{
			name:     "slide past gap behind occupied cursor",
			dir:      DirLeft,
			input:    []int{2, 0, 4, 16},
			expected: []int{2, 4, 16, 0},
			changed:  true,
			offsets:  map[int]int{2: -1, 3: -1},
		},
		{
			name:     "slide with gap",
			dir:      DirLeft,
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
			changed:  true,
			merged:   []int{0},
			offsets:  map[int]int{2: -2, 3: -3},
		},
		{
			name:     "empty row",
			dir:      DirLeft,
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
		},
		{
			name:     "right simple merge",
			dir:      DirRight,
			input:    []int{2, 2, 0, 0},
			expected: []int{0, 0, 0, 4},
			score:    4,
			changed:  true,
			merged:   []int{3},
			offsets:  map[int]int{0: 3, 1: 2},
		},
		{
			name:     "right merge nearest pair first",
			dir:      DirRight,
			input:    []int{2, 2, 2, 0},
			expected: []int{0, 0, 2, 4},
			score:    4,
			changed:  true,
			merged:   []int{3},
			offsets:  map[int]int{0: 2, 1: 2, 2: 1},
		},
		{
			name:     "right saturated",
			dir:      DirRight,
			input:    []int{0, 2, 4, 8},
			expected: []int{0, 2, 4, 8},
			changed:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.input)
			rows := make([][]int, n)
			for r := range n {
				rows[r] = make([]int, n)
			}
			copy(rows[0], tt.input)
			g := mustGrid(t, rows)

			res := Move(g, tt.dir)

			if got := g.Cells()[0]; !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Move(%v) row = %v, want %v", tt.input, got, tt.expected)
			}
			if res.StepScore != tt.score {
				t.Errorf("StepScore = %d, want %d", res.StepScore, tt.score)
			}
			if res.Changed != tt.changed {
				t.Errorf("Changed = %v, want %v", res.Changed, tt.changed)
			}

			wantMerged := make(map[int]bool)
			for _, c := range tt.merged {
				wantMerged[c] = true
			}
			for c := range n {
				if got := res.Merged(0, c); got != wantMerged[c] {
					t.Errorf("Merged(0, %d) = %v, want %v", c, got, wantMerged[c])
				}
			}
			for c, want := range tt.offsets {
				if got := res.Offset(0, c); got != want {
					t.Errorf("Offset(0, %d) = %d, want %d", c, got, want)
				}
			}
		})
	}
}

func TestMoveLeft(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})
	expected := [][]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}

	res := Move(g, DirLeft)

	if got := g.Cells(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Move(left): got\n%v\nwant\n%v", got, expected)
	}
	if !res.Changed {
		t.Error("Move(left) should indicate board changed")
	}
	if res.StepScore != 4+8+8 {
		t.Errorf("StepScore = %d, want %d", res.StepScore, 20)
	}
	if res.StepMax != 8 {
		t.Errorf("StepMax = %d, want 8", res.StepMax)
	}
}

func TestMoveRight(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})
	expected := [][]int{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	}

	res := Move(g, DirRight)

	if got := g.Cells(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Move(right): got\n%v\nwant\n%v", got, expected)
	}
	if !res.Changed {
		t.Error("Move(right) should indicate board changed")
	}
	// Row 1: the 4 at column 0 merges into column 3
	if got := res.Offset(1, 0); got != 3 {
		t.Errorf("Offset(1, 0) = %d, want 3", got)
	}
	if !res.Merged(1, 3) {
		t.Error("Merged(1, 3) = false, want true")
	}
}

func TestMoveUp(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})
	expected := [][]int{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	res := Move(g, DirUp)

	if got := g.Cells(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Move(up): got\n%v\nwant\n%v", got, expected)
	}
	if res.StepScore != 4+8+4+4 {
		t.Errorf("StepScore = %d, want %d", res.StepScore, 20)
	}

	// Offsets are indexed by the pre-move cell and counted along rows
	offsets := map[Position]int{
		{Row: 1, Col: 0}: -1,
		{Row: 2, Col: 1}: -2,
		{Row: 1, Col: 2}: -1,
		{Row: 2, Col: 2}: -1,
		{Row: 3, Col: 2}: -2,
		{Row: 3, Col: 3}: -3,
	}
	for p, want := range offsets {
		if got := res.Offset(p.Row, p.Col); got != want {
			t.Errorf("Offset(%v) = %d, want %d", p, got, want)
		}
	}
	for _, p := range []Position{{0, 0}, {0, 1}, {0, 2}, {1, 2}} {
		if !res.Merged(p.Row, p.Col) {
			t.Errorf("Merged(%v) = false, want true", p)
		}
	}
	if res.Merged(0, 3) {
		t.Error("Merged(0, 3) = true for a slid tile")
	}
}

func TestMoveDown(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})
	expected := [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}

	res := Move(g, DirDown)

	if got := g.Cells(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Move(down): got\n%v\nwant\n%v", got, expected)
	}
	if got := res.Offset(0, 3); got != 3 {
		t.Errorf("Offset(0, 3) = %d, want 3", got)
	}
	if got := res.Offset(0, 0); got != 3 {
		t.Errorf("Offset(0, 0) = %d, want 3", got)
	}
	if got := res.Offset(1, 0); got != 2 {
		t.Errorf("Offset(1, 0) = %d, want 2", got)
	}
	if !res.Merged(3, 0) || !res.Merged(3, 1) {
		t.Error("expected merges into row 3")
	}
	if res.StepMax != 8 {
		t.Errorf("StepMax = %d, want 8", res.StepMax)
	}
}

func TestMoveFullGridNoMerges(t *testing.T) {
	rows := [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	for _, dir := range Directions {
		g := mustGrid(t, rows)
		res := Move(g, dir)
		if res.Changed {
			t.Errorf("Move(%v) on locked grid reported a change", dir)
		}
		if res.StepScore != 0 {
			t.Errorf("Move(%v) StepScore = %d, want 0", dir, res.StepScore)
		}
		if res.StepMax != 4 {
			t.Errorf("Move(%v) StepMax = %d, want 4", dir, res.StepMax)
		}
		if !reflect.DeepEqual(g.Cells(), rows) {
			t.Errorf("Move(%v) mutated a locked grid", dir)
		}
	}
}

func TestMovePreviousSnapshot(t *testing.T) {
	g := mustGrid(t, [][]int{{0, 2}, {2, 2}})
	res := Move(g, DirLeft)

	if res.Previous(0, 1) != 2 || res.Previous(1, 0) != 2 || res.Previous(0, 0) != 0 {
		t.Errorf("Previous() does not reflect the pre-move grid")
	}
	if res.Previous(5, 5) != 0 || res.Offset(-1, 0) != 0 || res.Merged(0, 9) {
		t.Error("out-of-range metadata lookups should return zero values")
	}
	if res.Size() != 2 {
		t.Errorf("Size() = %d, want 2", res.Size())
	}
}

func TestMoveInvalidDirectionPanics(t *testing.T) {
	g, _ := New(4)
	defer func() {
		if recover() == nil {
			t.Error("Move with an invalid direction did not panic")
		}
	}()
	Move(g, Direction(42))
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"up", DirUp},
		{"W", DirUp},
		{"down", DirDown},
		{"s", DirDown},
		{" Left ", DirLeft},
		{"a", DirLeft},
		{"right", DirRight},
		{"d", DirRight},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil {
			t.Errorf("ParseDirection(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDirection("diagonal"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseDirection(diagonal) error = %v, want ErrInvalidDirection", err)
	}
}

// randomGrid fills a grid with a mix of empty cells and small tiles.
func randomGrid(rng *rand.Rand, size int) *Grid {
	values := []int{0, 0, 0, 2, 2, 4, 4, 8, 16}
	g, _ := New(size)
	for i := range g.cells {
		g.cells[i] = values[rng.Intn(len(values))]
	}
	return g
}

// hasAxisPair reports whether two neighbours along the move axis are equal and nonzero.
func hasAxisPair(g *Grid, dir Direction) bool {
	n := g.Size()
	for r := range n {
		for c := range n {
			v := g.at(Position{r, c})
			if v == 0 {
				continue
			}
			if dir == DirLeft || dir == DirRight {
				if c < n-1 && g.at(Position{r, c + 1}) == v {
					return true
				}
			} else if r < n-1 && g.at(Position{r + 1, c}) == v {
				return true
			}
		}
	}
	return false
}

func TestMoveProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := range 500 {
		size := 2 + trial%5
		for _, dir := range Directions {
			before := randomGrid(rng, size)
			g := before.Clone()
			res := Move(g, dir)

			// Merging never creates or destroys tile value
			if g.Sum() != before.Sum() {
				t.Fatalf("%v on\n%s: sum %d -> %d", dir, before, before.Sum(), g.Sum())
			}

			if res.Changed == before.Equal(g) {
				t.Fatalf("%v on\n%s: Changed = %v but grid equality says otherwise", dir, before, res.Changed)
			}

			if res.StepMax != g.Max() {
				t.Fatalf("%v on\n%s: StepMax = %d, want %d", dir, before, res.StepMax, g.Max())
			}

			if res.StepScore%4 != 0 {
				t.Fatalf("%v: StepScore %d is not built from values >= 4", dir, res.StepScore)
			}

			mergedSum := 0
			for r := range size {
				for c := range size {
					v, _ := g.Get(r, c)
					if !ValidValue(v) {
						t.Fatalf("%v produced invalid value %d", dir, v)
					}
					if res.Merged(r, c) {
						if v < 4 {
							t.Fatalf("%v: merged cell %d-%d holds %d", dir, r, c, v)
						}
						mergedSum += v
					}
				}
			}
			if mergedSum != res.StepScore {
				t.Fatalf("%v: merged cells sum to %d, StepScore = %d", dir, mergedSum, res.StepScore)
			}
			if res.MergedCount() > size*size/2 {
				t.Fatalf("%v: %d merges on a %dx%d grid", dir, res.MergedCount(), size, size)
			}

			checkOffsets(t, before, g, res)

			// A second move only changes the grid through merges of newly adjacent tiles
			again := g.Clone()
			second := Move(again, dir)
			if !hasAxisPair(g, dir) && second.Changed {
				t.Fatalf("%v not idempotent on saturated grid\n%s", dir, g)
			}
			if second.Changed && second.MergedCount() == 0 {
				t.Fatalf("%v left a gap behind\n%s", dir, g)
			}
		}
	}
}

// checkOffsets verifies that every pre-move tile lands where its offset says,
// either unchanged or doubled into a merged cell.
func checkOffsets(t *testing.T, before, after *Grid, res MoveResult) {
	t.Helper()
	n := before.Size()
	for r := range n {
		for c := range n {
			v := before.at(Position{r, c})
			off := res.Offset(r, c)
			if v == 0 {
				if off != 0 {
					t.Fatalf("%v: empty cell %d-%d has offset %d", res.Direction, r, c, off)
				}
				continue
			}

			dst := Position{r, c}
			if res.Direction == DirLeft || res.Direction == DirRight {
				dst.Col += off
			} else {
				dst.Row += off
			}
			if dst.Row < 0 || dst.Row >= n || dst.Col < 0 || dst.Col >= n {
				t.Fatalf("%v: offset %d moves %d-%d off the grid", res.Direction, off, r, c)
			}

			got := after.at(dst)
			if got != v && !(got == 2*v && res.Merged(dst.Row, dst.Col)) {
				t.Fatalf("%v: tile %d from %d-%d landed on %v holding %d\nbefore:\n%safter:\n%s",
					res.Direction, v, r, c, dst, got, before, after)
			}
		}
	}
}

func TestMoveRepeatedReachesFixedPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for range 200 {
		g := randomGrid(rng, 4)
		for _, dir := range Directions {
			work := g.Clone()
			steps := 0
			for Move(work, dir).Changed {
				steps++
				if steps > 4 {
					t.Fatalf("%v did not settle on\n%s", dir, g)
				}
			}
		}
	}
}
