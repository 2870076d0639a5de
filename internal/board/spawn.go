package board

import (
	"errors"
	"math/rand"
)

// DefaultFourProbability is the chance that a spawned tile is a 4 instead of a 2.
const DefaultFourProbability = 0.18

// ErrGridFull is returned when a tile is requested on a grid without empty cells.
var ErrGridFull = errors.New("board: no empty cell to spawn into")

// Tile is a spawned tile and where it landed.
type Tile struct {
	Position
	Value int
}

// Spawner places new tiles on empty cells.
// All randomness comes from the injected generator, so a seeded
// generator gives a reproducible sequence of spawns.
type Spawner struct {
	rng      *rand.Rand
	fourProb float64
}

// NewSpawner creates a spawner drawing from rng with the default 4-probability.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{
		rng:      rng,
		fourProb: DefaultFourProbability,
	}
}

// SetFourProbability overrides the chance of spawning a 4, clamped to [0, 1].
func (s *Spawner) SetFourProbability(p float64) {
	s.fourProb = min(max(p, 0), 1)
}

// FourProbability returns the chance of spawning a 4.
func (s *Spawner) FourProbability() float64 {
	return s.fourProb
}

// SpawnOne writes a 2 or a 4 into an empty cell chosen uniformly at random.
func (s *Spawner) SpawnOne(g *Grid) (Tile, error) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return Tile{}, ErrGridFull
	}

	p := empty[s.rng.Intn(len(empty))]

	value := 2
	if s.rng.Float64() < s.fourProb {
		value = 4
	}

	g.put(p, value)
	return Tile{Position: p, Value: value}, nil
}

// SpawnTwo places two tiles with independent draws, as done for a new game.
// The second draw only sees the cells left empty by the first.
func (s *Spawner) SpawnTwo(g *Grid) ([]Tile, error) {
	tiles := make([]Tile, 0, 2)
	for range 2 {
		t, err := s.SpawnOne(g)
		if err != nil {
			return tiles, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}
