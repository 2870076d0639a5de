// Package game implements the session controller for the sliding-tile puzzle:
// it sequences moves and spawns, keeps score, best score and the win flag,
// and drives the Idle/Playing/Won/Over/Maxed state machine.
// Persistence and presentation are reached only through the Persistence
// and StepListener collaborators passed to New.
package game

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/board"
)

const (
	// DefaultSize is the classic board dimension.
	DefaultSize = 4
	// DefaultTarget is the tile value that wins the game.
	DefaultTarget = 2048
	// MaxValue is the ceiling for tiles and cumulative score.
	MaxValue = 1 << 30
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("game: invalid config")

// Config contains the parameters of one game session.
type Config struct {
	Size            int     // Grid dimension
	Target          int     // Tile value that wins
	Ceiling         int     // Tile or score value that ends the session
	FourProbability float64 // Chance a spawned tile is a 4
	Seed            int64   // RNG seed; the host picks a time-based seed for 0
}

// DefaultConfig returns a Config for a classic 4x4 game.
func DefaultConfig() Config {
	return Config{
		Size:            DefaultSize,
		Target:          DefaultTarget,
		Ceiling:         MaxValue,
		FourProbability: board.DefaultFourProbability,
	}
}

// Validate checks the config for values the controller cannot play with.
func (c Config) Validate() error {
	if c.Size < board.MinSize {
		return fmt.Errorf("%w: size %d (minimum %d)", ErrInvalidConfig, c.Size, board.MinSize)
	}
	if c.Target < 4 || !board.ValidValue(c.Target) {
		return fmt.Errorf("%w: target %d must be a power of two >= 4", ErrInvalidConfig, c.Target)
	}
	if c.Ceiling <= c.Target {
		return fmt.Errorf("%w: ceiling %d must exceed target %d", ErrInvalidConfig, c.Ceiling, c.Target)
	}
	if c.FourProbability < 0 || c.FourProbability > 1 {
		return fmt.Errorf("%w: four probability %v outside [0, 1]", ErrInvalidConfig, c.FourProbability)
	}
	return nil
}
