// Package config provides YAML-based configuration loading and
// difficulty presets for the puzzle.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/game"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

// Config contains all configuration for the puzzle and its host.
type Config struct {
	Game    GameSettings    `yaml:"game"`
	Storage StorageSettings `yaml:"storage"`
	Log     LogSettings     `yaml:"log"`
}

// GameSettings defines the rules of a session.
type GameSettings struct {
	Size            int     `yaml:"size"`
	Target          int     `yaml:"target"`           // Tile value that wins
	Ceiling         int     `yaml:"ceiling"`          // Tile or score value that ends the session
	FourProbability float64 `yaml:"four_probability"` // Chance a spawned tile is a 4
}

// StorageSettings defines where saved games and scores live.
type StorageSettings struct {
	DBPath string `yaml:"db_path"`
}

// LogSettings defines logger behaviour.
type LogSettings struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate rejects values the game cannot be played with.
func (c Config) Validate() error {
	if err := c.GameConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("%w: storage.db_path is empty", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// GameConfig converts the game settings to a controller config.
// The seed is left for the caller to choose.
func (c Config) GameConfig() game.Config {
	return game.Config{
		Size:            c.Game.Size,
		Target:          c.Game.Target,
		Ceiling:         c.Game.Ceiling,
		FourProbability: c.Game.FourProbability,
	}
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// DifficultyPreset represents a named spawn difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: difficulty %q (want easy, normal or hard)", ErrInvalid, s)
	}
}

// FourProbabilityForPreset returns the spawn 4-probability for a preset.
func FourProbabilityForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.10
	case DifficultyHard:
		return 0.30
	default:
		return board.DefaultFourProbability
	}
}

// ApplyDifficulty modifies the config based on a difficulty preset.
func (c *Config) ApplyDifficulty(preset DifficultyPreset) {
	c.Game.FourProbability = FourProbabilityForPreset(preset)
}
