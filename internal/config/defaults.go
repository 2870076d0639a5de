package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/game"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Game: GameSettings{
			Size:            game.DefaultSize,
			Target:          game.DefaultTarget,
			Ceiling:         game.MaxValue,
			FourProbability: board.DefaultFourProbability,
		},
		Storage: StorageSettings{
			DBPath: "~/.t2048/game.db",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
