// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048 play [variant]     - Play a board (menu when no variant is given)
//	t2048 list               - List available boards
//	t2048 scores <variant>   - Show high scores for a board
//	t2048 scoreboard         - Browse high scores interactively
//	t2048 show <variant>     - Print the saved game of a board
//	t2048 reset <variant>    - Discard the saved game of a board
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible tile spawns
//	--db <path>          - Set database path (default from config: ~/.t2048/game.db)
//	--config <path>      - Load a custom YAML config
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"

	// Register the built-in board variants
	_ "github.com/vovakirdan/tui-2048/internal/game"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the tiles with the arrow keys; equal tiles merge into their sum.
Reach 2048 to win, then keep going for a higher score.

Available commands:
  play        - Play a board
  list        - Show all available boards
  scores      - View high scores
  scoreboard  - Browse high scores interactively
  show        - Print a saved game
  reset       - Discard a saved game

Examples:
  t2048 play
  t2048 play 4x4
  t2048 play --size 8
  t2048 scores 5x5
  t2048 show 4x4 --db ./game.db`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to game database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(resetCmd)
}

// fail prints an error in the CLI format and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			fail("unknown log level %q", flagLogLevel)
		}
	}
	return cfg
}

// newLogger builds the stderr logger for the configured level.
func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	logger.SetLevel(cfg.LogLevel())
	return logger
}

// openStore opens the database or exits.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fail("opening game database: %v", err)
	}
	return store
}

// lookupVariant resolves a variant ID (or an "NxN" board) or exits with a hint.
func lookupVariant(id string) registry.Variant {
	v, err := registry.Resolve(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available boards.")
		os.Exit(1)
	}
	return v
}
