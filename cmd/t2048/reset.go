package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagResetScores bool

var resetCmd = &cobra.Command{
	Use:   "reset <variant>",
	Short: "Discard the saved game of a board",
	Long: `Delete the saved grid, score and best score of the specified board.
With --scores, its high score table is cleared as well.

Examples:
  t2048 reset 4x4
  t2048 reset 5x5 --scores`,
	Args: cobra.ExactArgs(1),
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetScores, "scores", false, "Also clear the board's high scores")
}

func runReset(cmd *cobra.Command, args []string) {
	variant := lookupVariant(args[0])
	cfg := loadConfig()
	logger := newLogger(cfg)

	store := openStore(cfg)
	defer store.Close()

	if err := store.ClearGame(variant.Size); err != nil {
		store.Close()
		fail("clearing saved game: %v", err)
	}
	logger.Debug("saved game cleared", "variant", variant.ID, "namespace", storage.Namespace(variant.Size))

	if flagResetScores {
		if err := store.ClearScores(variant.ID); err != nil {
			store.Close()
			fail("clearing scores: %v", err)
		}
		logger.Debug("scores cleared", "variant", variant.ID)
	}

	fmt.Printf("Reset %s.\n", variant.Title)
}
