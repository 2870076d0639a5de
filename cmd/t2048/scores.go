package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a board",
	Long: `Display the top high scores for the specified board.

Examples:
  t2048 scores 4x4
  t2048 scores 6x6 --limit 3`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "Browse high scores interactively",
	Long: `Open the scoreboard for all boards.

Controls:
  Left/Right  - Switch board
  Up/Down     - Scroll scores
  Q/Esc       - Quit`,
	Args: cobra.NoArgs,
	Run:  runScoreboard,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) {
	variant := lookupVariant(args[0])
	cfg := loadConfig()

	store := openStore(cfg)
	defer store.Close()

	scores, err := store.TopScores(variant.ID, flagLimit)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", variant.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", variant.ID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Max tile", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "--------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-8d  %s\n", i+1, entry.Score, entry.MaxTile, dateStr)
	}

	if stats, err := store.GetGameStats(variant.ID); err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Best: %d   Best tile: %d   Games: %d\n", stats.HighScore, stats.MaxTile, stats.GamesCount)
	}
}

func runScoreboard(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	store := openStore(cfg)
	defer store.Close()

	width, height := terminalSize()
	if _, err := tui.RunScoreboard(store, width, height); err != nil {
		store.Close()
		fail("%v", err)
	}
}
