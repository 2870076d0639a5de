package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/board"
)

var showCmd = &cobra.Command{
	Use:   "show <variant>",
	Short: "Print the saved game of a board",
	Long: `Print the grid and scores saved for the specified board, as they will be
restored by the next 't2048 play'.

Examples:
  t2048 show 4x4
  t2048 show 9x9`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func runShow(cmd *cobra.Command, args []string) {
	variant := lookupVariant(args[0])
	cfg := loadConfig()

	store := openStore(cfg)
	defer store.Close()

	saved, ok, err := store.Load(variant.Size)
	if err != nil {
		store.Close()
		fail("loading saved game: %v", err)
	}
	if !ok {
		fmt.Printf("No saved game for %s.\n", variant.Title)
		return
	}

	fmt.Printf("Saved game - %s\n", variant.Title)
	fmt.Println()

	if saved.IsFresh() {
		fmt.Println("  (empty board, a new game starts on play)")
	} else {
		g, err := board.FromCells(saved.Cells)
		if err != nil {
			store.Close()
			fail("saved grid is corrupt: %v", err)
		}
		fmt.Print(g.String())
		if !g.Accessible() {
			fmt.Println("  No moves left.")
		}
	}

	fmt.Println()
	fmt.Printf("  Score:   %d\n", saved.Score)
	fmt.Printf("  Best:    %d\n", saved.BestScore)
	fmt.Printf("  Won:     %t\n", saved.AlreadyWon)
	if saved.Maxed {
		fmt.Println("  Ended at the maximum value.")
	}
	if saved.SessionID != "" {
		fmt.Printf("  Session: %s\n", saved.SessionID)
	}
	if at, ok, err := store.LastSaved(variant.Size); err == nil && ok {
		fmt.Printf("  Saved:   %s\n", at.Format("2006-01-02 15:04"))
	}
}
