package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagDifficulty string
	flagSize       int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board",
	Long: `Start playing the specified board. Without a variant, a menu lets you
pick one and returns after each game.

The game is saved after every move and restored the next time the same
board size is played.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  R                 - New game
  C/Enter           - Keep going after reaching the target
  ?                 - Toggle help
  Q/Esc/Ctrl+C      - Quit

Difficulty options (chance that a new tile is a 4):
  easy   - 10%
  normal - 18%
  hard   - 30%

Examples:
  t2048 play
  t2048 play 5x5
  t2048 play --size 8
  t2048 play 4x4 --difficulty hard
  t2048 play 4x4 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Play an NxN board instead of a named variant")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			fail("%v", err)
		}
		cfg.ApplyDifficulty(preset)
	}

	var variant registry.Variant
	switch {
	case flagSize != 0 && len(args) > 0:
		fail("use either a variant or --size, not both")
	case flagSize != 0:
		variant = registry.ForSize(flagSize)
	case len(args) > 0:
		variant = lookupVariant(args[0])
	}

	logger := newLogger(cfg)
	store := openStore(cfg)
	defer store.Close()

	opts := tui.Options{
		Game:   cfg.GameConfig(),
		Store:  store,
		Logger: logger,
	}
	opts.Game.Seed = flagSeed

	if variant.ID != "" {
		opts.Variant = variant
		if err := tui.Run(opts); err != nil {
			store.Close()
			fail("running game: %v", err)
		}
		return
	}

	runMenuLoop(store, opts, cfg.Game.Size)
}

// runMenuLoop alternates between the variant menu, the scoreboard and games
// until the user quits the menu. The menu opens on the configured board size,
// then on the last board played.
func runMenuLoop(store *storage.Store, opts tui.Options, size int) {
	width, height := terminalSize()

	for {
		result, err := tui.RunMenu(store, width, height, size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return
		}

		opts.Variant = result.Variant
		size = result.Variant.Size
		if err := tui.Run(opts); err != nil {
			opts.Logger.Error("game ended with error", "variant", result.Variant.ID, "err", err)
		}

		// Only the first game uses a fixed seed
		opts.Game.Seed = 0
	}
}

// terminalSize returns the size of stdout, falling back to 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
