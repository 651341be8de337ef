package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagNewGame bool

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board. Without an argument the board
size from the config (board.sides) is used.

If a game on this board was left unfinished you are asked whether to
continue it. Every move is saved, so quitting never loses progress.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  P/Esc            - Pause
  R                - New game
  B                - Back
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play 2048_5x5
  t2048 play 2048 --new
  t2048 play 2048 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNewGame, "new", false, "Discard any saved game and start fresh")
}

func runPlay(cmd *cobra.Command, args []string) {
	variant, ok := defaultVariant()
	name := variant.ID
	if len(args) == 1 {
		name = args[0]
		variant, ok = registry.Lookup(name)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available boards.")
		os.Exit(1)
	}

	logger, closeLog := tuiLogger()
	defer closeLog()

	store := openStore(logger)
	defer closeStore(store, logger)

	if err := playVariant(variant, store, logger, screenConfig(), flagNewGame); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// defaultVariant returns the registered board matching the configured size,
// falling back to the classic board.
func defaultVariant() (registry.Variant, bool) {
	if v, ok := registry.ForSides(appConfig.Board.Sides); ok {
		return v, true
	}
	return registry.Lookup("2048")
}

// playVariant offers to resume a saved game, then runs the board until the
// player leaves. Backing out of the resume prompt returns without playing.
func playVariant(v registry.Variant, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, fresh bool) error {
	var resume *t2048.Snapshot
	if store != nil {
		saved, err := store.LoadSnapshot(flagOwner, v.ID)
		if err != nil {
			logger.Warn("could not load saved game", "game", v.ID, "error", err)
		}
		resume = saved
	}

	if resume != nil && fresh {
		if err := store.DeleteSnapshot(flagOwner, v.ID); err != nil {
			logger.Warn("could not delete saved game", "game", v.ID, "error", err)
		}
		resume = nil
	}

	if resume != nil {
		choice, err := tui.RunResume(v.Title, *resume, cfg)
		if err != nil {
			return err
		}
		switch choice {
		case tui.ResumeContinue:
			// Keep resume
		case tui.ResumeNewGame:
			if err := store.DeleteSnapshot(flagOwner, v.ID); err != nil {
				logger.Warn("could not delete saved game", "game", v.ID, "error", err)
			}
			resume = nil
		default:
			return nil
		}
	}

	game, err := registry.Create(v.ID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger.Debug("starting game", "game", v.ID, "resumed", resume != nil, "owner", flagOwner)
	return tui.Run(game, cfg, tui.Options{
		Store:  store,
		Logger: logger,
		Owner:  flagOwner,
		Resume: resume,
	})
}
