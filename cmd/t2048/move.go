package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var moveCmd = &cobra.Command{
	Use:   "move <board> <direction>...",
	Short: "Play moves on a saved game without the TUI",
	Long: `Apply one or more moves to the owner's saved game on a board and print
the result. A new game is started if none is saved. Directions are up,
right, down, left or their first letter.

The game is saved after the moves; a lost game records its score and is
removed, just like in the interactive mode.

Examples:
  t2048 move 2048 left
  t2048 move 2048 u u l d
  t2048 move 2048_5x5 right --owner bob`,
	Args: cobra.MinimumNArgs(2),
	Run:  runMove,
}

func runMove(cmd *cobra.Command, args []string) {
	variant, ok := registry.Lookup(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", args[0])
		os.Exit(1)
	}

	dirs := make([]t2048.Direction, 0, len(args)-1)
	for _, a := range args[1:] {
		dir, err := t2048.ParseDirection(a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		dirs = append(dirs, dir)
	}

	logger := newLogger(os.Stderr)

	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer closeStore(store, logger)

	session, err := loadSession(store, variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, dir := range dirs {
		outcome := session.ApplyMove(dir)
		logger.Debug("move", "dir", dir, "changed", outcome.Changed, "gained", outcome.ScoreDelta)
		if t2048.IsWin(outcome) {
			fmt.Printf("You reached %d!\n", t2048.WinTarget)
		}
		if session.IsLoss() {
			break
		}
	}

	score := session.Score()
	if session.IsLoss() {
		if score.Current > 0 {
			if _, err := store.SaveScore(variant.ID, score.Current); err != nil {
				logger.Warn("could not save score", "error", err)
			}
		}
		if err := store.DeleteSnapshot(flagOwner, variant.ID); err != nil {
			logger.Warn("could not delete saved game", "error", err)
		}
	} else if err := store.SaveSnapshot(flagOwner, variant.ID, session.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving game: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s - score %d (best %d) - %s\n", variant.Title, score.Current, score.Best, session.Status())
	fmt.Println()
	fmt.Print(formatGrid(session.Grid()))
}

// loadSession resumes the saved game or starts a new one. An unreadable
// saved game is replaced by a new one.
func loadSession(store *storage.Store, v registry.Variant) (*t2048.Session, error) {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	best, err := store.HighScore(v.ID)
	if err != nil {
		return nil, err
	}

	snap, err := store.LoadSnapshot(flagOwner, v.ID)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		session, err := t2048.Restore(*snap, v.Sides, rng)
		if err == nil {
			session.SeedBest(best)
			return session, nil
		}
		fmt.Fprintf(os.Stderr, "Discarding unreadable saved game: %v\n", err)
	}

	session, err := t2048.NewSession(v.Sides, rng)
	if err != nil {
		return nil, err
	}
	session.SeedBest(best)
	return session, nil
}
