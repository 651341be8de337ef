package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagSavedClear bool

var savedCmd = &cobra.Command{
	Use:   "saved [board]",
	Short: "Show or clear saved games",
	Long: `Without an argument, lists the unfinished games of the owner.
With a board, prints the saved board.

Examples:
  t2048 saved
  t2048 saved 2048
  t2048 saved 2048 --clear
  t2048 saved --owner alice`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSaved,
}

func init() {
	savedCmd.Flags().BoolVar(&flagSavedClear, "clear", false, "Delete the saved game for the board")
}

func runSaved(cmd *cobra.Command, args []string) {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		listSaved(store)
		return
	}

	variant, ok := registry.Lookup(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", args[0])
		os.Exit(1)
	}

	if flagSavedClear {
		if err := store.DeleteSnapshot(flagOwner, variant.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting saved game: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved game on %s cleared.\n", variant.Title)
		return
	}

	snap, err := store.LoadSnapshot(flagOwner, variant.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading saved game: %v\n", err)
		os.Exit(1)
	}
	if snap == nil {
		fmt.Printf("No saved game on %s.\n", variant.Title)
		return
	}

	session, err := t2048.Restore(*snap, variant.Sides, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Saved game is unreadable: %v\n", err)
		os.Exit(1)
	}

	score := session.Score()
	fmt.Printf("%s - score %d (best %d) - %s\n", variant.Title, score.Current, score.Best, session.Status())
	fmt.Println()
	fmt.Print(formatGrid(session.Grid()))
}

func listSaved(store *storage.Store) {
	games, err := store.SavedGames(flagOwner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing saved games: %v\n", err)
		os.Exit(1)
	}
	if len(games) == 0 {
		fmt.Printf("No saved games for %s.\n", flagOwner)
		return
	}

	fmt.Printf("  %-10s  %-5s  %-8s  %s\n", "Board", "Size", "Score", "Updated")
	fmt.Printf("  %-10s  %-5s  %-8s  %s\n", "-----", "----", "-----", "-------")
	for _, g := range games {
		size := fmt.Sprintf("%dx%d", g.Sides, g.Sides)
		fmt.Printf("  %-10s  %-5s  %-8d  %s\n", g.GameID, size, g.Score.Current, g.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

// formatGrid prints the board row by row, "." for empty cells.
func formatGrid(g *t2048.Grid) string {
	var b strings.Builder
	for j := range g.Sides() {
		for i := range g.Sides() {
			if t, ok := g.Get(i, j); ok {
				fmt.Fprintf(&b, "%6d", t.Value)
			} else {
				fmt.Fprintf(&b, "%6s", ".")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
