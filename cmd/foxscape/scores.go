package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/foxscape/internal/games/foxscape"
	"github.com/vovakirdan/foxscape/internal/platform/tui"
	"github.com/vovakirdan/foxscape/internal/registry"
	"github.com/vovakirdan/foxscape/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
	flagLimit       int
	flagRecent      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the best runs",
	Long: `Display the top runs and the stored best score of a variant.

Examples:
  foxscape scores
  foxscape scores foxscape_classic --limit 20
  foxscape scores --recent
  foxscape scores --interactive
  foxscape scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history (the stored best is kept)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := foxscape.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'foxscape list' to see the variants", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared the run history of %s.\n", gameID)
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, gameID, width, height)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	heading := "High Scores"
	query := store.TopScores
	if flagRecent {
		heading = "Recent Runs"
		query = store.RecentScores
	}
	scores, err := query(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("%s - %s\n", heading, game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'foxscape play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "#", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", storedBest(store, gameID))
	return nil
}

// storedBest returns the best score the game itself persisted, falling back
// to the history when no scalar was written.
func storedBest(store *storage.Store, gameID string) int {
	best := 0
	if raw, ok, err := store.Load(foxscape.BestScoreKey(gameID)); err == nil && ok {
		best = foxscape.ParseBest(raw)
	}
	if flagStore == storeGdata {
		if g, err := storage.OpenGdata(gdataApp); err == nil {
			if raw, ok, err := g.Load(foxscape.BestScoreKey(gameID)); err == nil && ok {
				best = max(best, foxscape.ParseBest(raw))
			}
		}
	}
	if hs, err := store.HighScore(gameID); err == nil {
		best = max(best, hs)
	}
	return best
}
