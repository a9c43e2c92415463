package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for the specified game, or a summary of every
game when none is given.

Examples:
  arcade scores
  arcade scores birdstrike
  arcade scores dino --limit 20
  arcade scores maze --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the game's score history and best score")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	gameID := args[0]
	info, ok := registry.Info(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", info.Title)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.Best(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-12s  %-8s  %-6s  %-8s  %s\n", "Game", "Best", "Games", "Average", "Last played")
	fmt.Printf("  %-12s  %-8s  %-6s  %-8s  %s\n", "----", "----", "-----", "-------", "-----------")
	for _, g := range registry.List() {
		s, ok := stats[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %-8d  %-6d  %-8.0f  %s\n",
			s.GameID, s.HighScore, s.GamesCount, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
