package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and best runs",
	Long: `Display the stored high score, a summary of all runs and the best
runs recorded in the scores database.

Examples:
  spacewar scores
  spacewar scores --limit 25
  spacewar scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (the high score is kept)")
}

func runScores(cmd *cobra.Command, args []string) {
	// Open score storage
	store, err := storage.Open(context.Background(), flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Println("Run history cleared.")
		return
	}

	key := config.Default().HighScoreKey
	if cfg, err := config.Load(flagConfig); err == nil {
		key = cfg.HighScoreKey
	}

	highScore, err := store.HighScore(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving high score: %v\n", err)
		return
	}

	// Get top runs
	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("Space War - Records")
	fmt.Println()
	fmt.Printf("High score: %d\n", highScore)

	if len(runs) == 0 {
		fmt.Println()
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'spacewar play' to set the first record!")
		return
	}

	if sum, err := store.Summary(); err == nil {
		fmt.Printf("Runs: %d   Average: %.0f   Total play time: %s   Last played: %s\n",
			sum.Runs, sum.AvgScore, sum.PlayTime.Round(time.Second), sum.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	// Print header
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "----", "----")

	// Print runs
	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-8s  %s\n", i+1, r.Score, r.PlayTime.Round(time.Second), dateStr)
	}
}
