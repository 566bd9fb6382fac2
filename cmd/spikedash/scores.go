package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spikedash/spikedash/internal/registry"
	"github.com/spikedash/spikedash/internal/score"
	"github.com/spikedash/spikedash/internal/storage"
)

var flagClearRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show run history for a mode",
	Long: `Display the top 10 runs for the specified mode.

Endless runs rank by survival time, standard runs by track completion.

Examples:
  spikedash scores endless
  spikedash scores standard
  spikedash scores endless --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearRuns, "clear", false, "Delete the run history for this mode")
}

func formatRun(r storage.Run) string {
	if r.Mode == "standard" {
		return fmt.Sprintf("%3.0f%%  %s", r.Progress*100, score.FormatTime(r.Seconds))
	}
	return score.FormatTime(r.Seconds)
}

func runScores(cmd *cobra.Command, args []string) {
	modeID := args[0]

	// Check if mode exists
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'spikedash list' to see available modes.")
		os.Exit(1)
	}

	// Get mode title
	g, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := g.Title()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearRuns {
		if err := store.ClearRuns(modeID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Run history cleared for %s.\n", title)
		return
	}

	// Get top runs
	runs, err := store.TopRuns(modeID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	// Display runs
	fmt.Printf("Run History - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'spikedash play %s' to get on the board!\n", modeID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %s\n", "Rank", "Result", "Date")
	fmt.Printf("  %-4s  %-12s  %s\n", "----", "------", "----")

	// Print runs
	for i, entry := range runs {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %s\n", i+1, formatRun(entry), dateStr)
	}

	// Show overall stats
	fmt.Println()
	if best, err := store.BestRun(modeID); err == nil && best != nil {
		fmt.Printf("Best: %s\n", formatRun(*best))
	}
	if stats, err := store.GetModeStats(modeID); err == nil && stats.RunCount > 0 {
		fmt.Printf("Total: %d runs, avg %s, last played %s\n",
			stats.RunCount, score.FormatTime(stats.AvgSecs), stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
