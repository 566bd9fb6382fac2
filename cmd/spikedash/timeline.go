package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spikedash/spikedash/internal/score"
	"github.com/spikedash/spikedash/internal/timeline"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <file>",
	Short: "Inspect a music timeline file",
	Long: `Validate a track analysis file and print what the level builder
will see: duration, tempo, beats, drops and the big drop moments.

Examples:
  spikedash timeline ./songs/neondrive.json`,
	Args: cobra.ExactArgs(1),
	Run:  runTimeline,
}

func runTimeline(cmd *cobra.Command, args []string) {
	path := args[0]

	tr, err := timeline.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Track: %s\n", path)
	fmt.Println()
	fmt.Printf("  Duration:  %s\n", score.FormatTime(tr.Duration))
	fmt.Printf("  Tempo:     %.0f BPM\n", tr.Tempo)
	fmt.Printf("  Beats:     %d\n", tr.BeatCount)
	fmt.Printf("  Drops:     %d\n", len(tr.Drops))
	fmt.Printf("  Big drops: %d\n", len(tr.BigDrops))
	fmt.Printf("  Frames:    %d\n", len(tr.Frames))

	if len(tr.BigDrops) > 0 {
		fmt.Println()
		fmt.Println("  Big drop moments:")
		for _, bd := range tr.BigDrops {
			fmt.Printf("    %s  (%.0f%% in, intensity %.1f)\n",
				score.FormatTime(bd.Time), bd.Percent, bd.Intensity)
		}
	}

	fmt.Println()
	fmt.Printf("Play it with: spikedash play standard --track %s\n", path)
}
