// spikedash is a rhythm-based side-scrolling jumper for the terminal.
//
// Usage:
//
//	spikedash list               - List the game modes
//	spikedash play <mode>        - Play a mode directly
//	spikedash menu               - Start the interactive mode picker
//	spikedash serve              - Start SSH server for remote play
//	spikedash scores <mode>      - Show run history for a mode
//	spikedash timeline <file>    - Inspect a music timeline file
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible endless runs
//	--db <path>     - Set database path (default: ~/.spikedash/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register both modes
	_ "github.com/spikedash/spikedash/internal/game"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spikedash",
	Short: "Spikedash - Jump the spikes, ride the beat",
	Long: `Spikedash is a terminal side-scroller: hold to jump higher, dodge the
spike clusters, and in standard mode survive a level generated from a
music timeline until the track ends.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View run history
  timeline - Inspect a music timeline file

Examples:
  spikedash play endless
  spikedash play standard --track ./songs/neondrive.json
  spikedash menu
  spikedash serve --ssh :2222
  spikedash scores endless`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.spikedash/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(timelineCmd)
}
