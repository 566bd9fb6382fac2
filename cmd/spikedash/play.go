package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spikedash/spikedash/internal/config"
	"github.com/spikedash/spikedash/internal/core"
	"github.com/spikedash/spikedash/internal/game"
	"github.com/spikedash/spikedash/internal/platform/tui"
	"github.com/spikedash/spikedash/internal/registry"
	"github.com/spikedash/spikedash/internal/storage"
	"github.com/spikedash/spikedash/internal/timeline"
)

var (
	flagConfig     string
	flagDifficulty string
	flagTrack      string
	flagTracksDir  string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Space/Up/W - Jump (hold for a higher arc)
  S/Down     - Fast fall
  P          - Pause
  C          - Cheat codes
  R          - Restart (after game over)
  B/Esc      - Back (when paused or game over)
  Q/Ctrl+C   - Quit

Difficulty presets (endless):
  easy   - Gentler speed cap and roomier gaps
  normal - The intended ramp
  hard   - Fast from the first spike
  fixed  - No progression, stays at level 1

Examples:
  spikedash play endless
  spikedash play endless --difficulty hard --seed 42
  spikedash play standard
  spikedash play standard --track ./songs/neondrive.json
  spikedash play standard --config ./my-tuning.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagTrack, "track", "", "Timeline file for standard mode (skips the picker)")
	playCmd.Flags().StringVar(&flagTracksDir, "tracks", "tracks", "Directory the track picker scans for timeline files")
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := args[0]

	// Check if mode exists
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'spikedash list' to see available modes.")
		os.Exit(1)
	}

	// Get terminal size early for the pickers
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	var kv storage.KV
	if store != nil {
		kv = store
	}

	// Set config path and difficulty before creation
	game.SetConfigPath(flagConfig)
	game.SetDifficultyPreset(flagDifficulty)

	var chosenTrack *timeline.Track

	switch modeID {
	case "endless":
		if flagDifficulty == "" {
			preset, selErr := tui.RunDifficultySelector(store, cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				os.Exit(1)
			}
			// User pressed back or quit
			if preset == nil {
				return
			}
			game.SetDifficultyPreset(string(*preset))
		}

	case "standard":
		if flagTrack != "" {
			track, loadErr := timeline.Load(flagTrack)
			if loadErr != nil {
				fmt.Fprintf(os.Stderr, "Error loading track: %v\n", loadErr)
				os.Exit(1)
			}
			chosenTrack = track
		} else {
			settings := config.LoadSettings(config.SettingsKV(kv))
			selection, selErr := tui.RunTrackSelector(flagTracksDir, settings.LastTrack, cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				os.Exit(1)
			}
			// User pressed back or quit
			if selection == nil {
				return
			}
			chosenTrack = selection.Track

			settings.LastTrack = selection.Path
			//nolint:errcheck // Best-effort save
			config.SaveSettings(config.SettingsKV(kv), settings)
		}
	}

	// Create game instance
	g, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if chosenTrack != nil {
		if sg, ok := g.(*game.Game); ok {
			sg.SetTrack(chosenTrack)
		}
	}

	// Run the game
	runErr := tui.Run(g, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
