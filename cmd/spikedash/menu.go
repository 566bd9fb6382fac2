package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spikedash/spikedash/internal/cheats"
	"github.com/spikedash/spikedash/internal/config"
	"github.com/spikedash/spikedash/internal/core"
	"github.com/spikedash/spikedash/internal/game"
	"github.com/spikedash/spikedash/internal/platform/tui"
	"github.com/spikedash/spikedash/internal/registry"
	"github.com/spikedash/spikedash/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with a mode picker menu",
	Long: `Start the game in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Run history
  C            - Cheat codes
  Q            - Quit

Examples:
  spikedash menu
  spikedash menu --fps 30
  spikedash menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	// Uses global flags from main.go (--fps, --seed, --db)
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagTracksDir, "tracks", "tracks", "Directory the track picker scans for timeline files")
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	var kv storage.KV
	if store != nil {
		kv = store
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
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

	game.SetConfigPath(flagConfig)

	// Menu loop
	for {
		// Reload cheats each pass; the cheat screen or a run may have
		// changed them
		settings := config.LoadSettings(config.SettingsKV(kv))
		active := cheats.NewSet(settings.ActiveCodes...)

		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg, active)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants the run history
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		// Check if user wants the cheat screen
		if menuResult.WantsCheats {
			if chErr := tui.RunCheatScreen(store, cfg.ScreenW, cfg.ScreenH); chErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", chErr)
			}
			continue // Back to menu
		}

		modeID := menuResult.GameID
		if modeID == "" {
			break
		}

		// Per-mode setup before creation
		var selection *tui.TrackSelection
		switch modeID {
		case "standard":
			sel, selErr := tui.RunTrackSelector(flagTracksDir, settings.LastTrack, cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}

			// User pressed back or quit
			if sel == nil {
				continue
			}
			selection = sel

			settings.LastTrack = sel.Path
			//nolint:errcheck // Best-effort save
			config.SaveSettings(config.SettingsKV(kv), settings)

		case "endless":
			preset, selErr := tui.RunDifficultySelector(store, cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}

			// User pressed back or quit
			if preset == nil {
				continue
			}
			game.SetDifficultyPreset(string(*preset))
		}

		// Create game instance
		g, err := registry.Create(modeID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if selection != nil && selection.Track != nil {
			if sg, ok := g.(*game.Game); ok {
				sg.SetTrack(selection.Track)
			}
		}

		// Update seed for each run
		cfg.Seed = time.Now().UnixNano()

		// Run the game
		if err := tui.Run(g, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
