package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spikedash/spikedash/internal/cheats"
	"github.com/spikedash/spikedash/internal/config"
	"github.com/spikedash/spikedash/internal/core"
	"github.com/spikedash/spikedash/internal/registry"
	"github.com/spikedash/spikedash/internal/score"
	"github.com/spikedash/spikedash/internal/storage"
	"github.com/spikedash/spikedash/internal/timeline"
)

// cheatAware is implemented by modes that render unlockable skins.
type cheatAware interface {
	ApplyCheats(active cheats.Set)
}

// trackLoader is implemented by modes that play a music timeline.
type trackLoader interface {
	SetTrack(tr *timeline.Track)
}

// kvOf returns the store as a KV, keeping a nil store as a nil interface.
func kvOf(store *storage.Store) storage.KV {
	if store == nil {
		return nil
	}
	return store
}

// settingsKV picks the store settings live in: the per-user app data
// directory when available, the runs database otherwise.
func settingsKV(store *storage.Store) storage.KV {
	return config.SettingsKV(kvOf(store))
}

// Model is the Bubble Tea model for running a single mode locally.
type Model struct {
	game         registry.Game
	screen       *core.Screen
	store        *storage.Store
	config       core.RuntimeConfig
	inputFrame   core.InputFrame
	gameState    core.GameState
	keyMapper    *KeyMapper
	settings     config.Settings
	activeCheats cheats.Set
	overlay      cheatOverlay
	quitting     bool
	runSaved     bool // Whether the finished run has been recorded
}

// NewModel creates a new Bubble Tea model for the given mode.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	settings := config.LoadSettings(settingsKV(store))
	active := cheats.NewSet(settings.ActiveCodes...)
	if aware, ok := game.(cheatAware); ok {
		aware.ApplyCheats(active)
	}

	return Model{
		game:         game,
		screen:       core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:        store,
		config:       cfg,
		inputFrame:   core.NewInputFrame(),
		keyMapper:    NewKeyMapper(),
		settings:     settings,
		activeCheats: active,
		overlay:      newCheatOverlay(),
	}
}

// Init initializes the model and starts the run.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay.open {
		var changed bool
		var cmd tea.Cmd
		m.activeCheats, changed, cmd = m.overlay.HandleKey(msg, m.activeCheats)
		if changed {
			m.applyCheats()
		}
		return m, cmd
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionCheats:
		return m, m.overlay.Open()
	case core.ActionBack:
		// Leaving mid-run needs a pause first so it cannot happen by accident
		if m.gameState.GameOver || m.gameState.Paused {
			m.quitting = true
			return m, tea.Quit
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// applyCheats pushes the active set into the game and persists it.
func (m *Model) applyCheats() {
	if aware, ok := m.game.(cheatAware); ok {
		aware.ApplyCheats(m.activeCheats)
	}
	m.settings.ActiveCodes = m.activeCheats.List()
	//nolint:errcheck // Best-effort save, purely cosmetic state
	config.SaveSettings(settingsKV(m.store), m.settings)
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Restart with the new dimensions; a finished run keeps its screen
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// The world freezes while the cheat overlay is up
	if m.overlay.open {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new run
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Record the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		persistRun(m.store, m.game, m.gameState)
		m.runSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// persistRun saves a finished run and updates the personal records.
// Best-effort: the game over screen shows regardless.
func persistRun(store *storage.Store, g registry.Game, st core.GameState) {
	if store == nil || st.Seconds <= 0 {
		return
	}

	//nolint:errcheck // Best-effort save
	store.SaveRun(g.ID(), st.Seconds, st.Progress)

	switch g.ID() {
	case "endless":
		score.SaveHighScore(store, st.Seconds)
	case "standard":
		score.SaveBestProgress(store, st.Progress)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".spikedash", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.overlay.open {
		return m.overlay.View(m.config.ScreenW, m.config.ScreenH, m.activeCheats)
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
