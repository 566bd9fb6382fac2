package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/spikedash/spikedash/internal/cheats"
	"github.com/spikedash/spikedash/internal/config"
	"github.com/spikedash/spikedash/internal/core"
	"github.com/spikedash/spikedash/internal/registry"
	"github.com/spikedash/spikedash/internal/storage"
)

// presetAware is implemented by games whose difficulty can be tuned per
// instance. SSH sessions use it so picks don't leak between players.
type presetAware interface {
	SetPreset(config.DifficultyPreset)
}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.spikedash/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// TracksDir is where sessions look for timeline files. Empty means
	// only the demo rhythm is offered.
	TracksDir string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.spikedash/runs.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server serving the game to remote terminals.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "spikedash-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".spikedash", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.store, cfg, sshSession.User(), s.config.TracksDir)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionPhase tracks which screen an SSH session is on.
type sessionPhase int

const (
	phaseMenu sessionPhase = iota
	phaseTrack
	phaseDifficulty
	phaseCheats
	phaseGame
	phaseScores
)

// SessionModel manages the full session flow for one remote player:
// menu, mode pickers, the run itself, and the run history screen.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	username  string
	tracksDir string

	settings     config.Settings
	activeCheats cheats.Set

	phase     sessionPhase
	menu      MenuModel
	trackPick TrackModel
	diffPick  EndlessModel
	scores    ScoreboardModel
	overlay   cheatOverlay
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username, tracksDir string) SessionModel {
	settings := config.LoadSettings(settingsKV(store))
	active := cheats.NewSet(settings.ActiveCodes...)

	return SessionModel{
		store:        store,
		config:       cfg,
		username:     username,
		tracksDir:    tracksDir,
		settings:     settings,
		activeCheats: active,
		menu:         NewMenuModel(store, cfg, active),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.phase {
	case phaseGame:
		return m.updateGame(msg)
	case phaseTrack:
		return m.updateTrackPick(msg)
	case phaseDifficulty:
		return m.updateDifficultyPick(msg)
	case phaseCheats:
		return m.updateCheats(msg)
	case phaseScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// backToMenu returns the session to a freshly built menu so best
// records and the skin line reflect whatever just happened.
func (m *SessionModel) backToMenu() tea.Cmd {
	m.settings = config.LoadSettings(settingsKV(m.store))
	m.activeCheats = cheats.NewSet(m.settings.ActiveCodes...)
	m.phase = phaseMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.store, m.config, m.activeCheats)
	return m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.phase = phaseScores
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()
	}

	if m.menu.WantsCheats() {
		m.phase = phaseCheats
		m.overlay = newCheatOverlay()
		return m, m.overlay.Open()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.config = m.menu.Config()
		switch selected.GameID {
		case "standard":
			m.phase = phaseTrack
			m.trackPick = NewTrackModel(m.tracksDir, m.settings.LastTrack, m.config.ScreenW, m.config.ScreenH)
			return m, m.trackPick.Init()
		case "endless":
			m.phase = phaseDifficulty
			m.diffPick = NewEndlessModel(m.store, m.config.ScreenW, m.config.ScreenH)
			return m, m.diffPick.Init()
		}
	}

	return m, cmd
}

// updateTrackPick handles the standard-mode track picker.
func (m SessionModel) updateTrackPick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newModel, cmd := m.trackPick.Update(msg)
	if pick, ok := newModel.(TrackModel); ok {
		m.trackPick = pick
	}

	if m.trackPick.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.trackPick.WantsBack() {
		return m, m.backToMenu()
	}

	if sel := m.trackPick.Selected(); sel != nil {
		game, err := registry.Create("standard")
		if err != nil {
			// Shouldn't happen since both modes register on startup
			return m, m.backToMenu()
		}
		if sel.Track != nil {
			if loader, ok := game.(trackLoader); ok {
				loader.SetTrack(sel.Track)
			}
		}

		m.settings.LastTrack = sel.Path
		//nolint:errcheck // Best-effort save
		config.SaveSettings(settingsKV(m.store), m.settings)

		return m.startGame(game)
	}

	return m, cmd
}

// updateDifficultyPick handles the endless-mode difficulty picker.
func (m SessionModel) updateDifficultyPick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newModel, cmd := m.diffPick.Update(msg)
	if pick, ok := newModel.(EndlessModel); ok {
		m.diffPick = pick
	}

	if m.diffPick.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.diffPick.WantsBack() {
		return m, m.backToMenu()
	}

	if preset := m.diffPick.Selected(); preset != nil {
		game, err := registry.Create("endless")
		if err != nil {
			return m, m.backToMenu()
		}
		if aware, ok := game.(presetAware); ok {
			aware.SetPreset(*preset)
		}
		return m.startGame(game)
	}

	return m, cmd
}

// startGame moves the session into a run with the prepared game.
func (m SessionModel) startGame(game registry.Game) (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	gameModel := NewGameModel(game, m.store, m.config, m.activeCheats)
	m.gameModel = &gameModel
	m.phase = phaseGame
	return m, m.gameModel.Init()
}

// updateCheats handles the cheat code screen reached from the menu.
func (m SessionModel) updateCheats(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var changed bool
	var cmd tea.Cmd
	m.activeCheats, changed, cmd = m.overlay.HandleKey(keyMsg, m.activeCheats)
	if changed {
		m.settings.ActiveCodes = m.activeCheats.List()
		//nolint:errcheck // Best-effort save, purely cosmetic state
		config.SaveSettings(settingsKV(m.store), m.settings)
	}

	if !m.overlay.open {
		return m, m.backToMenu()
	}

	return m, cmd
}

// updateScores handles the run history screen.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newModel, cmd := m.scores.Update(msg)
	if scores, ok := newModel.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		return m, m.backToMenu()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		return m, m.backToMenu()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case phaseTrack:
		return m.trackPick.View()
	case phaseDifficulty:
		return m.diffPick.View()
	case phaseCheats:
		return m.overlay.View(m.config.ScreenW, m.config.ScreenH, m.activeCheats)
	case phaseScores:
		return m.scores.View()
	}

	view := m.menu.View()
	if m.username != "" {
		view = centerText(fmt.Sprintf("connected as %s", m.username), m.config.ScreenW) + "\n" + view
	}
	return view
}

// GameModel wraps one run inside an SSH session, with back-to-menu
// capability instead of quitting the program.
type GameModel struct {
	game         registry.Game
	screen       *core.Screen
	store        *storage.Store
	config       core.RuntimeConfig
	inputFrame   core.InputFrame
	gameState    core.GameState
	keyMapper    *KeyMapper
	activeCheats cheats.Set
	overlay      cheatOverlay
	quitting     bool
	backToMenu   bool
	runSaved     bool
}

// NewGameModel creates a game model for a session run.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, active cheats.Set) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if aware, ok := game.(cheatAware); ok {
		aware.ApplyCheats(active)
	}

	return GameModel{
		game:         game,
		screen:       core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:        store,
		config:       cfg,
		inputFrame:   core.NewInputFrame(),
		keyMapper:    NewKeyMapper(),
		activeCheats: active,
		overlay:      newCheatOverlay(),
	}
}

// Init initializes the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if !m.gameState.GameOver {
			m.game.Reset(m.config)
		}
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay.open {
		var changed bool
		var cmd tea.Cmd
		m.activeCheats, changed, cmd = m.overlay.HandleKey(msg, m.activeCheats)
		if changed {
			m.applyCheats()
		}
		return m, cmd
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
		// Back to menu only once the run is over or paused
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// applyCheats pushes the active set into the game and persists it.
func (m *GameModel) applyCheats() {
	if aware, ok := m.game.(cheatAware); ok {
		aware.ApplyCheats(m.activeCheats)
	}
	settings := config.LoadSettings(settingsKV(m.store))
	settings.ActiveCodes = m.activeCheats.List()
	//nolint:errcheck // Best-effort save, purely cosmetic state
	config.SaveSettings(settingsKV(m.store), settings)
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	// The world freezes while the cheat overlay is up
	if m.overlay.open {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Record the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		persistRun(m.store, m.game, m.gameState)
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.overlay.open {
		return m.overlay.View(m.config.ScreenW, m.config.ScreenH, m.activeCheats)
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
