package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spikedash/spikedash/internal/config"
	"github.com/spikedash/spikedash/internal/core"
	"github.com/spikedash/spikedash/internal/score"
	"github.com/spikedash/spikedash/internal/storage"
)

// DifficultyOption pairs a preset with its pitch line.
type DifficultyOption struct {
	Preset config.DifficultyPreset
	Label  string
	Blurb  string
}

var difficultyOptions = []DifficultyOption{
	{config.DifficultyNormal, "Normal", "the intended ramp"},
	{config.DifficultyEasy, "Easy", "gentler speed cap, roomier gaps"},
	{config.DifficultyHard, "Hard", "fast from the first spike"},
	{config.DifficultyFixed, "Fixed", "level 1 forever, zen mode"},
}

// EndlessModel lets users pick a difficulty preset before an endless run.
type EndlessModel struct {
	options   []DifficultyOption
	cursor    int
	best      float64 // best survival in seconds, 0 when unknown
	width     int
	height    int
	keyMapper *KeyMapper
	choosing  bool
	quitting  bool
	back      bool
}

// NewEndlessModel creates a difficulty picker. The store may be nil.
func NewEndlessModel(store *storage.Store, width, height int) EndlessModel {
	m := EndlessModel{
		options:   difficultyOptions,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}

	m.best = score.HighScore(kvOf(store))

	return m
}

// Init initializes the model.
func (m EndlessModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m EndlessModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m EndlessModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the difficulty picker.
func (m EndlessModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("ENDLESS RUN", m.width))
	b.WriteString("\n")
	if m.best > 0 {
		b.WriteString(centerText(fmt.Sprintf("best survival %s", score.FormatTime(m.best)), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-8s %s", cursor, opt.Label, opt.Blurb), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or nil if still choosing.
func (m EndlessModel) Selected() *config.DifficultyPreset {
	if m.choosing {
		return nil
	}
	preset := m.options[m.cursor].Preset
	return &preset
}

// IsQuitting returns true if user wants to quit.
func (m EndlessModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m EndlessModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the difficulty picker and returns the preset.
// A nil result means the user backed out.
func RunDifficultySelector(store *storage.Store, cfg core.RuntimeConfig) (*config.DifficultyPreset, error) {
	model := NewEndlessModel(store, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(EndlessModel)
	if !ok {
		return nil, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
