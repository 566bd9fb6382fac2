package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spikedash/spikedash/internal/cheats"
	"github.com/spikedash/spikedash/internal/config"
	"github.com/spikedash/spikedash/internal/storage"
)

// cheatOverlay is the code entry screen reachable from the menu and from
// a paused run. It owns the text input and feedback line; the parent
// model owns the active set and persists it after a toggle.
type cheatOverlay struct {
	input    textinput.Model
	feedback string
	open     bool
}

func newCheatOverlay() cheatOverlay {
	ti := textinput.New()
	ti.Placeholder = "enter code"
	ti.Prompt = "> "
	ti.CharLimit = 24
	ti.Width = 20
	return cheatOverlay{input: ti}
}

// Open shows the overlay and focuses the input.
func (c *cheatOverlay) Open() tea.Cmd {
	c.open = true
	c.feedback = ""
	c.input.SetValue("")
	return c.input.Focus()
}

// Close hides the overlay.
func (c *cheatOverlay) Close() {
	c.open = false
	c.input.Blur()
}

// HandleKey processes a key while the overlay is open. It returns the
// possibly updated active set and whether a toggle happened.
func (c *cheatOverlay) HandleKey(msg tea.KeyMsg, active cheats.Set) (cheats.Set, bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		c.Close()
		return active, false, nil
	case "enter":
		raw := c.input.Value()
		if strings.TrimSpace(raw) == "" {
			c.Close()
			return active, false, nil
		}
		c.input.SetValue("")

		next, res := cheats.Toggle(raw, active)
		if !res.Valid {
			c.feedback = "Unknown code"
			return active, false, nil
		}
		entry, _ := cheats.Find(cheats.Normalize(raw))
		if res.Activated {
			c.feedback = fmt.Sprintf("%s activated", entry.Name)
		} else {
			c.feedback = fmt.Sprintf("%s deactivated", entry.Name)
		}
		return next, true, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return active, false, cmd
}

// View renders the cheat screen.
func (c *cheatOverlay) View(width, height int, active cheats.Set) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	activeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("CHEAT CODES"))
	b.WriteString("\n\n")

	for _, entry := range cheats.Catalog {
		if active.Has(entry.Code) {
			b.WriteString(activeStyle.Render(fmt.Sprintf("[x] %s", entry.Name)))
		} else {
			b.WriteString(fmt.Sprintf("[ ] %s", entry.Name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(c.input.View())
	b.WriteString("\n")
	if c.feedback != "" {
		b.WriteString(c.feedback)
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Enter: toggle  |  Esc: back"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(b.String()))
}

// cheatScreenModel runs the overlay as its own program for the CLI
// menu loop, persisting toggles as they happen.
type cheatScreenModel struct {
	overlay cheatOverlay
	store   *storage.Store
	active  cheats.Set
	width   int
	height  int
}

func (m cheatScreenModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m cheatScreenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		var changed bool
		var cmd tea.Cmd
		m.active, changed, cmd = m.overlay.HandleKey(msg, m.active)
		if changed {
			settings := config.LoadSettings(settingsKV(m.store))
			settings.ActiveCodes = m.active.List()
			//nolint:errcheck // Best-effort save, purely cosmetic state
			config.SaveSettings(settingsKV(m.store), settings)
		}
		if !m.overlay.open {
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

func (m cheatScreenModel) View() string {
	if !m.overlay.open {
		return ""
	}
	return m.overlay.View(m.width, m.height, m.active)
}

// RunCheatScreen shows the cheat code screen standalone and returns
// once the user backs out. Toggles are persisted immediately.
func RunCheatScreen(store *storage.Store, width, height int) error {
	settings := config.LoadSettings(settingsKV(store))

	// Opened before the program starts; Init only restarts the blink.
	overlay := newCheatOverlay()
	overlay.Open()

	model := cheatScreenModel{
		overlay: overlay,
		store:   store,
		active:  cheats.NewSet(settings.ActiveCodes...),
		width:   width,
		height:  height,
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
