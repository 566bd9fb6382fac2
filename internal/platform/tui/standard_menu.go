package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spikedash/spikedash/internal/core"
	"github.com/spikedash/spikedash/internal/score"
	"github.com/spikedash/spikedash/internal/timeline"
)

// TrackOption is one entry of the standard-mode track picker.
type TrackOption struct {
	Name string
	Path string // empty for the built-in demo rhythm
}

// TrackSelection holds the user's choice from the track picker.
// Track is nil when the built-in demo rhythm was chosen.
type TrackSelection struct {
	Name  string
	Path  string
	Track *timeline.Track
}

// discoverTracks lists the analysis files in dir, demo rhythm first.
func discoverTracks(dir string) []TrackOption {
	opts := []TrackOption{{Name: "Demo Rhythm"}}
	if dir == "" {
		return opts
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return opts
	}

	var files []TrackOption
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, TrackOption{
			Name: strings.TrimSuffix(e.Name(), ".json"),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return append(opts, files...)
}

// TrackModel lets users pick the timeline for a standard run.
type TrackModel struct {
	options   []TrackOption
	summaries map[string]string // path -> one-line summary, filled on hover
	cursor    int
	lastTrack string // path of the previously played track, marked in the list
	errMsg    string
	width     int
	height    int
	keyMapper *KeyMapper
	selection TrackSelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewTrackModel creates a track picker over the given directory.
func NewTrackModel(dir, lastTrack string, width, height int) TrackModel {
	m := TrackModel{
		options:   discoverTracks(dir),
		summaries: make(map[string]string),
		lastTrack: lastTrack,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}

	// Open on the last played track when it is still around
	for i, opt := range m.options {
		if opt.Path != "" && opt.Path == lastTrack {
			m.cursor = i
			break
		}
	}
	m.summarize(m.cursor)

	return m
}

// summarize loads the track under the cursor and caches its one-line
// description. Unreadable files are reported when selected, not here.
func (m TrackModel) summarize(i int) {
	if i < 0 || i >= len(m.options) {
		return
	}
	opt := m.options[i]
	if opt.Path == "" {
		return
	}
	if _, ok := m.summaries[opt.Path]; ok {
		return
	}
	track, err := timeline.Load(opt.Path)
	if err != nil {
		m.summaries[opt.Path] = "unreadable file"
		return
	}
	m.summaries[opt.Path] = TrackSummary(track)
}

// Init initializes the model.
func (m TrackModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m TrackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m TrackModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.errMsg = ""
			m.summarize(m.cursor)
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
			m.errMsg = ""
			m.summarize(m.cursor)
		}
	case MenuActionSelect:
		opt := m.options[m.cursor]
		if opt.Path == "" {
			m.choosing = false
			m.selection = TrackSelection{Name: opt.Name}
			return m, tea.Quit
		}
		track, err := timeline.Load(opt.Path)
		if err != nil {
			m.errMsg = fmt.Sprintf("cannot load %s: %v", opt.Name, err)
			return m, nil
		}
		m.choosing = false
		m.selection = TrackSelection{Name: opt.Name, Path: opt.Path, Track: track}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the track picker.
func (m TrackModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT TRACK", m.width))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%s", cursor, opt.Name)
		if opt.Path != "" && opt.Path == m.lastTrack {
			line += "  (last played)"
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	hovered := m.options[m.cursor]
	summary := TrackSummary(nil)
	if hovered.Path != "" {
		summary = m.summaries[hovered.Path]
	}
	if summary != "" {
		b.WriteString("\n")
		b.WriteString(centerText(summary, m.width))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.errMsg, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Drop a timeline .json next to the binary to play your own music", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m TrackModel) Selected() *TrackSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m TrackModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m TrackModel) WantsBack() bool {
	return m.back
}

// TrackSummary formats a one-line description of a loaded track.
func TrackSummary(tr *timeline.Track) string {
	if tr == nil {
		return "demo rhythm"
	}
	return fmt.Sprintf("%s, %d BPM, %d beats, %d drops",
		score.FormatTime(tr.Duration), int(tr.Tempo), tr.BeatCount, len(tr.Drops)+len(tr.BigDrops))
}

// RunTrackSelector runs the track picker and returns the selection.
// A nil selection means the user backed out.
func RunTrackSelector(dir, lastTrack string, cfg core.RuntimeConfig) (*TrackSelection, error) {
	model := NewTrackModel(dir, lastTrack, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(TrackModel)
	if !ok {
		return nil, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
