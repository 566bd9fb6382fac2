// Package game implements the spike-jumping runner: an auto-scrolling
// world where the player times variable-height jumps over ground spikes.
// Standard mode lays spikes out from a music timeline and ends when the
// track does; endless mode generates them procedurally with difficulty
// that ramps the longer the run survives.
package game

import (
	"github.com/spikedash/spikedash/internal/cheats"
	"github.com/spikedash/spikedash/internal/config"
	"github.com/spikedash/spikedash/internal/core"
	"github.com/spikedash/spikedash/internal/endless"
	"github.com/spikedash/spikedash/internal/registry"
	"github.com/spikedash/spikedash/internal/timeline"
)

// Mode selects between the two run types.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeEndless  Mode = "endless"
)

// flashTicks is how long the ground glows after a drop hits (standard).
const flashTicks = 12

// Game implements one run of either mode. All run state lives here;
// nothing is shared between instances.
type Game struct {
	mode Mode

	runtime core.RuntimeConfig
	cfg     config.GameConfig

	tick      int
	elapsed   float64 // seconds into the run; doubles as track position
	cameraX   float64 // world x of the screen's left edge
	playerY   float64 // height above the ground line
	playerVel float64
	grounded  bool
	holdTicks int // remaining reduced-gravity ticks for the current jump

	gameOver bool
	won      bool
	paused   bool

	// Endless mode
	field  *endless.Field
	diff   endless.Params
	preset config.DifficultyPreset // per-instance override, wins over the CLI flag

	// Standard mode
	track  *timeline.Track
	spikes []endless.Spike // precomputed level layout
	flash  int

	skin Skin
}

// configPath and difficultyPreset are set once from CLI flags and apply
// to every game instance, local or served over SSH.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the endless difficulty preset.
func SetDifficultyPreset(preset string) {
	p := config.DifficultyPreset(preset)
	if config.ValidPreset(p) {
		difficultyPreset = p
	} else {
		difficultyPreset = ""
	}
}

// New creates a standard-mode game. Without a track it plays the
// built-in demo rhythm; callers load real tracks with SetTrack.
func New() *Game {
	return &Game{mode: ModeStandard, skin: skinFor("")}
}

// NewEndless creates an endless-mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless, skin: skinFor("")}
}

// ID returns the mode identifier used for CLI commands and run storage.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Endless Survival"
	}
	return "Standard Run"
}

// SetTrack binds a music timeline for standard mode. Passing nil
// reverts to the demo rhythm. Takes effect on the next Reset.
func (g *Game) SetTrack(tr *timeline.Track) {
	g.track = tr
}

// Track returns the timeline the standard run plays, nil for endless.
func (g *Game) Track() *timeline.Track {
	if g.mode != ModeStandard {
		return nil
	}
	return g.track
}

// SetPreset overrides the difficulty preset for this instance only.
// SSH sessions use this so picks don't leak between players.
func (g *Game) SetPreset(preset config.DifficultyPreset) {
	if config.ValidPreset(preset) {
		g.preset = preset
	}
}

// ApplyCheats switches the skin to whatever the active cheat set says.
// Cosmetic only: it survives Reset and never touches run state.
func (g *Game) ApplyCheats(active cheats.Set) {
	effect, _ := cheats.ActiveSkin(active)
	g.skin = skinFor(effect)
}

// Reset initializes or restarts the run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultGameConfig()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	g.cfg = cfg

	g.tick = 0
	g.elapsed = 0
	g.cameraX = 0
	g.playerY = 0
	g.playerVel = 0
	g.grounded = true
	g.holdTicks = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.flash = 0

	switch g.mode {
	case ModeEndless:
		g.diff = cfg.Endless.Params(0)
		if g.field == nil {
			g.field = endless.NewField(runtime.Seed)
		} else {
			g.field.Reset(runtime.Seed)
		}
	case ModeStandard:
		if g.track == nil {
			g.track = DemoTrack()
		}
		g.spikes = BuildLevel(g.track, cfg.Standard, cfg.Player.Lead)
	}
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	tickRate := g.runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	// Speeds are tuned against a 60fps reference tick; scale keeps the
	// world moving at the same real-time rate under other tick rates.
	scale := 60.0 / float64(tickRate)
	g.elapsed += 1.0 / float64(tickRate)

	switch g.mode {
	case ModeEndless:
		g.diff = g.cfg.Endless.Params(g.elapsed)
		g.cameraX += g.diff.ScrollSpeed * scale
		g.field.GenerateAhead(g.playerX(), g.cameraX, g.diff)
		g.field.CleanupBehind(g.cameraX)
	case ModeStandard:
		g.cameraX += g.cfg.Standard.Speed * scale
		if g.flash > 0 {
			g.flash--
		}
		if g.track.FrameAt(g.elapsed).Drop {
			g.flash = flashTicks
		}
		if g.elapsed >= g.track.Duration {
			g.won = true
			g.gameOver = true
			return core.StepResult{State: g.State()}
		}
	}

	g.stepPhysics(in, scale)

	if g.collides() {
		g.gameOver = true
	}

	return core.StepResult{State: g.State()}
}

// playerX returns the world x of the player's left edge. The player
// leads the camera by a fixed distance; only the world scrolls.
func (g *Game) playerX() float64 {
	return g.cameraX + g.cfg.Player.Lead
}

// levelSpikes returns whichever spike list the current mode runs over.
func (g *Game) levelSpikes() []endless.Spike {
	if g.mode == ModeEndless {
		return g.field.Spikes()
	}
	return g.spikes
}

// Progress returns the completion fraction for standard runs, 0 in
// endless mode.
func (g *Game) Progress() float64 {
	if g.mode != ModeStandard || g.track == nil {
		return 0
	}
	return g.track.Progress(g.elapsed)
}

// State returns the current run state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Seconds:  g.elapsed,
		Progress: g.Progress(),
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Register both modes with the registry.
func init() {
	registry.Register(string(ModeStandard), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeEndless), func() registry.Game {
		return NewEndless()
	})
}
