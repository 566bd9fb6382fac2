package game

import "github.com/spikedash/spikedash/internal/core"

// Skin controls how the player and spikes are drawn. Skins are pure
// cosmetics unlocked by cheat codes; they never change the simulation.
type Skin struct {
	Name        string
	Body        rune
	Player      core.Color
	Spike       core.Color
	Rainbow     bool // cycle the palette every few ticks
	Translucent bool
}

// skinFor maps a cheat effect to its skin. The empty effect is the
// default look.
func skinFor(effect string) Skin {
	switch effect {
	case "rainbow":
		return Skin{Name: "Disco", Body: '█', Player: core.ColorBrightMagenta, Spike: core.ColorBrightCyan, Rainbow: true}
	case "frog":
		return Skin{Name: "Froggy", Body: '█', Player: core.ColorBrightGreen, Spike: core.ColorGreen}
	case "vapor":
		return Skin{Name: "Vapor", Body: '▓', Player: core.ColorBrightMagenta, Spike: core.ColorBrightCyan}
	case "gold":
		return Skin{Name: "Midas", Body: '█', Player: core.ColorBrightYellow, Spike: core.ColorYellow}
	case "ghost":
		return Skin{Name: "Wraith", Body: '▒', Player: core.ColorGray, Spike: core.ColorGray, Translucent: true}
	default:
		return Skin{Name: "Classic", Body: '█', Player: core.ColorBrightCyan, Spike: core.ColorBrightRed}
	}
}

// SkinName returns the display name of the current skin.
func (g *Game) SkinName() string {
	return g.skin.Name
}
