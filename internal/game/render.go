package game

import (
	"fmt"
	"math"

	"github.com/spikedash/spikedash/internal/core"
	"github.com/spikedash/spikedash/internal/endless"
	"github.com/spikedash/spikedash/internal/score"
)

// Visual characters for the game
const (
	GroundChar = '═'
	SpikeTip   = '▲'
	SpikeBody  = '█'
)

// The simulation runs in world pixels; the screen shows cells. One cell
// covers more horizontal than vertical distance because terminal glyphs
// are tall, so the two scales differ.
const (
	cellPxX = 10.0
	cellPxY = 20.0
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	groundRow := dst.Height() - 2

	// Draw ground, flashing briefly when a drop hits
	groundColor := core.ColorDefault
	if g.flash > 0 {
		groundColor = core.ColorBrightYellow
	}
	for x := 0; x < dst.Width(); x++ {
		dst.SetCell(x, groundRow, GroundChar, groundColor)
	}

	// Draw spikes
	for _, s := range g.levelSpikes() {
		g.drawSpike(dst, s, groundRow)
	}

	// Draw player
	g.drawPlayer(dst, groundRow)

	// Draw HUD
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		switch {
		case g.won:
			g.drawCenteredMessage(dst, "TRACK CLEAR", "100%  |  Press R to replay")
		case g.mode == ModeStandard:
			sub := fmt.Sprintf("%.0f%%  |  Press R to restart", g.Progress()*100)
			g.drawCenteredMessage(dst, "GAME OVER", sub)
		default:
			sub := fmt.Sprintf("Survived %s  |  Press R to restart", score.FormatTime(g.elapsed))
			g.drawCenteredMessage(dst, "GAME OVER", sub)
		}
	}
}

// worldCol maps a world x coordinate to a screen column.
func (g *Game) worldCol(x float64) int {
	return int(math.Round((x - g.cameraX) / cellPxX))
}

// drawSpike renders one spike as a small pyramid sitting on the ground.
func (g *Game) drawSpike(dst *core.Screen, s endless.Spike, groundRow int) {
	col := g.worldCol(s.X)
	cols := int(math.Round(s.Width / cellPxX))
	if cols < 1 {
		cols = 1
	}
	if col+cols < 0 || col >= dst.Width() {
		return
	}
	rows := int(math.Ceil(s.Height / cellPxY))
	if rows < 1 {
		rows = 1
	}

	mid := cols / 2
	for i := 0; i < cols; i++ {
		h := rows
		if i != mid {
			h = 1
		}
		color := g.skin.Spike
		if g.skin.Rainbow {
			color = core.RainbowAt(g.tick/3 + col + i)
		}
		for dy := 0; dy < h; dy++ {
			r := SpikeBody
			if dy == h-1 {
				r = SpikeTip
			}
			dst.SetCell(col+i, groundRow-1-dy, r, color)
		}
	}
}

// drawPlayer renders the player block at its current height.
func (g *Game) drawPlayer(dst *core.Screen, groundRow int) {
	col := g.worldCol(g.playerX())
	cols := int(math.Round(g.cfg.Player.Width / cellPxX))
	if cols < 1 {
		cols = 1
	}
	rows := int(math.Round(g.cfg.Player.Height / cellPxY))
	if rows < 1 {
		rows = 1
	}
	elev := int(math.Round(g.playerY / cellPxY))
	baseRow := groundRow - 1 - elev

	for dy := 0; dy < rows; dy++ {
		for dx := 0; dx < cols; dx++ {
			color := g.skin.Player
			if g.skin.Rainbow {
				color = core.RainbowAt(g.tick/3 + dy + dx)
			}
			dst.SetCell(col+dx, baseRow-dy, g.skin.Body, color)
		}
	}
	// An eye so the block reads as a creature facing right
	if !g.skin.Translucent && rows > 1 && cols > 1 {
		dst.SetCell(col+cols-1, baseRow-rows+1, '▪', core.ColorWhite)
	}
}

// drawHUD renders the status line.
func (g *Game) drawHUD(dst *core.Screen) {
	timeText := fmt.Sprintf(" %s ", score.FormatTime(g.elapsed))
	dst.DrawTextColor(2, 0, timeText, core.ColorBrightWhite)

	switch g.mode {
	case ModeEndless:
		right := fmt.Sprintf(" Lv %d  Spd %.1f ", g.diff.Level, g.diff.ScrollSpeed)
		dst.DrawText(dst.Width()-len(right)-2, 0, right)
	case ModeStandard:
		right := fmt.Sprintf(" %3.0f%% ", g.Progress()*100)
		dst.DrawText(dst.Width()-len(right)-2, 0, right)
		if bd, ok := g.track.NextBigDrop(g.elapsed); ok && bd.Time-g.elapsed < 5 {
			if (g.tick/6)%2 == 0 {
				dst.DrawTextColor(2+len(timeText), 0, " DROP INCOMING ", core.ColorBrightRed)
			}
		}
	}

	if g.skin.Name != "Classic" {
		dst.DrawTextColor(2, 1, fmt.Sprintf(" %s ", g.skin.Name), g.skin.Player)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
