package game

import (
	"github.com/spikedash/spikedash/internal/core"
	"github.com/spikedash/spikedash/internal/endless"
)

// stepPhysics advances the player's vertical motion by one tick.
// Holding jump keeps gravity reduced for up to MaxHoldTicks while the
// player still rises, which is what makes jump height variable; duck
// adds a fast-fall boost on the way down.
func (g *Game) stepPhysics(in core.InputFrame, scale float64) {
	ph := g.cfg.Physics

	if in.Has(core.ActionJump) && g.grounded {
		g.playerVel = ph.JumpImpulse
		g.grounded = false
		g.holdTicks = ph.MaxHoldTicks
	}
	if g.grounded {
		return
	}

	gravity := ph.Gravity
	if g.holdTicks > 0 && in.Has(core.ActionJump) && g.playerVel > 0 {
		gravity = ph.HoldGravity
		g.holdTicks--
	} else {
		g.holdTicks = 0
	}
	if in.Has(core.ActionDuck) {
		gravity += ph.FastFallBoost
	}

	g.playerVel -= gravity * scale
	if g.playerVel < -ph.MaxFallSpeed {
		g.playerVel = -ph.MaxFallSpeed
	}

	g.playerY += g.playerVel * scale
	if g.playerY <= 0 {
		g.playerY = 0
		g.playerVel = 0
		g.grounded = true
	}
}

// playerBox returns the player's collision rectangle in world space.
func (g *Game) playerBox() core.RectF {
	return core.RectF{
		X: g.playerX(),
		Y: g.playerY,
		W: g.cfg.Player.Width,
		H: g.cfg.Player.Height,
	}
}

// spikeBox returns the collision rectangle for a spike. The triangle's
// outline is forgiving: the box is inset at the sides and shortened at
// the tip so grazing the edges does not kill the run.
func spikeBox(s endless.Spike) core.RectF {
	inset := s.Width * 0.2
	return core.RectF{
		X: s.X + inset,
		Y: 0,
		W: s.Width - 2*inset,
		H: s.Height * 0.85,
	}
}

// collides reports whether the player overlaps any spike this tick.
func (g *Game) collides() bool {
	pb := g.playerBox()
	for _, s := range g.levelSpikes() {
		if s.X > pb.X+pb.W {
			break // spikes are sorted by x
		}
		if pb.Intersects(spikeBox(s)) {
			return true
		}
	}
	return false
}
