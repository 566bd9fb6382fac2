// Package config provides YAML-based gameplay configuration and the
// persisted player settings (active cheat codes, last played track).
package config

import (
	"github.com/spikedash/spikedash/internal/endless"
)

// GameConfig contains all gameplay tuning. World units are pixels with
// y growing upward from the ground line; speeds are pixels per tick at
// the 60fps reference rate.
type GameConfig struct {
	Physics  Physics        `yaml:"physics"`
	Player   Player         `yaml:"player"`
	Endless  endless.Tuning `yaml:"endless"`
	Standard Standard       `yaml:"standard"`
}

// Physics defines the jump arc. Holding jump keeps gravity reduced for
// a bounded number of ticks, which is what makes jump height variable.
type Physics struct {
	Gravity       float64 `yaml:"gravity"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	HoldGravity   float64 `yaml:"hold_gravity"`
	MaxHoldTicks  int     `yaml:"max_hold_ticks"`
	MaxFallSpeed  float64 `yaml:"max_fall_speed"`
	FastFallBoost float64 `yaml:"fast_fall_boost"` // extra gravity while ducking in the air
}

// Player defines the runner's hitbox and how far it leads the camera.
type Player struct {
	Lead   float64 `yaml:"lead"` // distance ahead of the camera's left edge
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Standard defines how a music timeline becomes a level.
type Standard struct {
	Speed          float64 `yaml:"speed"`            // scroll speed, constant for the whole track
	MinOnset       float64 `yaml:"min_onset"`        // onset strength a beat needs to earn a spike
	DropCluster    int     `yaml:"drop_cluster"`     // spikes placed on a momentary drop
	BigDropCluster int     `yaml:"big_drop_cluster"` // spikes placed on a big drop
	MinSpacing     float64 `yaml:"min_spacing"`      // placed spikes never sit closer than this
	LeadIn         float64 `yaml:"lead_in"`          // obstacle-free seconds at the track start
}

// DifficultyPreset represents a named difficulty level for endless mode.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ValidPreset reports whether the string names a known preset.
func ValidPreset(p DifficultyPreset) bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// ApplyPreset adjusts the endless tuning for a preset. Normal leaves
// the stock progression untouched; fixed pins the whole run at the
// starting difficulty by disabling the level clocks.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Endless.MaxScrollSpeed = 6.5
		cfg.Endless.MinGapFloor = 100
		cfg.Endless.MaxClusterCap = 4
	case DifficultyHard:
		cfg.Endless.BaseScrollSpeed = 5
		cfg.Endless.BaseMinGap = 130
		cfg.Endless.LevelInterval = 20
	case DifficultyFixed:
		cfg.Endless.LevelInterval = 0
		cfg.Endless.ClusterInterval = 0
	}
}
