package config

import (
	_ "embed"

	"github.com/spikedash/spikedash/internal/endless"
)

//go:embed defaults/spikedash.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the stock gameplay tuning. The endless
// section matches endless.DefaultTuning, so the progression curves are
// identical whether or not a config file is present.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Physics: Physics{
			Gravity:       0.8,
			JumpImpulse:   10,
			HoldGravity:   0.35,
			MaxHoldTicks:  16,
			MaxFallSpeed:  12,
			FastFallBoost: 1.6,
		},
		Player: Player{
			Lead:   120,
			Width:  24,
			Height: 36,
		},
		Endless: endless.DefaultTuning(),
		Standard: Standard{
			Speed:          4,
			MinOnset:       1.2,
			DropCluster:    2,
			BigDropCluster: 4,
			MinSpacing:     120,
			LeadIn:         2,
		},
	}
}
