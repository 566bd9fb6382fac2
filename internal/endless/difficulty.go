// Package endless implements the procedural difficulty progression and
// obstacle field for endless mode. Everything here is pure simulation
// state: no rendering, no persistence, no globals. The game owns a Field
// per run and queries Tuning for the difficulty of the current moment.
package endless

import "math"

// Params is the difficulty snapshot for one moment of survival time.
// All distances are world pixels; speed is pixels per reference tick
// (the simulation normalizes to the configured tick rate).
type Params struct {
	Level          int     // 1-based difficulty level
	ScrollSpeed    float64 // camera advance per reference tick
	MinGap         float64 // minimum clear distance between clusters
	MaxClusterSize int     // upper bound on spikes per cluster
}

// Tuning holds the progression constants. Zero values are not meaningful;
// start from DefaultTuning and override via config.
type Tuning struct {
	BaseScrollSpeed float64 `yaml:"base_scroll_speed"`
	SpeedStep       float64 `yaml:"speed_step"`       // added per level past the first
	MaxScrollSpeed  float64 `yaml:"max_scroll_speed"` // speed cap
	BaseMinGap      float64 `yaml:"base_min_gap"`
	GapStep         float64 `yaml:"gap_step"`      // removed per level past the first
	MinGapFloor     float64 `yaml:"min_gap_floor"` // gap never shrinks below this
	BaseClusterSize int     `yaml:"base_cluster_size"`
	MaxClusterCap   int     `yaml:"max_cluster_cap"`
	LevelInterval   float64 `yaml:"level_interval"`   // seconds of survival per level
	ClusterInterval float64 `yaml:"cluster_interval"` // seconds per +1 max cluster size
}

// DefaultTuning returns the stock progression.
func DefaultTuning() Tuning {
	return Tuning{
		BaseScrollSpeed: 4,
		SpeedStep:       0.5,
		MaxScrollSpeed:  8,
		BaseMinGap:      150,
		GapStep:         10,
		MinGapFloor:     80,
		BaseClusterSize: 3,
		MaxClusterCap:   6,
		LevelInterval:   30,
		ClusterInterval: 60,
	}
}

// Params computes the difficulty after t seconds of survival.
// Negative or NaN input counts as zero; the function is total and
// never fails regardless of tuning values.
func (tn Tuning) Params(t float64) Params {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}

	level := 1
	if tn.LevelInterval > 0 {
		level = int(t/tn.LevelInterval) + 1
	}

	speed := tn.BaseScrollSpeed + float64(level-1)*tn.SpeedStep
	if speed > tn.MaxScrollSpeed {
		speed = tn.MaxScrollSpeed
	}

	gap := tn.BaseMinGap - float64(level-1)*tn.GapStep
	if gap < tn.MinGapFloor {
		gap = tn.MinGapFloor
	}

	cluster := tn.BaseClusterSize
	if tn.ClusterInterval > 0 {
		cluster += int(t / tn.ClusterInterval)
	}
	if cluster > tn.MaxClusterCap {
		cluster = tn.MaxClusterCap
	}

	return Params{
		Level:          level,
		ScrollSpeed:    speed,
		MinGap:         gap,
		MaxClusterSize: cluster,
	}
}
