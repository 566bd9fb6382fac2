// Package timeline loads the pre-computed music analysis that drives
// standard-mode levels. The JSON is produced by an external analyzer;
// this package only parses and queries it, no audio processing happens
// in the game.
package timeline

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// Frame is one 50ms sample of the track's energy bands.
type Frame struct {
	T     float64 `json:"t"`
	Bass  float64 `json:"bass"`
	Mid   float64 `json:"mid"`
	High  float64 `json:"high"`
	Onset float64 `json:"onset"`
	Beat  bool    `json:"beat"`
	Drop  bool    `json:"drop"`
}

// BigDrop marks a sustained bass-line start, the track's set-piece moments.
type BigDrop struct {
	Time      float64 `json:"time"`
	Percent   float64 `json:"percent"` // position in the track, 0-100
	Intensity float64 `json:"intensity"`
}

// Track is the full analysis of one song.
type Track struct {
	Duration  float64   `json:"duration"` // seconds
	Tempo     float64   `json:"tempo"`    // BPM
	BeatCount int       `json:"beatCount"`
	Beats     []float64 `json:"beats"` // beat onsets in seconds, ascending
	Drops     []float64 `json:"drops"` // momentary bass hits in seconds, ascending
	BigDrops  []BigDrop `json:"bigDrops"`
	Frames    []Frame   `json:"timeline"`
}

// Load reads and parses a track analysis file.
func Load(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("timeline: cannot read %s: %w", path, err)
	}
	track, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("timeline: %s: %w", path, err)
	}
	return track, nil
}

// Parse decodes and validates a track analysis.
func Parse(data []byte) (*Track, error) {
	var tr Track
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("timeline: invalid JSON: %w", err)
	}
	if err := tr.validate(); err != nil {
		return nil, err
	}
	return &tr, nil
}

func (tr *Track) validate() error {
	if tr.Duration <= 0 {
		return fmt.Errorf("timeline: duration %v, must be positive", tr.Duration)
	}
	for i := 1; i < len(tr.Frames); i++ {
		if tr.Frames[i].T < tr.Frames[i-1].T {
			return fmt.Errorf("timeline: frames out of order at index %d", i)
		}
	}
	// The binary searches below rely on sorted event lists. The analyzer
	// emits them sorted; a beat slightly past the rounded duration is fine.
	for i, b := range tr.Beats {
		if b < 0 || b > tr.Duration+1 {
			return fmt.Errorf("timeline: beat %d at %vs outside the track", i, b)
		}
		if i > 0 && b < tr.Beats[i-1] {
			return fmt.Errorf("timeline: beats out of order at index %d", i)
		}
	}
	for i, d := range tr.Drops {
		if i > 0 && d < tr.Drops[i-1] {
			return fmt.Errorf("timeline: drops out of order at index %d", i)
		}
	}
	return nil
}

// FrameAt returns the sample covering time t, clamping to the first and
// last frames outside the analyzed range.
func (tr *Track) FrameAt(t float64) Frame {
	if len(tr.Frames) == 0 {
		return Frame{T: t}
	}
	idx := sort.Search(len(tr.Frames), func(i int) bool { return tr.Frames[i].T > t })
	if idx == 0 {
		return tr.Frames[0]
	}
	return tr.Frames[idx-1]
}

// BeatNear reports whether a beat lands within window seconds of t.
func (tr *Track) BeatNear(t, window float64) bool {
	idx := sort.SearchFloat64s(tr.Beats, t)
	for _, j := range []int{idx - 1, idx} {
		if j >= 0 && j < len(tr.Beats) && math.Abs(tr.Beats[j]-t) <= window {
			return true
		}
	}
	return false
}

// DropsIn returns the momentary drops inside [t0, t1).
func (tr *Track) DropsIn(t0, t1 float64) []float64 {
	lo := sort.SearchFloat64s(tr.Drops, t0)
	hi := sort.SearchFloat64s(tr.Drops, t1)
	return tr.Drops[lo:hi]
}

// NextBigDrop returns the first big drop at or after t.
func (tr *Track) NextBigDrop(t float64) (BigDrop, bool) {
	for _, d := range tr.BigDrops {
		if d.Time >= t {
			return d, true
		}
	}
	return BigDrop{}, false
}

// Progress maps a track position to a completion fraction in [0,1].
func (tr *Track) Progress(t float64) float64 {
	if tr.Duration <= 0 {
		return 0
	}
	p := t / tr.Duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
