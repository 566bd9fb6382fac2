package game

import (
	"sort"

	"github.com/spikedash/spikedash/internal/config"
	"github.com/spikedash/spikedash/internal/endless"
	"github.com/spikedash/spikedash/internal/timeline"
)

// levelEvent is a candidate spike placement derived from the track.
type levelEvent struct {
	x       float64
	cluster int
}

// BuildLevel compiles a track analysis into the spike layout for a
// standard run. Each beat whose onset strength clears MinOnset earns a
// single spike, momentary drops earn a small cluster and big drops the
// largest one. A thinning pass then enforces MinSpacing between
// clusters so dense passages stay jumpable, and nothing is placed
// before LeadIn so the run opens on empty ground.
//
// Placement is deterministic: the same track and config always produce
// the same layout. startX anchors time zero at the player's starting
// position so on-beat events arrive exactly when the player does.
func BuildLevel(track *timeline.Track, cfg config.Standard, startX float64) []endless.Spike {
	pxPerSec := cfg.Speed * 60

	var events []levelEvent
	for _, bt := range track.Beats {
		if bt < cfg.LeadIn {
			continue
		}
		if track.FrameAt(bt).Onset < cfg.MinOnset {
			continue
		}
		events = append(events, levelEvent{x: startX + bt*pxPerSec, cluster: 1})
	}
	for _, dt := range track.Drops {
		if dt < cfg.LeadIn {
			continue
		}
		events = append(events, levelEvent{x: startX + dt*pxPerSec, cluster: cfg.DropCluster})
	}
	for _, bd := range track.BigDrops {
		if bd.Time < cfg.LeadIn {
			continue
		}
		events = append(events, levelEvent{x: startX + bd.Time*pxPerSec, cluster: cfg.BigDropCluster})
	}

	// Bigger clusters win ties so a drop is not shadowed by its own beat.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].x != events[j].x {
			return events[i].x < events[j].x
		}
		return events[i].cluster > events[j].cluster
	})

	var spikes []endless.Spike
	lastEnd := -cfg.MinSpacing
	for _, ev := range events {
		if ev.cluster < 1 {
			ev.cluster = 1
		}
		if ev.x-lastEnd < cfg.MinSpacing {
			continue
		}
		for i := 0; i < ev.cluster; i++ {
			spikes = append(spikes, endless.Spike{
				X:      ev.x + float64(i)*endless.SpikeSpacing,
				Width:  endless.SpikeWidth,
				Height: endless.SpikeHeight,
			})
		}
		lastEnd = ev.x + float64(ev.cluster)*endless.SpikeSpacing
	}
	return spikes
}

// DemoTrack returns the built-in rhythm played when no timeline file is
// loaded: 45 seconds of steady beats with a drop section in the middle
// and a big drop near the end.
func DemoTrack() *timeline.Track {
	tr := &timeline.Track{
		Duration:  45,
		Tempo:     120,
		BeatCount: 90,
	}
	for i := 0; i < 90; i++ {
		tr.Beats = append(tr.Beats, float64(i)*0.5)
	}
	tr.Drops = []float64{20, 22, 24}
	tr.BigDrops = []timeline.BigDrop{{Time: 38, Percent: 84, Intensity: 2.4}}

	// Alternate onset strength so only every other beat places a spike.
	for i := 0; i <= 900; i++ {
		f := timeline.Frame{T: float64(i) * 0.05, Onset: 0.6}
		if (i/10)%2 == 0 {
			f.Onset = 2.0
		}
		if i%10 == 0 {
			f.Beat = true
		}
		tr.Frames = append(tr.Frames, f)
	}
	return tr
}
