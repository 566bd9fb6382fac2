package timeline

import (
	"strings"
	"testing"
)

// analyzerJSON mirrors the analyzer's real output shape.
const analyzerJSON = `{
	"duration": 12.5,
	"tempo": 128.0,
	"beatCount": 4,
	"beats": [0.5, 1.0, 1.5, 2.0],
	"drops": [3.2, 7.8, 11.0],
	"bigDrops": [
		{"time": 4.0, "percent": 32.0, "intensity": 5.4},
		{"time": 9.5, "percent": 76.0, "intensity": 10.0}
	],
	"timeline": [
		{"t": 0.0, "bass": 0.1, "mid": 0.2, "high": 0.3, "onset": 0.0, "beat": false, "drop": false},
		{"t": 0.05, "bass": 0.15, "mid": 0.2, "high": 0.3, "onset": 0.1, "beat": false, "drop": false},
		{"t": 0.5, "bass": 0.8, "mid": 0.5, "high": 0.4, "onset": 2.1, "beat": true, "drop": false},
		{"t": 3.2, "bass": 0.95, "mid": 0.6, "high": 0.5, "onset": 3.0, "beat": true, "drop": true}
	]
}`

func TestParse(t *testing.T) {
	tr, err := Parse([]byte(analyzerJSON))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if tr.Duration != 12.5 {
		t.Errorf("Duration = %v, expected 12.5", tr.Duration)
	}
	if tr.Tempo != 128.0 {
		t.Errorf("Tempo = %v, expected 128.0", tr.Tempo)
	}
	if tr.BeatCount != 4 || len(tr.Beats) != 4 {
		t.Errorf("BeatCount = %d with %d beats, expected 4 and 4", tr.BeatCount, len(tr.Beats))
	}
	if len(tr.Drops) != 3 {
		t.Errorf("len(Drops) = %d, expected 3", len(tr.Drops))
	}
	if len(tr.BigDrops) != 2 || tr.BigDrops[0].Intensity != 5.4 {
		t.Errorf("BigDrops parsed wrong: %+v", tr.BigDrops)
	}
	if len(tr.Frames) != 4 {
		t.Fatalf("len(Frames) = %d, expected 4", len(tr.Frames))
	}
	if !tr.Frames[2].Beat || tr.Frames[2].Onset != 2.1 {
		t.Errorf("frame 2 parsed wrong: %+v", tr.Frames[2])
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not JSON", "{beats: oops", "invalid JSON"},
		{"zero duration", `{"duration": 0}`, "duration"},
		{"negative duration", `{"duration": -3}`, "duration"},
		{
			"frames out of order",
			`{"duration": 10, "timeline": [{"t": 1.0}, {"t": 0.5}]}`,
			"frames out of order",
		},
		{
			"beat outside track",
			`{"duration": 10, "beats": [25.0]}`,
			"outside the track",
		},
		{
			"beats out of order",
			`{"duration": 10, "beats": [2.0, 1.0]}`,
			"beats out of order",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if err == nil {
				t.Fatal("Parse() should have failed")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestFrameAt(t *testing.T) {
	tr, err := Parse([]byte(analyzerJSON))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	tests := []struct {
		name  string
		t     float64
		wantT float64
	}{
		{"before first frame", -1.0, 0.0},
		{"exact frame time", 0.05, 0.05},
		{"between frames", 0.3, 0.05},
		{"on a beat frame", 0.5, 0.5},
		{"after last frame", 100.0, 3.2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tr.FrameAt(tc.t); got.T != tc.wantT {
				t.Errorf("FrameAt(%v).T = %v, expected %v", tc.t, got.T, tc.wantT)
			}
		})
	}
}

func TestBeatNear(t *testing.T) {
	tr, err := Parse([]byte(analyzerJSON))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if !tr.BeatNear(1.0, 0.01) {
		t.Error("BeatNear(1.0) should find the beat at exactly 1.0")
	}
	if !tr.BeatNear(1.04, 0.05) {
		t.Error("BeatNear(1.04, 0.05) should find the beat at 1.0")
	}
	if tr.BeatNear(1.2, 0.05) {
		t.Error("BeatNear(1.2, 0.05) should find nothing")
	}
	if tr.BeatNear(50, 0.5) {
		t.Error("BeatNear far past the last beat should find nothing")
	}
}

func TestDropsIn(t *testing.T) {
	tr, err := Parse([]byte(analyzerJSON))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	got := tr.DropsIn(3.0, 8.0)
	if len(got) != 2 || got[0] != 3.2 || got[1] != 7.8 {
		t.Errorf("DropsIn(3, 8) = %v, expected [3.2 7.8]", got)
	}

	if got := tr.DropsIn(0, 1); len(got) != 0 {
		t.Errorf("DropsIn(0, 1) = %v, expected none", got)
	}

	// Half-open interval: a drop exactly at t1 is excluded.
	if got := tr.DropsIn(3.2, 7.8); len(got) != 1 || got[0] != 3.2 {
		t.Errorf("DropsIn(3.2, 7.8) = %v, expected [3.2]", got)
	}
}

func TestNextBigDrop(t *testing.T) {
	tr, err := Parse([]byte(analyzerJSON))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	d, ok := tr.NextBigDrop(0)
	if !ok || d.Time != 4.0 {
		t.Errorf("NextBigDrop(0) = (%+v, %v), expected the drop at 4.0", d, ok)
	}

	d, ok = tr.NextBigDrop(4.0)
	if !ok || d.Time != 4.0 {
		t.Errorf("NextBigDrop(4.0) should include a drop exactly at t")
	}

	d, ok = tr.NextBigDrop(5.0)
	if !ok || d.Time != 9.5 {
		t.Errorf("NextBigDrop(5.0) = (%+v, %v), expected the drop at 9.5", d, ok)
	}

	if _, ok := tr.NextBigDrop(10.0); ok {
		t.Error("NextBigDrop past the last drop should report none")
	}
}

func TestProgress(t *testing.T) {
	tr, err := Parse([]byte(analyzerJSON))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	tests := []struct {
		t        float64
		expected float64
	}{
		{0, 0},
		{6.25, 0.5},
		{12.5, 1},
		{20, 1}, // clamped past the end
		{-3, 0}, // clamped before the start
	}
	for _, tc := range tests {
		if got := tr.Progress(tc.t); got != tc.expected {
			t.Errorf("Progress(%v) = %v, expected %v", tc.t, got, tc.expected)
		}
	}
}
