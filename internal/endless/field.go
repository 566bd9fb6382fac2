package endless

import (
	"math"
	"math/rand"
)

// Spike is one ground-anchored triangular obstacle in world pixels.
// The vertical position is implicit: spikes sit on the ground line.
type Spike struct {
	X      float64 // left edge
	Width  float64
	Height float64
}

// RandSource yields uniform floats in [0,1). Injecting it keeps the
// generator deterministic under test and seedable in play.
type RandSource func() float64

// Spike geometry shared by both game modes.
const (
	SpikeWidth   = 30.0
	SpikeHeight  = 50.0
	SpikeSpacing = 40.0 // left edge to left edge inside a cluster
)

// Generation horizons relative to the camera.
const (
	GenerateHorizon = 1000.0 // keep content generated out to camera+GenerateHorizon
	CleanupMargin   = 500.0  // drop spikes more than this behind the camera
	GapJitter       = 50.0   // random extra gap after a cluster, [0,GapJitter)
)

// Field owns the endless-mode spike list and its generation frontier.
// All mutation happens on the game goroutine through GenerateAhead and
// CleanupBehind; Field does no locking.
type Field struct {
	spikes []Spike
	lastX  float64 // right edge of generated content; <=0 means fresh field
	rnd    RandSource
}

// NewField creates a field with a private generator seeded from seed.
func NewField(seed int64) *Field {
	rng := rand.New(rand.NewSource(seed))
	return NewFieldWithRand(rng.Float64)
}

// NewFieldWithRand creates a field drawing randomness from src.
func NewFieldWithRand(src RandSource) *Field {
	return &Field{
		spikes: make([]Spike, 0, 64),
		rnd:    src,
	}
}

// GenerateAhead extends the field so content exists out to
// cameraX+GenerateHorizon. It resumes from the frontier of the previous
// call, or one minimum gap ahead of the player on a fresh field, and
// appends clusters of 1..d.MaxClusterSize spikes separated by at least
// d.MinGap. Calling it while the frontier is already past the horizon
// changes nothing.
func (f *Field) GenerateAhead(playerX, cameraX float64, d Params) {
	target := cameraX + GenerateHorizon

	currentX := f.lastX
	if currentX <= 0 {
		currentX = playerX + d.MinGap
	}

	for currentX < target {
		clusterSize := int(f.rnd()*float64(d.MaxClusterSize)) + 1
		for i := 0; i < clusterSize; i++ {
			f.spikes = append(f.spikes, Spike{
				X:      currentX + float64(i)*SpikeSpacing,
				Width:  SpikeWidth,
				Height: SpikeHeight,
			})
		}
		currentX += float64(clusterSize)*SpikeSpacing + d.MinGap + math.Floor(f.rnd()*GapJitter)
	}

	f.lastX = currentX
}

// CleanupBehind removes spikes scrolled far off the left edge, keeping
// order and reusing the backing array.
func (f *Field) CleanupBehind(cameraX float64) {
	cutoff := cameraX - CleanupMargin
	valid := f.spikes[:0]
	for _, s := range f.spikes {
		if s.X >= cutoff {
			valid = append(valid, s)
		}
	}
	f.spikes = valid
}

// Spikes returns the live spike slice. The view stays valid until the
// next GenerateAhead or CleanupBehind call.
func (f *Field) Spikes() []Spike {
	return f.spikes
}

// Frontier returns the x coordinate generation has reached.
func (f *Field) Frontier() float64 {
	return f.lastX
}

// Reset empties the field and reseeds its generator for a new run.
func (f *Field) Reset(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	f.rnd = rng.Float64
	f.spikes = f.spikes[:0]
	f.lastX = 0
}
