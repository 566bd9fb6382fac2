package game

// Snapshot captures the observable run state in one comparable value.
// Tests compare snapshots to check determinism.
type Snapshot struct {
	Mode     Mode
	Tick     int
	Seconds  float64
	CameraX  float64
	PlayerY  float64
	Grounded bool
	Spikes   int
	Level    int
	GameOver bool
	Won      bool
}

// Snapshot returns the current run state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Mode:     g.mode,
		Tick:     g.tick,
		Seconds:  g.elapsed,
		CameraX:  g.cameraX,
		PlayerY:  g.playerY,
		Grounded: g.grounded,
		Spikes:   len(g.levelSpikes()),
		Level:    g.diff.Level,
		GameOver: g.gameOver,
		Won:      g.won,
	}
}
