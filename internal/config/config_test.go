package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spikedash/spikedash/internal/storage"
)

func TestLoadCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "custom.yaml")
	data := "endless:\n  max_scroll_speed: 9\nplayer:\n  lead: 90\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("cannot write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Endless.MaxScrollSpeed != 9 {
		t.Errorf("MaxScrollSpeed = %v, expected 9 from the file", cfg.Endless.MaxScrollSpeed)
	}
	if cfg.Player.Lead != 90 {
		t.Errorf("Player.Lead = %v, expected 90 from the file", cfg.Player.Lead)
	}

	// Fields the file does not name keep their defaults.
	def := DefaultGameConfig()
	if cfg.Endless.BaseMinGap != def.Endless.BaseMinGap {
		t.Errorf("BaseMinGap = %v, expected default %v", cfg.Endless.BaseMinGap, def.Endless.BaseMinGap)
	}
	if cfg.Physics.Gravity != def.Physics.Gravity {
		t.Errorf("Gravity = %v, expected default %v", cfg.Physics.Gravity, def.Physics.Gravity)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load("/nonexistent/nope.yaml"); err == nil {
		t.Fatal("Load() with a missing explicit path should fail")
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	// Point home at an empty dir so no user config interferes.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded default diverges from DefaultGameConfig():\n%+v\nvs\n%+v", cfg, DefaultGameConfig())
	}
}

func TestApplyPreset(t *testing.T) {
	normal := DefaultGameConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultGameConfig() {
		t.Error("normal preset should leave the stock tuning untouched")
	}

	fixed := DefaultGameConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	p := fixed.Endless.Params(600)
	if p.Level != 1 {
		t.Errorf("fixed preset Level at t=600 is %d, expected 1", p.Level)
	}
	if p.ScrollSpeed != fixed.Endless.BaseScrollSpeed {
		t.Errorf("fixed preset ScrollSpeed = %v, expected base %v", p.ScrollSpeed, fixed.Endless.BaseScrollSpeed)
	}
	if p.MaxClusterSize != fixed.Endless.BaseClusterSize {
		t.Errorf("fixed preset MaxClusterSize = %d, expected base %d", p.MaxClusterSize, fixed.Endless.BaseClusterSize)
	}

	easy := DefaultGameConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if got := easy.Endless.Params(3600).ScrollSpeed; got != 6.5 {
		t.Errorf("easy preset capped speed = %v, expected 6.5", got)
	}

	hard := DefaultGameConfig()
	ApplyPreset(&hard, DifficultyHard)
	if got := hard.Endless.Params(0).ScrollSpeed; got != 5 {
		t.Errorf("hard preset starting speed = %v, expected 5", got)
	}
}

func TestValidPreset(t *testing.T) {
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed} {
		if !ValidPreset(p) {
			t.Errorf("ValidPreset(%q) = false, expected true", p)
		}
	}
	if ValidPreset("nightmare") {
		t.Error(`ValidPreset("nightmare") = true, expected false`)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	in := Settings{
		ActiveCodes: []string{"disco"},
		LastTrack:   "tracks/neon.json",
	}

	if err := SaveSettings(kv, in); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	out := LoadSettings(kv)
	if len(out.ActiveCodes) != 1 || out.ActiveCodes[0] != "disco" {
		t.Errorf("ActiveCodes = %v, expected [disco]", out.ActiveCodes)
	}
	if out.LastTrack != in.LastTrack {
		t.Errorf("LastTrack = %q, expected %q", out.LastTrack, in.LastTrack)
	}
}

func TestSettingsDegradedMode(t *testing.T) {
	// Nil store: loads read zero settings, saves are no-ops.
	if got := LoadSettings(nil); len(got.ActiveCodes) != 0 || got.LastTrack != "" {
		t.Errorf("LoadSettings(nil) = %+v, expected zero settings", got)
	}
	if err := SaveSettings(nil, Settings{LastTrack: "x"}); err != nil {
		t.Errorf("SaveSettings(nil) = %v, expected nil", err)
	}

	// A corrupt blob reads as zero settings.
	kv := storage.NewMemory()
	kv.Set("settings", "active_codes: [")
	if got := LoadSettings(kv); len(got.ActiveCodes) != 0 {
		t.Errorf("LoadSettings() on corrupt blob = %+v, expected zero settings", got)
	}
}
