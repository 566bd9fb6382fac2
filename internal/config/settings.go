package config

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/spikedash/spikedash/internal/storage"
)

// settingsKey is where the settings blob lives in the KV store.
const settingsKey = "settings"

// appName names the per-user data directory settings live in.
const appName = "spikedash"

var (
	appKVOnce sync.Once
	appKV     storage.KV
)

// SettingsKV returns the store settings persist through: the per-user
// app data directory when it can be opened, else fallback (usually the
// runs database, possibly nil). The app data handle is opened once and
// shared.
func SettingsKV(fallback storage.KV) storage.KV {
	appKVOnce.Do(func() {
		if g, err := storage.OpenGData(appName); err == nil {
			appKV = g
		}
	})
	if appKV != nil {
		return appKV
	}
	return fallback
}

// Settings is the small cross-run player state. It persists as YAML
// through any storage.KV; in play it is bound to the per-user app data
// store so it survives independently of the scores database.
type Settings struct {
	ActiveCodes []string `yaml:"active_codes"` // active cheat codes, normalized
	LastTrack   string   `yaml:"last_track"`   // last timeline file played in standard mode
}

// LoadSettings reads settings from kv. A nil store, a missing key or an
// unreadable blob all degrade to zero settings so the game stays
// playable without persistence.
func LoadSettings(kv storage.KV) Settings {
	var s Settings
	if kv == nil {
		return s
	}
	raw, err := kv.Get(settingsKey)
	if err != nil {
		return s
	}
	if err := yaml.Unmarshal([]byte(raw), &s); err != nil {
		return Settings{}
	}
	return s
}

// SaveSettings writes settings to kv as YAML. Saving to a nil store is
// a no-op, matching the degraded mode of LoadSettings.
func SaveSettings(kv storage.KV, s Settings) error {
	if kv == nil {
		return nil
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: cannot encode settings: %w", err)
	}
	if err := kv.Set(settingsKey, string(data)); err != nil {
		return fmt.Errorf("config: cannot save settings: %w", err)
	}
	return nil
}
