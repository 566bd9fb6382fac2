package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// gdataObject is the single object all keys live under in the data dir.
const gdataObject = "spikedash"

// GData is a KV over the per-user application data directory. It backs
// settings that should survive independently of the scores database
// (active cheat codes, last played track).
type GData struct {
	m *gdata.Manager
}

// OpenGData opens the per-user data directory for the given app name.
func OpenGData(appName string) (*GData, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open app data: %w", err)
	}
	return &GData{m: m}, nil
}

// Get returns the value stored under key, or ErrNotFound.
func (g *GData) Get(key string) (string, error) {
	if !g.m.ObjectPropExists(gdataObject, key) {
		return "", ErrNotFound
	}
	data, err := g.m.LoadObjectProp(gdataObject, key)
	if err != nil {
		return "", fmt.Errorf("storage: cannot load %q: %w", key, err)
	}
	return string(data), nil
}

// Set stores value under key.
func (g *GData) Set(key, value string) error {
	if err := g.m.SaveObjectProp(gdataObject, key, []byte(value)); err != nil {
		return fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	return nil
}

var _ KV = (*GData)(nil)
