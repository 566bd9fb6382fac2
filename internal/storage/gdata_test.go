package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// openTestGData opens a throwaway app-data store, skipping when the
// environment has no usable data directory.
func openTestGData(t *testing.T) *GData {
	t.Helper()
	appName := fmt.Sprintf("spikedash_test_%d", time.Now().UnixNano())
	g, err := OpenGData(appName)
	if err != nil {
		t.Skipf("cannot open app data store: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return g
}

func TestGDataRoundTrip(t *testing.T) {
	g := openTestGData(t)

	if _, err := g.Get("settings"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on fresh store = %v, expected ErrNotFound", err)
	}

	if err := g.Set("settings", "active_codes:\n  - disco\n"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	got, err := g.Get("settings")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "active_codes:\n  - disco\n" {
		t.Errorf("Get() returned %q", got)
	}

	// Overwrites replace the previous value
	if err := g.Set("settings", "active_codes: []\n"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	got, _ = g.Get("settings")
	if got != "active_codes: []\n" {
		t.Errorf("Get() after overwrite returned %q", got)
	}
}
