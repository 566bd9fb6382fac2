package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreKV(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Missing key
	if _, err := store.Get("endless_high_score"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on missing key = %v, expected ErrNotFound", err)
	}

	// Round-trip
	if err := store.Set("endless_high_score", "42.5"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	got, err := store.Get("endless_high_score")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "42.5" {
		t.Errorf("Get() = %q, expected %q", got, "42.5")
	}

	// Overwrite
	if err := store.Set("endless_high_score", "97"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	got, _ = store.Get("endless_high_score")
	if got != "97" {
		t.Errorf("Get() after overwrite = %q, expected %q", got, "97")
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save several endless runs
	for _, secs := range []float64{100.5, 50.25, 200} {
		id, err := store.SaveRun("endless", secs, 0)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if id == "" {
			t.Error("SaveRun() returned empty ID")
		}
	}

	// A standard run too
	if _, err := store.SaveRun("standard", 83, 0.61); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("endless", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 endless runs, got %d", len(runs))
	}

	// Should be sorted descending by survival time
	if runs[0].Seconds != 200 || runs[1].Seconds != 100.5 || runs[2].Seconds != 50.25 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	// IDs must be distinct
	if runs[0].ID == runs[1].ID || runs[1].ID == runs[2].ID {
		t.Error("Run IDs should be unique")
	}

	stdRuns, err := store.TopRuns("standard", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(stdRuns) != 1 {
		t.Fatalf("Expected 1 standard run, got %d", len(stdRuns))
	}
	if stdRuns[0].Progress != 0.61 {
		t.Errorf("Progress = %v, expected 0.61", stdRuns[0].Progress)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		store.SaveRun("endless", float64((i+1)*100), 0)
	}

	runs, err := store.TopRuns("endless", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Seconds != 500 || runs[1].Seconds != 400 || runs[2].Seconds != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreBestRun(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No runs yet
	best, err := store.BestRun("endless")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected nil best run for empty mode, got %+v", best)
	}

	store.SaveRun("endless", 100, 0)
	store.SaveRun("endless", 300, 0)
	store.SaveRun("endless", 200, 0)

	best, err = store.BestRun("endless")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil || best.Seconds != 300 {
		t.Errorf("Expected best run of 300s, got %+v", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun("endless", 100, 0)
	store.SaveRun("endless", 200, 0)
	store.SaveRun("standard", 60, 0.5)

	if err := store.ClearRuns("endless"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	endlessRuns, _ := store.TopRuns("endless", 10)
	if len(endlessRuns) != 0 {
		t.Errorf("Expected 0 endless runs after clear, got %d", len(endlessRuns))
	}

	stdRuns, _ := store.TopRuns("standard", 10)
	if len(stdRuns) != 1 {
		t.Errorf("Standard runs should not be affected by clearing endless")
	}
}

func TestStoreModeStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun("endless", 100, 0)
	store.SaveRun("endless", 200, 0)

	stats, err := store.GetModeStats("endless")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.RunCount != 2 {
		t.Errorf("RunCount = %d, expected 2", stats.RunCount)
	}
	if stats.BestSecs != 200 {
		t.Errorf("BestSecs = %v, expected 200", stats.BestSecs)
	}
	if stats.AvgSecs != 150 {
		t.Errorf("AvgSecs = %v, expected 150", stats.AvgSecs)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestMemoryKV(t *testing.T) {
	m := NewMemory()

	if _, err := m.Get("anything"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on empty store = %v, expected ErrNotFound", err)
	}

	if err := m.Set("standard_best_progress", "0.75"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	got, err := m.Get("standard_best_progress")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "0.75" {
		t.Errorf("Get() = %q, expected %q", got, "0.75")
	}
}
