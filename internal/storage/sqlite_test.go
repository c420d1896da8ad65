package storage

import (
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun() Run {
	return Run{
		Seed:       42,
		TickRate:   60,
		Ticks:      300,
		Episodes:   2,
		ConfigYAML: []byte("playfield:\n  width: 800\n"),
		Events: []Event{
			{Tick: 0, Action: "jump"},
			{Tick: 17, Action: "jump"},
			{Tick: 120, Action: "restart"},
		},
	}
}

func TestStoreOpen(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if store.db == nil {
		t.Error("Store.db should not be nil")
	}
}

func TestStoreSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)

	want := sampleRun()
	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for saved run")
	}

	if got.ID != id || got.Seed != want.Seed || got.TickRate != want.TickRate ||
		got.Ticks != want.Ticks || got.Episodes != want.Episodes {
		t.Errorf("run header mismatch: got %+v", got)
	}
	if string(got.ConfigYAML) != string(want.ConfigYAML) {
		t.Errorf("ConfigYAML = %q, want %q", got.ConfigYAML, want.ConfigYAML)
	}
	if !reflect.DeepEqual(got.Events, want.Events) {
		t.Errorf("Events = %v, want %v", got.Events, want.Events)
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	run, err := store.RunByID(999)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run != nil {
		t.Errorf("Expected nil for missing run, got %+v", run)
	}
}

func TestStoreRunWithoutEvents(t *testing.T) {
	store := openTestStore(t)

	run := sampleRun()
	run.Events = nil
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if len(got.Events) != 0 {
		t.Errorf("Expected no events, got %d", len(got.Events))
	}
}

func TestStoreRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		run := sampleRun()
		run.Seed = int64(i + 1)
		if _, err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.Runs(3)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Newest first
	if runs[0].Seed != 5 || runs[1].Seed != 4 || runs[2].Seed != 3 {
		t.Errorf("Runs not in expected order: %v, %v, %v", runs[0].Seed, runs[1].Seed, runs[2].Seed)
	}
	if runs[0].Events != nil {
		t.Error("Runs() should not load events")
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(sampleRun())
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run != nil {
		t.Error("Run should be gone after delete")
	}

	var events int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM run_events WHERE run_id = ?", id).Scan(&events); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if events != 0 {
		t.Errorf("Expected events to be deleted, %d remain", events)
	}

	// Deleting again is fine
	if err := store.DeleteRun(id); err != nil {
		t.Errorf("DeleteRun() of missing run failed: %v", err)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.Ticks != 0 || stats.Episodes != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
	if !stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be zero with no runs")
	}

	store.SaveRun(sampleRun())
	store.SaveRun(sampleRun())

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, want 2", stats.Runs)
	}
	if stats.Ticks != 600 {
		t.Errorf("Ticks = %d, want 600", stats.Ticks)
	}
	if stats.Episodes != 4 {
		t.Errorf("Episodes = %d, want 4", stats.Episodes)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}
