package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amitgangrade/mandelbench/internal/bench"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveRun(t *testing.T, store *Store, session, strategy string, index int, elapsed time.Duration, checksum uint64) {
	t.Helper()
	_, err := store.SaveRun(RunRecord{
		SessionID: session,
		Strategy:  strategy,
		RunIndex:  index,
		Elapsed:   elapsed,
		Checksum:  checksum,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

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

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.mandelbench/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".mandelbench", "runs.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "s1", "serial", 1, 300*time.Millisecond, 42)
	saveRun(t, store, "s1", "serial", 2, 200*time.Millisecond, 42)
	saveRun(t, store, "s2", "rows", 1, 50*time.Millisecond, 42)

	runs, err := store.RecentRuns("serial", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 serial runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].RunIndex != 2 {
		t.Errorf("Expected newest run first, got run %d", runs[0].RunIndex)
	}
	if runs[0].Elapsed != 200*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 200ms", runs[0].Elapsed)
	}
	if runs[0].Checksum != 42 || runs[0].SessionID != "s1" {
		t.Errorf("unexpected record: %+v", runs[0])
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 runs across strategies, got %d", len(all))
	}
}

func TestStoreRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		saveRun(t, store, "s", "serial", i, time.Duration(i)*time.Millisecond, 1)
	}

	runs, err := store.RecentRuns("serial", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
}

func TestStoreFastestRuns(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "s", "serial", 1, 500*time.Millisecond, 1)
	saveRun(t, store, "s", "serial", 2, 100*time.Millisecond, 1)
	saveRun(t, store, "s", "serial", 3, 300*time.Millisecond, 1)
	saveRun(t, store, "p", "rows", 1, 10*time.Millisecond, 1)

	runs, err := store.FastestRuns("serial", 2)
	if err != nil {
		t.Fatalf("FastestRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Elapsed != 100*time.Millisecond || runs[1].Elapsed != 300*time.Millisecond {
		t.Errorf("Runs not in expected order: %v, %v", runs[0].Elapsed, runs[1].Elapsed)
	}
}

func TestStoreSessionRuns(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "abc", "serial", 2, time.Millisecond, 1)
	saveRun(t, store, "abc", "serial", 1, time.Millisecond, 1)
	saveRun(t, store, "other", "serial", 1, time.Millisecond, 1)

	runs, err := store.SessionRuns("abc")
	if err != nil {
		t.Fatalf("SessionRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].RunIndex != 1 || runs[1].RunIndex != 2 {
		t.Errorf("unexpected session runs: %+v", runs)
	}
}

func TestStoreDurationsAndStrategies(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "s", "shuffled", 1, 7*time.Millisecond, 1)
	saveRun(t, store, "s", "serial", 1, 3*time.Millisecond, 1)
	saveRun(t, store, "s", "serial", 2, 5*time.Millisecond, 1)

	ds, err := store.Durations("serial")
	if err != nil {
		t.Fatalf("Durations() failed: %v", err)
	}
	if len(ds) != 2 || ds[0] != 3*time.Millisecond || ds[1] != 5*time.Millisecond {
		t.Errorf("Durations() = %v", ds)
	}

	ids, err := store.Strategies()
	if err != nil {
		t.Fatalf("Strategies() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "serial" || ids[1] != "shuffled" {
		t.Errorf("Strategies() = %v, expected [serial shuffled]", ids)
	}
}

func TestStoreStrategyStats(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	stats, err := store.GetStrategyStats("serial")
	if err != nil {
		t.Fatalf("GetStrategyStats() failed: %v", err)
	}
	if stats.RunCount != 0 || stats.Best != 0 || !stats.LastRun.IsZero() {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	saveRun(t, store, "s", "serial", 1, 100*time.Millisecond, 9)
	saveRun(t, store, "s", "serial", 2, 300*time.Millisecond, 9)

	stats, err = store.GetStrategyStats("serial")
	if err != nil {
		t.Fatalf("GetStrategyStats() failed: %v", err)
	}
	if stats.RunCount != 2 {
		t.Errorf("RunCount = %d, expected 2", stats.RunCount)
	}
	if stats.Best != 100*time.Millisecond {
		t.Errorf("Best = %v, expected 100ms", stats.Best)
	}
	if stats.Average != 200*time.Millisecond {
		t.Errorf("Average = %v, expected 200ms", stats.Average)
	}
	if stats.Checksums != 1 {
		t.Errorf("Checksums = %d, expected 1", stats.Checksums)
	}
	if stats.LastRun.IsZero() {
		t.Error("LastRun should be set")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "s", "serial", 1, time.Millisecond, 1)
	saveRun(t, store, "s", "rows", 1, time.Millisecond, 1)
	saveRun(t, store, "s", "rows", 2, time.Millisecond, 1)

	n, err := store.ClearRuns("rows")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearRuns() deleted %d, expected 2", n)
	}

	runs, _ := store.RecentRuns("", 10)
	if len(runs) != 1 || runs[0].Strategy != "serial" {
		t.Errorf("unexpected remaining runs: %+v", runs)
	}

	if _, err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(\"\") failed: %v", err)
	}
	runs, _ = store.RecentRuns("", 10)
	if len(runs) != 0 {
		t.Errorf("expected no runs after clearing all, got %d", len(runs))
	}
}

func TestStoreSavesBenchSession(t *testing.T) {
	store := openTestStore(t)

	sess := bench.NewSession("serial", 4)
	for _, r := range []bench.RunResult{
		{Index: 1, Elapsed: 20 * time.Millisecond, Checksum: 77},
		{Index: 2, Elapsed: 10 * time.Millisecond, Checksum: 77},
	} {
		if err := sess.Record(r); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	if err := bench.SaveSession(store, sess); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	runs, err := store.SessionRuns(sess.ID)
	if err != nil {
		t.Fatalf("SessionRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 stored runs, got %d", len(runs))
	}
	if runs[1].Workers != 4 || runs[1].Checksum != 77 || runs[1].Elapsed != 10*time.Millisecond {
		t.Errorf("unexpected stored run: %+v", runs[1])
	}
}
