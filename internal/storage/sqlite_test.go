package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		game  string
		moves int
		secs  int
	}{
		{"fifteen", 120, 95},
		{"fifteen", 80, 300},
		{"fifteen", 200, 40},
		{"fifteen_shuffled", 150, 60},
	}
	for _, s := range saves {
		if _, err := store.SaveResult(s.game, s.moves, time.Duration(s.secs)*time.Second); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	results, err := store.TopResults("fifteen", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	// Fewest moves first
	want := []int{80, 120, 200}
	for i, r := range results {
		if r.Moves != want[i] {
			t.Errorf("results[%d].Moves = %d, want %d", i, r.Moves, want[i])
		}
	}
	if results[0].Duration != 300*time.Second {
		t.Errorf("Duration = %v, want 5m0s", results[0].Duration)
	}
	if results[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	shuffled, err := store.TopResults("fifteen_shuffled", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(shuffled) != 1 {
		t.Errorf("Expected 1 shuffled result, got %d", len(shuffled))
	}
}

func TestStoreTopResultsTieBreak(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult("fifteen", 100, 90*time.Second)
	store.SaveResult("fifteen", 100, 30*time.Second)
	store.SaveResult("fifteen", 100, 60*time.Second)

	results, err := store.TopResults("fifteen", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}

	want := []time.Duration{30 * time.Second, 60 * time.Second, 90 * time.Second}
	for i, r := range results {
		if r.Duration != want[i] {
			t.Errorf("results[%d].Duration = %v, want %v", i, r.Duration, want[i])
		}
	}
}

func TestStoreTopResultsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveResult("test", (i+1)*100, time.Minute)
	}

	results, err := store.TopResults("test", 3)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(results))
	}

	if results[0].Moves != 100 || results[1].Moves != 200 || results[2].Moves != 300 {
		t.Errorf("Results not in expected order: %v", results)
	}
}

func TestStoreSaveResultRejectsNegativeMoves(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult("fifteen", -1, 0); err == nil {
		t.Error("SaveResult() should reject a negative move count")
	}
}

func TestStoreBestResult(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.BestResult("fifteen")
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if ok {
		t.Error("BestResult() should report no result for an unsolved game")
	}

	store.SaveResult("fifteen", 140, time.Minute)
	store.SaveResult("fifteen", 90, time.Minute)
	store.SaveResult("fifteen", 110, time.Minute)

	best, ok, err := store.BestResult("fifteen")
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if !ok || best != 90 {
		t.Errorf("BestResult() = %d, %v, want 90, true", best, ok)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult("fifteen", 100, time.Minute)
	store.SaveResult("fifteen", 200, time.Minute)
	store.SaveResult("fifteen_shuffled", 300, time.Minute)

	if err := store.ClearResults("fifteen"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	classic, _ := store.TopResults("fifteen", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(classic))
	}

	shuffled, _ := store.TopResults("fifteen_shuffled", 10)
	if len(shuffled) != 1 {
		t.Error("Other games should not be affected by clearing one")
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveResult("fifteen", 100+i, time.Minute)
	}

	results, err := store.RecentResults(2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Moves != 104 || results[1].Moves != 103 {
		t.Errorf("Expected newest first, got %v", results)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("fifteen")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.Solved != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveResult("fifteen", 100, 120*time.Second)
	store.SaveResult("fifteen", 200, 45*time.Second)
	store.SaveResult("fifteen_shuffled", 50, 10*time.Second)

	stats, err := store.GetGameStats("fifteen")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Solved != 2 || stats.BestMoves != 100 || stats.TotalMoves != 300 {
		t.Errorf("GetGameStats() = %+v", stats)
	}
	if stats.AvgMoves != 150 {
		t.Errorf("AvgMoves = %v, want 150", stats.AvgMoves)
	}
	if stats.BestTime != 45*time.Second {
		t.Errorf("BestTime = %v, want 45s", stats.BestTime)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["fifteen_shuffled"].BestMoves != 50 {
		t.Errorf("shuffled BestMoves = %d, want 50", all["fifteen_shuffled"].BestMoves)
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

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.fifteen/results.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".fifteen", "results.db")); err != nil {
		t.Errorf("Database file not created under HOME: %v", err)
	}
}
