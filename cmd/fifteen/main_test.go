package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-fifteen/internal/games/fifteen"
	"github.com/vovakirdan/tui-fifteen/internal/registry"
	"github.com/vovakirdan/tui-fifteen/internal/storage"
)

// isolate keeps commands away from the real home directory and resets
// package flags afterwards.
func isolate(t *testing.T) (dbPath string, out *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FIFTEEN_TRACING", "")
	t.Chdir(t.TempDir())

	out = &bytes.Buffer{}
	rootCmd.SetOut(out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		flagClear, flagTable, flagRecent = false, false, 0
		shutdownTelemetry = nil
	})
	return filepath.Join(t.TempDir(), "results.db"), out
}

func seedResults(t *testing.T, dbPath string) {
	t.Helper()
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveResult(fifteen.IDClassic, 30, time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveResult(fifteen.IDShuffled, 55, 2*time.Minute); err != nil {
		t.Fatal(err)
	}
}

func TestExecuteFlushesTracingOnError(t *testing.T) {
	dbPath, _ := isolate(t)

	flushed := false
	shutdownTelemetry = func(context.Context) error {
		flushed = true
		return nil
	}

	err := execute([]string{"results", "nope", "--db", dbPath})
	if err == nil || !strings.Contains(err.Error(), "unknown game") {
		t.Fatalf("execute() error = %v, want unknown game", err)
	}
	if !flushed {
		t.Error("tracing should be flushed when a command fails")
	}
	if shutdownTelemetry != nil {
		t.Error("teardown should only flush once")
	}
}

func TestResultsCommandTop(t *testing.T) {
	dbPath, out := isolate(t)
	seedResults(t, dbPath)

	if err := execute([]string{"results", fifteen.IDClassic, "--db", dbPath}); err != nil {
		t.Fatalf("execute() failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Best Results", "Rank", "1:00", "Best: 30 moves"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestResultsCommandRecent(t *testing.T) {
	dbPath, out := isolate(t)
	seedResults(t, dbPath)

	if err := execute([]string{"results", "--recent", "5", "--db", dbPath}); err != nil {
		t.Fatalf("execute() failed: %v", err)
	}

	got := out.String()
	classic, _ := registry.Info(fifteen.IDClassic)
	shuffled, _ := registry.Info(fifteen.IDShuffled)

	if !strings.Contains(got, "Recent Solves") {
		t.Errorf("output missing heading:\n%s", got)
	}
	// Newest first
	iShuffled := strings.Index(got, shuffled.Title)
	iClassic := strings.LastIndex(got, classic.Title+" ")
	if iShuffled < 0 || iClassic < 0 || iShuffled > iClassic {
		t.Errorf("want %q listed before %q:\n%s", shuffled.Title, classic.Title, got)
	}
}

func TestResultsCommandClearNeedsGame(t *testing.T) {
	dbPath, _ := isolate(t)

	err := execute([]string{"results", "--clear", "--db", dbPath})
	if err == nil || !strings.Contains(err.Error(), "--clear") {
		t.Errorf("execute() error = %v, want --clear complaint", err)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	dbPath, _ := isolate(t)
	t.Cleanup(func() { flagLogLevel = "info" })

	err := execute([]string{"list", "--log-level", "loud", "--db", dbPath})
	if err == nil || !strings.Contains(err.Error(), "--log-level") {
		t.Errorf("execute() error = %v, want log level error", err)
	}
}
