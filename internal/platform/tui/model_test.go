package tui

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vovakirdan/tui-fifteen/internal/core"
	"github.com/vovakirdan/tui-fifteen/internal/games/fifteen"
	"github.com/vovakirdan/tui-fifteen/internal/storage"
)

// nearSolvedYAML leaves 15 one slide from home; the blank sits at (3,2).
const nearSolvedYAML = `
board:
  initial:
    - [1, 2, 3, 4]
    - [5, 6, 7, 8]
    - [9, 10, 11, 12]
    - [13, 14, 0, 15]
`

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, Seed: 1}
}

// useNearSolvedBoard points the puzzle at a config one move from solved.
func useNearSolvedBoard(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "fifteen.yaml")
	if err := os.WriteFile(path, []byte(nearSolvedYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	fifteen.SetConfigPath(path)
	t.Cleanup(func() { fifteen.SetConfigPath("") })
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return nm, cmd
}

// solve walks the cursor from 14 onto 15 and slides it home.
func solve(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.State().Won {
		t.Fatalf("board should be solved, state %+v", m.State())
	}
	return m
}

func TestModelSavesResultOncePerWin(t *testing.T) {
	useNearSolvedBoard(t)
	store := openStore(t)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := start
	clock := func() time.Time { return now }

	m := NewModel(fifteen.New(), store, testConfig(), WithClock(clock))

	now = start.Add(42 * time.Second)
	m = solve(t, m)

	// Extra input after the win must not record again
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	results, err := store.TopResults(fifteen.IDClassic, 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Moves != 1 {
		t.Errorf("Moves = %d, want 1", results[0].Moves)
	}
	if results[0].Duration != 42*time.Second {
		t.Errorf("Duration = %v, want 42s", results[0].Duration)
	}

	m, _ = send(t, m, runeKey("n"))
	if m.State().Won || m.State().Moves != 0 {
		t.Errorf("new game should reset state, got %+v", m.State())
	}
}

func TestModelMouseTap(t *testing.T) {
	useNearSolvedBoard(t)
	m := NewModel(fifteen.New(), nil, testConfig())

	// Default display: 31-wide board centered in 80 columns from row 5;
	// tile (3,3) spans x 48..54, y 17..19.
	m, _ = send(t, m, tea.MouseMsg{X: 51, Y: 18, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	if !m.State().Won || m.State().Moves != 1 {
		t.Errorf("tap on 15 should solve the board, got %+v", m.State())
	}
}

func TestModelIgnoresMouseRelease(t *testing.T) {
	useNearSolvedBoard(t)
	m := NewModel(fifteen.New(), nil, testConfig())

	m, _ = send(t, m, tea.MouseMsg{X: 51, Y: 18, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	if m.State().Moves != 0 {
		t.Errorf("release should not slide, got %+v", m.State())
	}
}

func TestModelResizeKeepsBoard(t *testing.T) {
	useNearSolvedBoard(t)
	m := NewModel(fifteen.New(), nil, testConfig())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // 14 slides right
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if m.State().Moves != 1 {
		t.Errorf("resize should keep the board, got %+v", m.State())
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !m.State().Paused {
		t.Error("tiny window should pause the game")
	}
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("tiny window should show the resize hint")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	useNearSolvedBoard(t)

	m := NewModel(fifteen.New(), nil, testConfig())
	m, cmd := send(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}

	embedded := NewModel(fifteen.New(), nil, testConfig())
	embedded, cmd = send(t, embedded, tea.KeyMsg{Type: tea.KeyEsc})
	if !embedded.BackToMenu() || embedded.IsQuitting() || cmd != nil {
		t.Error("esc inside a session should return to the menu without quitting")
	}

	standalone := NewModel(fifteen.New(), nil, testConfig())
	standalone.standalone = true
	standalone, cmd = send(t, standalone, tea.KeyMsg{Type: tea.KeyEsc})
	if !standalone.IsQuitting() || cmd == nil {
		t.Error("esc in a standalone run should quit")
	}
}

func TestModelHelpOverlay(t *testing.T) {
	useNearSolvedBoard(t)
	m := NewModel(fifteen.New(), nil, testConfig())

	m, _ = send(t, m, runeKey("?"))
	if !strings.Contains(m.View(), "slide tile") {
		t.Errorf("help overlay should list bindings:\n%s", m.View())
	}

	// The key that closes help is not applied to the board
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().Moves != 0 {
		t.Error("closing help should not slide a tile")
	}
	if !strings.Contains(m.View(), "Moves: 0") {
		t.Error("board should be visible again after closing help")
	}
}

func TestModelHelpOverlayBlocksClicks(t *testing.T) {
	useNearSolvedBoard(t)
	store := openStore(t)
	m := NewModel(fifteen.New(), store, testConfig())

	m, _ = send(t, m, runeKey("?"))
	m, _ = send(t, m, tea.MouseMsg{X: 51, Y: 18, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	if m.showHelp {
		t.Error("a click should close the help overlay")
	}
	if st := m.State(); st.Moves != 0 || st.Won {
		t.Errorf("click under the help overlay reached the board, state %+v", st)
	}
	results, err := store.TopResults(fifteen.IDClassic, 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d saved results, want none", len(results))
	}

	// With help closed the same click slides 15 home
	m, _ = send(t, m, tea.MouseMsg{X: 51, Y: 18, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if !m.State().Won {
		t.Errorf("click after closing help should solve, state %+v", m.State())
	}
}

func TestModelLogsSolve(t *testing.T) {
	useNearSolvedBoard(t)

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.InfoLevel)

	m := NewModel(fifteen.New(), nil, testConfig(), WithLogger(logger))
	solve(t, m)

	if !strings.Contains(buf.String(), "puzzle solved") {
		t.Errorf("expected solve log line, got %q", buf.String())
	}
}

func TestModelTracesCommands(t *testing.T) {
	useNearSolvedBoard(t)

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { tp.Shutdown(t.Context()) })

	m := NewModel(fifteen.New(), nil, testConfig(),
		WithTracer(tp.Tracer("test")),
		WithLogger(log.New(io.Discard)),
	)
	solve(t, m)

	spans := sr.Ended()
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want one per command (3)", len(spans))
	}

	last := spans[len(spans)-1]
	if last.Name() != "fifteen.step" {
		t.Errorf("span name = %q", last.Name())
	}

	won := false
	for _, kv := range last.Attributes() {
		if kv.Key == attribute.Key("board.won") && kv.Value.AsBool() {
			won = true
		}
	}
	if !won {
		t.Error("final span should carry board.won=true")
	}

	solvedEvent := false
	for _, ev := range last.Events() {
		if ev.Name == "solved" {
			solvedEvent = true
		}
	}
	if !solvedEvent {
		t.Error("final span should record a solved event")
	}
}
