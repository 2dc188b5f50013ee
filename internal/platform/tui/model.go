// Package tui provides the Bubble Tea integration for the puzzle.
// It maps keys and mouse clicks to game commands, draws the game's screen
// buffer and records solved games.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-fifteen/internal/core"
	"github.com/vovakirdan/tui-fifteen/internal/registry"
	"github.com/vovakirdan/tui-fifteen/internal/storage"
	"github.com/vovakirdan/tui-fifteen/internal/telemetry"
)

// Model is the Bubble Tea model for one puzzle run.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	tracer    trace.Tracer
	clock     func() time.Time
	keyMapper *KeyMapper
	help      help.Model
	config    core.RuntimeConfig
	gameState core.GameState
	startedAt time.Time

	standalone  bool // Back quits the program instead of returning to a menu
	showHelp    bool
	quitting    bool
	backToMenu  bool
	resultSaved bool // Whether the current win has been recorded
}

// ModelOption customizes a Model.
type ModelOption func(*Model)

// WithLogger sets the logger used for game events.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// WithTracer sets the tracer used for per-command spans.
func WithTracer(t trace.Tracer) ModelOption {
	return func(m *Model) { m.tracer = t }
}

// WithClock replaces time.Now for measuring solve time.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.clock = now }
}

// NewModel creates a new Bubble Tea model for the given game and resets it.
// store may be nil, in which case solved games are only logged.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    log.New(io.Discard),
		tracer:    telemetry.Tracer("tui"),
		clock:     time.Now,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		config:    cfg,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.help.ShowAll = true

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.startedAt = m.clock()

	m.logger.Debug("game started", "game", game.ID(), "seed", cfg.Seed)

	return m
}

// Init implements tea.Model. The game is event-driven, so there is no tick loop.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		in := core.NewInputFrame()
		if !m.keyMapper.MapMouseToFrame(msg, &in) {
			return m, nil
		}
		// A click closes the help overlay without reaching the hidden board
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m.step(in, "tap")

	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case m.showHelp:
		// Any other key closes the help overlay
		m.showHelp = false
		return m, nil

	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, keys.Back):
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	in := core.NewInputFrame()
	m.keyMapper.MapKeyToFrame(msg, &in)
	if in.Empty() {
		return m, nil
	}
	return m.step(in, msg.String())
}

// handleResize adapts the layout without resetting the board.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	m.gameState = m.game.State()
	return m, nil
}

// step applies one command to the game inside a span and records wins.
func (m Model) step(in core.InputFrame, input string) (tea.Model, tea.Cmd) {
	_, span := m.tracer.Start(context.Background(), "fifteen.step",
		trace.WithAttributes(
			attribute.String("game.id", m.game.ID()),
			attribute.String("input", input),
		),
	)
	defer span.End()

	wasWon := m.gameState.Won
	result := m.game.Step(in)
	m.gameState = result.State

	span.SetAttributes(
		attribute.Int("board.moves", result.State.Moves),
		attribute.Bool("board.won", result.State.Won),
		attribute.Bool("board.changed", result.Changed),
	)

	if result.Dealt {
		m.startedAt = m.clock()
		m.resultSaved = false
		m.logger.Debug("new deal", "game", m.game.ID())
	}

	if m.gameState.Won && !wasWon && !m.resultSaved {
		m.recordWin(span)
	}

	return m, nil
}

// recordWin saves the solved game. Storage failures are logged and the game
// continues.
func (m *Model) recordWin(span trace.Span) {
	elapsed := m.clock().Sub(m.startedAt)
	m.resultSaved = true

	m.logger.Info("puzzle solved",
		"game", m.game.ID(),
		"moves", m.gameState.Moves,
		"elapsed", elapsed.Round(time.Second),
	)
	span.AddEvent("solved")

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveResult(m.game.ID(), m.gameState.Moves, elapsed); err != nil {
		m.logger.Warn("could not save result", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "save result")
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".fifteen", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return m.viewHelp()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(m.game.Title()+" - Controls"),
		m.help.View(m.keyMapper.Keys()),
		"",
		helpHintStyle.Render("press any key to return"),
	)

	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, body)
}

// State returns the last known game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// MouseAware is implemented by games that can turn mouse reporting off.
type MouseAware interface {
	MouseEnabled() bool
}

// Run starts a standalone Bubble Tea program for the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)
	model.standalone = true

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if ma, ok := game.(MouseAware); !ok || ma.MouseEnabled() {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	_, err := tea.NewProgram(model, progOpts...).Run()
	return err
}
