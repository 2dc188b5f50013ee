// Package fifteen implements the 4x4 sliding-tile puzzle: the board state
// with its tap-to-move rule, win detection and shuffle, plus the registry.Game
// adapter that lays the board out on a character screen.
package fifteen

import (
	"math/rand"

	"github.com/vovakirdan/tui-fifteen/internal/config"
	"github.com/vovakirdan/tui-fifteen/internal/core"
	"github.com/vovakirdan/tui-fifteen/internal/registry"
)

// Mode selects how a new game starts.
type Mode string

const (
	ModeClassic  Mode = "classic"  // Fixed opening arrangement from config
	ModeShuffled Mode = "shuffled" // Dealt from a shuffle
)

// Registered game IDs.
const (
	IDClassic  = "fifteen"
	IDShuffled = "fifteen_shuffled"
)

// Game adapts a Board to the registry.Game interface.
type Game struct {
	mode  Mode
	rng   *rand.Rand
	board *Board

	cfg       config.FifteenConfig
	palette   config.Palette
	configErr error

	cursor       Cell
	lastMoved    Cell
	hasLastMoved bool

	screenW  int
	screenH  int
	layout   layout
	tooSmall bool
}

// Package-level variables for config
var (
	configPath string
)

// SetConfigPath sets the YAML config file used by subsequent Resets.
// Empty means the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a puzzle that starts from the classic arrangement.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewShuffled creates a puzzle that starts from a shuffle.
func NewShuffled() *Game {
	return &Game{mode: ModeShuffled}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDShuffled, func() registry.Game {
		return NewShuffled()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeShuffled {
		return IDShuffled
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeShuffled {
		return "Fifteen (Shuffled)"
	}
	return "Fifteen"
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.mode == ModeShuffled {
		return "15-puzzle dealt from a random shuffle"
	}
	return "15-puzzle from the classic opening layout"
}

// Reset loads config and builds a fresh board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.configErr = nil
	loaded, err := config.LoadFifteen(configPath)
	if err != nil {
		g.configErr = err
		loaded = config.DefaultFifteenConfig()
	}
	g.cfg = loaded

	palette, err := g.cfg.Display.Palette()
	if err != nil {
		// Validated configs always resolve; keep the defaults otherwise.
		palette, _ = config.DefaultFifteenConfig().Display.Palette()
	}
	g.palette = palette

	g.rng = rand.New(rand.NewSource(cfg.Seed))

	board, err := NewBoard(gridFromRows(g.cfg.Board.Initial))
	if err != nil {
		if g.configErr == nil {
			g.configErr = err
		}
		board = ClassicBoard()
	}
	g.board = board
	g.board.Subscribe(g.onChange)
	g.hasLastMoved = false

	if g.mode == ModeShuffled {
		g.shuffle()
	}

	g.cursor = g.startCursor()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// ConfigError returns the config problem found by the last Reset, if any.
// The game falls back to defaults when this is non-nil.
func (g *Game) ConfigError() error {
	return g.configErr
}

// Resize recomputes the layout for new screen dimensions.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.layout = computeLayout(width, height, g.cfg.Display)
	g.tooSmall = width < g.layout.minW || height < g.layout.minH
}

// gridFromRows converts validated config rows to a Grid.
func gridFromRows(rows [][]int) Grid {
	var grid Grid
	for r := 0; r < Size && r < len(rows); r++ {
		for c := 0; c < Size && c < len(rows[r]); c++ {
			grid[r][c] = Tile(rows[r][c])
		}
	}
	return grid
}

// startCursor puts the cursor on the first tile that can slide.
func (g *Game) startCursor() Cell {
	blank := g.board.EmptyCell()
	for _, d := range neighbourOrder {
		c := Cell{Row: blank.Row + d.Row, Col: blank.Col + d.Col}
		if c.InBounds() {
			return c
		}
	}
	return blank
}

func (g *Game) onChange(c Change) {
	switch c.Kind {
	case ChangeMoved:
		g.lastMoved = c.To
		g.hasLastMoved = true
	case ChangeShuffled:
		g.hasLastMoved = false
	}
}

func (g *Game) shuffle() {
	if g.cfg.Board.SolvableShuffle {
		g.board.ShuffleSolvable(g.rng)
	} else {
		g.board.Shuffle(g.rng)
	}
}

// Step applies one command.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	var res core.StepResult

	if in.Has(core.ActionShuffle) {
		g.shuffle()
		res.Changed = true
		res.Dealt = true
	}

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, Size-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, Size-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, Size-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, Size-1)
	}

	if in.Has(core.ActionConfirm) {
		if g.board.MoveTile(g.cursor.Row, g.cursor.Col) {
			res.Changed = true
		}
	}

	if p, ok := in.Tap(); ok {
		moved, dealt := g.handleTap(p)
		res.Changed = res.Changed || moved || dealt
		res.Dealt = res.Dealt || dealt
	}

	res.State = g.State()
	return res
}

// handleTap hit-tests a screen position against the New Game button and the
// tiles.
func (g *Game) handleTap(p core.Point) (moved, dealt bool) {
	if g.layout.button.ContainsPoint(p) {
		g.shuffle()
		return false, true
	}

	cell, ok := g.layout.cellAt(p)
	if !ok {
		return false, false
	}
	g.cursor = cell
	return g.board.MoveTile(cell.Row, cell.Col), false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{}
	}
	return core.GameState{
		Moves:  g.board.Moves(),
		Won:    g.board.Won(),
		Paused: g.tooSmall,
	}
}

// MouseEnabled reports whether the config asks for mouse input.
func (g *Game) MouseEnabled() bool {
	return g.cfg.Display.Mouse
}

// Board exposes the underlying board state (read-mostly; used by tests and tooling).
func (g *Game) Board() *Board {
	return g.board
}
