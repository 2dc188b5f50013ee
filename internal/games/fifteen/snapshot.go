package fifteen

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateWon         GameStateType = "won"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Mode      string // "classic" or "shuffled"
	Grid      Grid
	Moves     int
	Cursor    Cell
	Solvable  bool
	State     GameStateType
	LastMoved *Cell // nil until the first move after a deal
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.board.Won():
		state = StateWon
	}

	snap := Snapshot{
		Mode:     string(g.mode),
		Grid:     g.board.Grid(),
		Moves:    g.board.Moves(),
		Cursor:   g.cursor,
		Solvable: IsSolvable(g.board.Grid()),
		State:    state,
	}
	if g.hasLastMoved {
		moved := g.lastMoved
		snap.LastMoved = &moved
	}
	return snap
}
