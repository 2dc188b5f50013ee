package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic shuffles.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0,
	}
}

// GameState is the externally visible status of a puzzle.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Moves  int  // Successful moves since the last shuffle
	Won    bool // Board is solved; moves are locked until New Game
	Paused bool // Game cannot accept input (e.g. window too small)
}

// StepResult is returned by Game.Step() after each command.
type StepResult struct {
	State GameState

	// Changed is true if the command altered the board (a move or a shuffle).
	Changed bool

	// Dealt is true if the command started a new game.
	Dealt bool
}
