package fifteen

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
)

// Size is the board dimension.
const Size = 4

// Tile is a cell value: a label 1..15, or Empty for the blank.
type Tile int

// Empty is the blank marker that adjacent tiles slide into.
const Empty Tile = 0

// Label returns the tile's display text; the blank renders as a space.
func (t Tile) Label() string {
	if t == Empty {
		return " "
	}
	return strconv.Itoa(int(t))
}

// Grid is the 4x4 arrangement, indexed [row][col].
type Grid [Size][Size]Tile

// Cell is a row/column coordinate on the board.
type Cell struct {
	Row, Col int
}

// InBounds reports whether the cell lies on the board.
func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// neighbourOrder is the order adjacent cells are probed for the blank:
// left, right, up, down.
var neighbourOrder = [4]Cell{
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
}

// ErrInvalidGrid is returned when a grid does not hold 1..15 once each plus
// exactly one Empty.
var ErrInvalidGrid = errors.New("invalid grid")

// ChangeKind identifies what a board notification is about.
type ChangeKind int

const (
	ChangeMoved ChangeKind = iota
	ChangeShuffled
	ChangeWon
)

// Change is delivered to subscribers after every state change.
type Change struct {
	Kind  ChangeKind
	Tile  Tile // Tile that moved (ChangeMoved only)
	From  Cell // Where the tile was (ChangeMoved only)
	To    Cell // Where the tile is now (ChangeMoved only)
	Moves int
}

// Board holds the puzzle state: grid, move counter and won flag.
// It is owned by a single controller and is not safe for concurrent use.
type Board struct {
	grid        Grid
	moves       int
	won         bool
	subscribers []func(Change)
}

// ClassicGrid returns the fixed starting arrangement.
func ClassicGrid() Grid {
	return Grid{
		{8, 5, 10, 9},
		{2, 6, 3, 7},
		{4, 1, 12, 13},
		{15, 11, 14, Empty},
	}
}

// SolvedGrid returns 1..15 in reading order with the blank last.
func SolvedGrid() Grid {
	var g Grid
	for r := range Size {
		for c := range Size {
			g[r][c] = Tile(r*Size + c + 1)
		}
	}
	g[Size-1][Size-1] = Empty
	return g
}

// ValidateGrid checks the board invariant: one Empty and each label once.
func ValidateGrid(g Grid) error {
	var seen [Size*Size]bool
	for r := range Size {
		for c := range Size {
			t := g[r][c]
			if t < Empty || int(t) >= Size*Size {
				return fmt.Errorf("%w: tile %d at (%d,%d) out of range", ErrInvalidGrid, t, r, c)
			}
			if seen[t] {
				return fmt.Errorf("%w: tile %q repeated at (%d,%d)", ErrInvalidGrid, t.Label(), r, c)
			}
			seen[t] = true
		}
	}
	return nil
}

// NewBoard creates a board from the given arrangement.
// The won flag is computed from the grid so a solved start is already locked.
func NewBoard(g Grid) (*Board, error) {
	if err := ValidateGrid(g); err != nil {
		return nil, err
	}
	b := &Board{grid: g}
	b.checkCompletion()
	return b, nil
}

// ClassicBoard returns a board at the fixed starting arrangement.
func ClassicBoard() *Board {
	return &Board{grid: ClassicGrid()}
}

// Subscribe registers fn to be called after every state change.
func (b *Board) Subscribe(fn func(Change)) {
	b.subscribers = append(b.subscribers, fn)
}

func (b *Board) notify(c Change) {
	for _, fn := range b.subscribers {
		fn(c)
	}
}

// Grid returns a copy of the current arrangement.
func (b *Board) Grid() Grid {
	return b.grid
}

// At returns the tile at (row, col). Out-of-range cells read as Empty.
func (b *Board) At(row, col int) Tile {
	if !(Cell{Row: row, Col: col}).InBounds() {
		return Empty
	}
	return b.grid[row][col]
}

// Moves returns the number of successful moves since the last shuffle.
func (b *Board) Moves() int {
	return b.moves
}

// Won reports whether the board is solved. Moves are ignored while true.
func (b *Board) Won() bool {
	return b.won
}

// EmptyCell returns the position of the blank.
func (b *Board) EmptyCell() Cell {
	for r := range Size {
		for c := range Size {
			if b.grid[r][c] == Empty {
				return Cell{Row: r, Col: c}
			}
		}
	}
	// Unreachable while the grid invariant holds.
	return Cell{Row: Size - 1, Col: Size - 1}
}

// MoveTile slides the tile at (row, col) into an adjacent blank.
// Taps on the blank, on a tile with no blank neighbour, outside the board or
// after the puzzle is won are ignored. Returns true if a tile moved.
func (b *Board) MoveTile(row, col int) bool {
	from := Cell{Row: row, Col: col}
	if b.won || !from.InBounds() || b.grid[row][col] == Empty {
		return false
	}

	for _, d := range neighbourOrder {
		to := Cell{Row: row + d.Row, Col: col + d.Col}
		if !to.InBounds() || b.grid[to.Row][to.Col] != Empty {
			continue
		}

		tile := b.grid[row][col]
		b.grid[to.Row][to.Col] = tile
		b.grid[row][col] = Empty
		b.moves++
		b.checkCompletion()

		b.notify(Change{Kind: ChangeMoved, Tile: tile, From: from, To: to, Moves: b.moves})
		if b.won {
			b.notify(Change{Kind: ChangeWon, Moves: b.moves})
		}
		return true
	}

	return false
}

// Shuffle replaces the arrangement with a uniformly random permutation of the
// 16 cells and resets the counter and won flag. The result may be unsolvable.
func (b *Board) Shuffle(rng *rand.Rand) {
	flat := b.flatten()
	rng.Shuffle(len(flat), func(i, j int) {
		flat[i], flat[j] = flat[j], flat[i]
	})
	b.reset(flat)
}

// ShuffleSolvable shuffles like Shuffle, then swaps the first two labelled
// tiles when the permutation has the wrong parity, so the result can always be
// solved by legal slides. The result is uniform over solvable arrangements.
func (b *Board) ShuffleSolvable(rng *rand.Rand) {
	flat := b.flatten()
	rng.Shuffle(len(flat), func(i, j int) {
		flat[i], flat[j] = flat[j], flat[i]
	})

	if !IsSolvable(unflatten(flat)) {
		first, second := -1, -1
		for i, t := range flat {
			if t == Empty {
				continue
			}
			if first < 0 {
				first = i
			} else {
				second = i
				break
			}
		}
		flat[first], flat[second] = flat[second], flat[first]
	}

	b.reset(flat)
}

func (b *Board) reset(flat [Size * Size]Tile) {
	b.grid = unflatten(flat)
	b.moves = 0
	b.won = false
	b.notify(Change{Kind: ChangeShuffled})
}

func (b *Board) flatten() [Size * Size]Tile {
	var flat [Size * Size]Tile
	for r := range Size {
		for c := range Size {
			flat[r*Size+c] = b.grid[r][c]
		}
	}
	return flat
}

func unflatten(flat [Size * Size]Tile) Grid {
	var g Grid
	for i, t := range flat {
		g[i/Size][i%Size] = t
	}
	return g
}

// checkCompletion recomputes the won flag: every cell must hold its 1-based
// reading-order index, except the last which must be the blank.
func (b *Board) checkCompletion() {
	b.won = false
	for r := range Size {
		for c := range Size {
			want := Tile(r*Size + c + 1)
			if r == Size-1 && c == Size-1 {
				want = Empty
			}
			if b.grid[r][c] != want {
				return
			}
		}
	}
	b.won = true
}

// IsSolvable reports whether the arrangement can reach the solved state by
// legal slides. On an even-width board that holds when the inversion count
// plus the blank's row counted from the bottom (1-based) is odd.
func IsSolvable(g Grid) bool {
	var tiles []Tile
	blankRowFromBottom := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] == Empty {
				blankRowFromBottom = Size - r
				continue
			}
			tiles = append(tiles, g[r][c])
		}
	}

	inversions := 0
	for i := range tiles {
		for j := i + 1; j < len(tiles); j++ {
			if tiles[i] > tiles[j] {
				inversions++
			}
		}
	}

	return (inversions+blankRowFromBottom)%2 == 1
}
