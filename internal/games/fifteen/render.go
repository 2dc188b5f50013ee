package fifteen

import (
	"fmt"

	"github.com/vovakirdan/tui-fifteen/internal/config"
	"github.com/vovakirdan/tui-fifteen/internal/core"
)

const (
	titleText  = "F I F T E E N"
	buttonText = "New Game"
	bannerText = "You Won!"
	buttonPadX = 2 // Spaces between button border and label
	headerRows = 5 // Title + 3-row button + blank
	footerRows = 4 // Blank + moves + banner + controls
)

// layout holds screen rectangles shared by Render and tap hit-testing.
type layout struct {
	titleY  int
	button  core.Rect
	board   core.Rect
	tiles   [Size][Size]core.Rect
	movesY  int
	bannerY int
	hintY   int
	minW    int
	minH    int
}

// computeLayout centers the board horizontally and stacks header, board and
// footer from the top of the screen.
func computeLayout(screenW, screenH int, d config.DisplayConfig) layout {
	var l layout

	boardW := Size*d.TileWidth + (Size-1)*d.Gap
	boardH := Size*d.TileHeight + (Size-1)*d.Gap

	buttonW := len(buttonText) + 2*buttonPadX + 2
	l.minW = max(boardW, len(titleText), buttonW) + 2
	l.minH = headerRows + boardH + footerRows

	l.titleY = 0
	l.button = core.NewRect((screenW-buttonW)/2, 1, buttonW, 3)

	boardX := (screenW - boardW) / 2
	boardY := headerRows
	l.board = core.NewRect(boardX, boardY, boardW, boardH)

	for r := range Size {
		for c := range Size {
			l.tiles[r][c] = core.NewRect(
				boardX+c*(d.TileWidth+d.Gap),
				boardY+r*(d.TileHeight+d.Gap),
				d.TileWidth,
				d.TileHeight,
			)
		}
	}

	l.movesY = l.board.Bottom() + 1
	l.bannerY = l.movesY + 1
	l.hintY = max(l.bannerY+1, screenH-1)

	return l
}

// cellAt returns the board cell under a screen position. Gaps between tiles
// belong to no cell.
func (l layout) cellAt(p core.Point) (Cell, bool) {
	if !l.board.ContainsPoint(p) {
		return Cell{}, false
	}
	for r := range Size {
		for c := range Size {
			if l.tiles[r][c].ContainsPoint(p) {
				return Cell{Row: r, Col: c}, true
			}
		}
	}
	return Cell{}, false
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	dst.DrawTextCentered(g.layout.titleY, titleText, core.ColorBrightWhite)
	g.renderButton(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", g.layout.minW, g.layout.minH, g.screenW, g.screenH), core.ColorGray)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDefault)
}

func (g *Game) renderButton(dst *core.Screen) {
	b := g.layout.button
	dst.DrawBox(b, g.palette.Button)
	dst.DrawTextColor(b.X+1+buttonPadX, b.Y+1, buttonText, g.palette.Button)
}

// renderBoard draws each labelled tile as a colored box. The blank stays empty
// unless the cursor is on it.
func (g *Game) renderBoard(dst *core.Screen) {
	grid := g.board.Grid()
	won := g.board.Won()

	for r := range Size {
		for c := range Size {
			cell := Cell{Row: r, Col: c}
			rect := g.layout.tiles[r][c]
			tile := grid[r][c]

			color := g.palette.Tile
			if g.hasLastMoved && cell == g.lastMoved {
				color = g.palette.Moved
			}
			if !won && cell == g.cursor {
				color = g.palette.Cursor
			}

			if tile == Empty {
				if !won && cell == g.cursor {
					dst.DrawBox(rect, color)
				}
				continue
			}

			dst.DrawBox(rect, color)
			label := tile.Label()
			cx, cy := rect.Center()
			dst.DrawTextColor(cx-len(label)/2, cy, label, color)
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	dst.DrawTextCentered(g.layout.movesY, fmt.Sprintf("Moves: %d", g.board.Moves()), g.palette.Moves)

	if g.board.Won() {
		dst.DrawTextCentered(g.layout.bannerY, bannerText, g.palette.Banner)
	}

	dst.DrawTextCentered(g.layout.hintY, g.Controls(), core.ColorGray)
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Click/Enter: Slide | Arrows: Select | N: New Game | Q: Quit"
}
