// Package config provides YAML-based configuration loading for the puzzle.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-fifteen/internal/core"
)

// BoardDim is the expected number of rows and columns in board.initial.
const BoardDim = 4

// Minimum tile box dimensions that still fit a two-digit label inside a border.
const (
	MinTileWidth  = 4
	MinTileHeight = 3
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// FifteenConfig contains all configuration for the sliding puzzle.
type FifteenConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Display DisplayConfig `yaml:"display"`
}

// BoardConfig defines the starting arrangement and shuffle policy.
type BoardConfig struct {
	Initial         [][]int `yaml:"initial"`          // Row-major labels, 0 = blank
	SolvableShuffle bool    `yaml:"solvable_shuffle"` // Deal only solvable boards
}

// DisplayConfig defines how the board is drawn.
type DisplayConfig struct {
	TileWidth   int    `yaml:"tile_width"`
	TileHeight  int    `yaml:"tile_height"`
	Gap         int    `yaml:"gap"`
	TileColor   string `yaml:"tile_color"`
	CursorColor string `yaml:"cursor_color"`
	MovedColor  string `yaml:"moved_color"`
	ButtonColor string `yaml:"button_color"`
	MovesColor  string `yaml:"moves_color"`
	BannerColor string `yaml:"banner_color"`
	Mouse       bool   `yaml:"mouse"`
}

// Palette is the resolved set of colors used by the renderer.
type Palette struct {
	Tile   core.Color
	Cursor core.Color
	Moved  core.Color
	Button core.Color
	Moves  core.Color
	Banner core.Color
}

// Validate checks shape and ranges. Whether the labels form a permutation is
// left to the board, which owns that invariant.
func (c FifteenConfig) Validate() error {
	if len(c.Board.Initial) != BoardDim {
		return fmt.Errorf("%w: board.initial has %d rows, want %d", ErrInvalidConfig, len(c.Board.Initial), BoardDim)
	}
	for r, row := range c.Board.Initial {
		if len(row) != BoardDim {
			return fmt.Errorf("%w: board.initial row %d has %d columns, want %d", ErrInvalidConfig, r, len(row), BoardDim)
		}
	}

	if c.Display.TileWidth < MinTileWidth {
		return fmt.Errorf("%w: display.tile_width %d is below %d", ErrInvalidConfig, c.Display.TileWidth, MinTileWidth)
	}
	if c.Display.TileHeight < MinTileHeight {
		return fmt.Errorf("%w: display.tile_height %d is below %d", ErrInvalidConfig, c.Display.TileHeight, MinTileHeight)
	}
	if c.Display.Gap < 0 {
		return fmt.Errorf("%w: display.gap must not be negative", ErrInvalidConfig)
	}

	if _, err := c.Display.Palette(); err != nil {
		return err
	}
	return nil
}

// Palette resolves the configured color names.
func (d DisplayConfig) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		key  string
		name string
		dst  *core.Color
	}{
		{"tile_color", d.TileColor, &p.Tile},
		{"cursor_color", d.CursorColor, &p.Cursor},
		{"moved_color", d.MovedColor, &p.Moved},
		{"button_color", d.ButtonColor, &p.Button},
		{"moves_color", d.MovesColor, &p.Moves},
		{"banner_color", d.BannerColor, &p.Banner},
	}

	for _, f := range fields {
		c, ok := core.ParseColor(f.name)
		if !ok {
			return p, fmt.Errorf("%w: display.%s: unknown color %q", ErrInvalidConfig, f.key, f.name)
		}
		*f.dst = c
	}
	return p, nil
}
