package config

import (
	_ "embed"
)

//go:embed defaults/fifteen.yaml
var defaultFifteenYAML []byte

// DefaultFifteenConfig returns the hardcoded default configuration.
// It matches defaults/fifteen.yaml.
func DefaultFifteenConfig() FifteenConfig {
	return FifteenConfig{
		Board: BoardConfig{
			Initial: [][]int{
				{8, 5, 10, 9},
				{2, 6, 3, 7},
				{4, 1, 12, 13},
				{15, 11, 14, 0},
			},
			SolvableShuffle: false,
		},
		Display: DisplayConfig{
			TileWidth:   7,
			TileHeight:  3,
			Gap:         1,
			TileColor:   "pink",
			CursorColor: "bright_yellow",
			MovedColor:  "bright_cyan",
			ButtonColor: "green",
			MovesColor:  "blue",
			BannerColor: "red",
			Mouse:       true,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `fifteen config`.
func DefaultYAML() []byte {
	return defaultFifteenYAML
}
