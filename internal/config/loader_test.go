package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-fifteen/internal/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fifteen.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg FifteenConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultFifteenConfig()) {
		t.Errorf("embedded YAML = %+v, want %+v", cfg, DefaultFifteenConfig())
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadFifteen("")
	if err != nil {
		t.Fatalf("LoadFifteen() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFifteenConfig()) {
		t.Errorf("LoadFifteen(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadLocalConfigsDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	body := "board:\n  solvable_shuffle: true\n"
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFifteen("")
	if err != nil {
		t.Fatalf("LoadFifteen() failed: %v", err)
	}
	if !cfg.Board.SolvableShuffle {
		t.Error("local configs/fifteen.yaml should be picked up")
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := writeConfig(t, `
display:
  tile_color: cyan
  gap: 0
`)

	cfg, err := LoadFifteen(path)
	if err != nil {
		t.Fatalf("LoadFifteen() failed: %v", err)
	}

	if cfg.Display.TileColor != "cyan" {
		t.Errorf("TileColor = %q, want cyan", cfg.Display.TileColor)
	}
	if cfg.Display.Gap != 0 {
		t.Errorf("Gap = %d, want 0", cfg.Display.Gap)
	}
	// Untouched fields keep their defaults
	if cfg.Display.TileWidth != 7 {
		t.Errorf("TileWidth = %d, want default 7", cfg.Display.TileWidth)
	}
	if !reflect.DeepEqual(cfg.Board.Initial, DefaultFifteenConfig().Board.Initial) {
		t.Errorf("Initial = %v, want default layout", cfg.Board.Initial)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{
			name:    "wrong row count",
			body:    "board:\n  initial:\n    - [1, 2, 3, 4]\n",
			invalid: true,
		},
		{
			name:    "short row",
			body:    "board:\n  initial:\n    - [1, 2, 3, 4]\n    - [5, 6, 7, 8]\n    - [9, 10, 11, 12]\n    - [13, 14, 0]\n",
			invalid: true,
		},
		{
			name:    "unknown color",
			body:    "display:\n  banner_color: chartreuse\n",
			invalid: true,
		},
		{
			name:    "tile too narrow",
			body:    "display:\n  tile_width: 2\n",
			invalid: true,
		},
		{
			name:    "negative gap",
			body:    "display:\n  gap: -1\n",
			invalid: true,
		},
		{
			name:    "malformed yaml",
			body:    "board: [",
			invalid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFifteen(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("LoadFifteen() should fail")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v (err: %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := LoadFifteen(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("missing custom config should be an error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestPalette(t *testing.T) {
	p, err := DefaultFifteenConfig().Display.Palette()
	if err != nil {
		t.Fatalf("Palette() failed: %v", err)
	}
	if p.Tile != core.ColorBrightMagenta {
		t.Errorf("Tile color = %v, want pink (bright magenta)", p.Tile)
	}
	if p.Button != core.ColorGreen {
		t.Errorf("Button color = %v, want green", p.Button)
	}
}
