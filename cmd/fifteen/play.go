package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fifteen/internal/config"
	"github.com/vovakirdan/tui-fifteen/internal/games/fifteen"
	"github.com/vovakirdan/tui-fifteen/internal/platform/tui"
	"github.com/vovakirdan/tui-fifteen/internal/registry"
	"github.com/vovakirdan/tui-fifteen/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play the puzzle",
	Long: `Start a puzzle. Without a game ID a mode picker is shown first.

Controls:
  Arrows/WASD/hjkl - Move cursor
  Enter/Space      - Slide the tile under the cursor
  Mouse click      - Slide the clicked tile
  N/R              - New game
  ?                - Help
  Esc/Q            - Quit

Examples:
  fifteen play
  fifteen play fifteen
  fifteen play fifteen_shuffled --seed 42
  fifteen play --config ./my-fifteen.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom puzzle config YAML")
}

// loadConfig validates a custom config before any UI starts and points the
// puzzle at it.
func loadConfig() (config.FifteenConfig, error) {
	cfg, err := config.LoadFifteen(flagConfig)
	if err != nil {
		return cfg, err
	}
	fifteen.SetConfigPath(flagConfig)
	return cfg, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	cfg := runtimeConfig()

	var gameID string
	if len(args) == 1 {
		gameID = args[0]
	} else {
		selected, err := tui.RunModeSelector(cfg)
		if err != nil {
			return err
		}
		// User pressed back or quit
		if selected == "" {
			return nil
		}
		gameID = selected
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'fifteen list' to see available games)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Results are optional; the puzzle still works without them
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	gameLog, closeLog := tuiLogger()
	defer closeLog()

	if err := tui.Run(game, store, cfg, tui.WithLogger(gameLog), tui.WithTracer(tuiTracer())); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
