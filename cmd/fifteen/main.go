// fifteen is the 4x4 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	fifteen list              - List puzzle variants
//	fifteen play [game]       - Play a puzzle (mode picker if no game given)
//	fifteen menu              - Start menu to pick games interactively
//	fifteen serve             - Start SSH server for remote play
//	fifteen results [game]    - Show best results
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible shuffles
//	--db <path>          - Set database path (default: ~/.fifteen/results.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-fifteen/internal/core"
	"github.com/vovakirdan/tui-fifteen/internal/telemetry"

	// Import games to register them
	_ "github.com/vovakirdan/tui-fifteen/internal/games/fifteen"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

var (
	logLevel          = log.InfoLevel
	logger            = log.New(io.Discard)
	shutdownTelemetry func(context.Context) error
)

func main() {
	if err := execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// execute runs the command line and flushes tracing whether or not the
// command failed.
func execute(args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	teardown()
	return err
}

var rootCmd = &cobra.Command{
	Use:   "fifteen",
	Short: "Fifteen - the sliding-tile puzzle in your terminal",
	Long: `Fifteen is the classic 4x4 sliding puzzle. Slide tiles into the blank
until 1-15 read in order with the blank in the bottom-right corner.

Available commands:
  list     - Show puzzle variants
  play     - Play a puzzle directly
  menu     - Interactive menu
  serve    - Start SSH server for remote play
  results  - View best results

Examples:
  fifteen play
  fifteen play fifteen_shuffled --seed 42
  fifteen menu
  fifteen serve --ssh :2222
  fifteen results fifteen`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fifteen/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
}

// setup loads .env, configures logging and starts tracing if requested.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logLevel = level
	logger = newLogger(os.Stderr, "fifteen")

	// .env is optional; variables may be set directly
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env not loaded", "error", err)
	}

	if !telemetry.Enabled() {
		return nil
	}
	shutdown, err := telemetry.Setup(context.Background())
	if err != nil {
		logger.Warn("tracing setup failed, continuing without it", "error", err)
		return nil
	}
	shutdownTelemetry = shutdown
	logger.Debug("tracing enabled")
	return nil
}

// teardown flushes buffered spans.
func teardown() {
	if shutdownTelemetry == nil {
		return
	}
	defer func() { shutdownTelemetry = nil }()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTelemetry(ctx); err != nil {
		logger.Warn("tracing shutdown failed", "error", err)
	}
}

// newLogger creates a leveled logger with the given prefix.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel,
	})
}

// tuiLogger writes to ~/.fifteen/fifteen.log, since stderr belongs to the
// full-screen UI while a game runs. The returned close func is never nil.
func tuiLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".fifteen")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "fifteen.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "fifteen"), func() { f.Close() }
}

// tuiTracer returns the tracer for game commands.
func tuiTracer() trace.Tracer {
	if shutdownTelemetry == nil {
		return telemetry.NoopTracer()
	}
	return telemetry.Tracer("tui")
}

// runtimeConfig sizes the screen from the terminal, defaulting to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}
