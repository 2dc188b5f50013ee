package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fifteen/internal/games/fifteen"
	"github.com/vovakirdan/tui-fifteen/internal/platform/tui"
	"github.com/vovakirdan/tui-fifteen/internal/registry"
	"github.com/vovakirdan/tui-fifteen/internal/storage"
)

var (
	flagClear  bool
	flagTable  bool
	flagRecent int
)

var resultsCmd = &cobra.Command{
	Use:   "results [game]",
	Short: "Show best results",
	Long: `Display the 10 best solves (fewest moves, then fastest) for a puzzle
variant. Without a game ID, a summary of every variant is printed.

Examples:
  fifteen results
  fifteen results fifteen
  fifteen results --recent 5
  fifteen results fifteen_shuffled --tui
  fifteen results fifteen --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete stored results for the game")
	resultsCmd.Flags().BoolVar(&flagTable, "tui", false, "Browse results in an interactive table")
	resultsCmd.Flags().IntVar(&flagRecent, "recent", 0, "List the N latest solves across all variants")
}

func runResults(cmd *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q (run 'fifteen list' to see available games)", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	switch {
	case flagClear:
		if gameID == "" {
			return errors.New("--clear needs a game ID")
		}
		if err := store.ClearResults(gameID); err != nil {
			return err
		}
		logger.Info("results cleared", "game", gameID)
		return nil

	case flagTable:
		cfg := runtimeConfig()
		_, err := tui.RunResults(store, gameID, cfg.ScreenW, cfg.ScreenH)
		return err

	case flagRecent > 0:
		return printRecent(out, store, flagRecent)

	case gameID == "":
		return printSummary(out, store)

	default:
		return printTop(out, store, gameID)
	}
}

func gameTitle(gameID string) string {
	if info, ok := registry.Info(gameID); ok {
		return info.Title
	}
	return gameID
}

func printTop(w io.Writer, store *storage.Store, gameID string) error {
	results, err := store.TopResults(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Best Results - %s\n\n", gameTitle(gameID))

	if len(results) == 0 {
		fmt.Fprintln(w, "No results recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'fifteen play %s' to set the first one!\n", gameID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-6s  %-6s  %s\n", "Rank", "Moves", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-6s  %s\n", "----", "-----", "----", "----")

	for i, r := range results {
		fmt.Fprintf(w, "  %-4d  %-6d  %-6s  %s\n", i+1, r.Moves, clock(r.Duration), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	if best, ok, err := store.BestResult(gameID); err == nil && ok {
		fmt.Fprintf(w, "Best: %d moves\n", best)
	}
	return nil
}

func printRecent(w io.Writer, store *storage.Store, limit int) error {
	results, err := store.RecentResults(limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Recent Solves\n\n")

	if len(results) == 0 {
		fmt.Fprintln(w, "No results recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-18s  %-6s  %-6s  %s\n", "Game", "Moves", "Time", "Date")
	fmt.Fprintf(w, "  %-18s  %-6s  %-6s  %s\n", "----", "-----", "----", "----")
	for _, r := range results {
		fmt.Fprintf(w, "  %-18s  %-6d  %-6s  %s\n", gameTitle(r.GameID), r.Moves, clock(r.Duration), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSummary(w io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Fprintln(w, "No results recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'fifteen play %s' to set the first one!\n", fifteen.IDClassic)
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "  %-18s  %-6s  %-10s  %-9s  %s\n", "Game", "Solved", "Best moves", "Best time", "Last played")
	fmt.Fprintf(w, "  %-18s  %-6s  %-10s  %-9s  %s\n", "----", "------", "----------", "---------", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Fprintf(w, "  %-18s  %-6d  %-10d  %-9s  %s\n",
			id, s.Solved, s.BestMoves, clock(s.BestTime), s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// clock formats a duration as m:ss.
func clock(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
