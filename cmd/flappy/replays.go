package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagReplaysList bool

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded runs",
	Long: `Open the run browser. Enter replays the selected run in the terminal,
d deletes it. With --list, or when stdout is not a terminal, prints the runs.

Examples:
  flappy replays
  flappy replays --list`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagReplaysList, "list", false, "Print runs instead of opening the browser")
}

func runReplays(cmd *cobra.Command, args []string) error {
	interactive := !flagReplaysList && term.IsTerminal(int(os.Stdout.Fd()))

	logger, closeLog, err := newLogger(interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening runs database: %w", err)
	}
	defer store.Close()

	if !interactive {
		return printRuns(store)
	}

	host, err := registry.Create("tui")
	if err != nil {
		return err
	}

	// Browser and replay alternate until the user quits the browser
	for {
		id, err := tui.RunBrowser(store)
		if err != nil {
			return err
		}
		if id == 0 {
			return nil
		}
		if err := playBack(store, id, host, logger); err != nil {
			logger.Error("replay failed", "id", id, "error", err)
		}
	}
}

func printRuns(store *storage.Store) error {
	runs, err := store.Runs(20)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Println("Recorded runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-6s  %-16s  %-8s  %-8s  %s\n", "ID", "Date", "Ticks", "Episodes", "Seed")
	fmt.Printf("  %-6s  %-16s  %-8s  %-8s  %s\n", "--", "----", "-----", "--------", "----")

	for _, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-6d  %-16s  %-8d  %-8d  %d\n", r.ID, dateStr, r.Ticks, r.Episodes, r.Seed)
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Total: %d runs, %d episodes, %d ticks\n", stats.Runs, stats.Episodes, stats.Ticks)
	}
	return nil
}
