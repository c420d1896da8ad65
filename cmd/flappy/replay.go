package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/session"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagReplayHost string

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a recorded run",
	Long: `Play back a recorded run tick for tick. Input is ignored; Q quits.

Examples:
  flappy replay 3
  flappy replay 3 --host window`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayHost, "host", "tui", "Host to replay in (see 'flappy hosts')")
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	host, err := registry.Create(flagReplayHost)
	if err != nil {
		return fmt.Errorf("%w; run 'flappy hosts' to see available hosts", err)
	}

	logger, closeLog, err := newLogger(host.ID() == "tui")
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening runs database: %w", err)
	}
	defer store.Close()

	return playBack(store, id, host, logger)
}

// playBack loads run id and shows it in host.
func playBack(store *storage.Store, id int64, host registry.Host, logger *log.Logger) error {
	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with id %d; run 'flappy replays' to list runs", id)
	}

	replay, err := session.NewReplay(run)
	if err != nil {
		return err
	}

	logger.Info("replaying", "id", id, "seed", run.Seed, "ticks", run.Ticks, "events", len(run.Events))

	tickRate := run.TickRate
	if flagFPS > 0 {
		tickRate = flagFPS
	}
	return host.Run(replay, registry.Options{
		TickRate: tickRate,
		Caption:  fmt.Sprintf("Replay #%d (seed %d)", id, run.Seed),
		Logger:   logger,
	})
}
