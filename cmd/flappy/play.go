package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/session"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagHost     string
	flagMusic    string
	flagNoMusic  bool
	flagNoRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing. The run is recorded unless --no-record is given.

Controls:
  Space/Up/W  - Flap (restart after game over)
  M           - Mute music
  Ctrl+S      - Save a text screenshot (terminal host)
  Q/Esc       - Quit

Examples:
  flappy play
  flappy play --host window
  flappy play --seed 42 --no-record
  flappy play --music ./theme.wav`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagHost, "host", "tui", "Host to play in (see 'flappy hosts')")
	playCmd.Flags().StringVar(&flagMusic, "music", "", "WAV file to loop instead of the built-in track")
	playCmd.Flags().BoolVar(&flagNoMusic, "no-music", false, "Disable background music")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save the run")
}

func runPlay(cmd *cobra.Command, args []string) error {
	host, err := registry.Create(flagHost)
	if err != nil {
		return fmt.Errorf("%w; run 'flappy hosts' to see available hosts", err)
	}

	logger, closeLog, err := newLogger(host.ID() == "tui")
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rt := runtimeConfig(cfg)

	game := flappy.New(cfg, rt.Seed)
	logger.Info("starting", "host", host.ID(), "seed", rt.Seed, "tick_rate", rt.TickRate)

	opts := session.Options{Logger: logger}
	if !flagNoRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			// Continue without recording - game still works
			logger.Warn("could not open runs database", "error", err)
		} else {
			defer store.Close()
			opts.Saver = store
		}
	}
	sess := session.New(game, opts)

	music := newMusic(cfg.Audio, logger)
	if music != nil {
		defer music.Close()
	}

	runErr := host.Run(sess, registry.Options{
		TickRate: rt.TickRate,
		Caption:  fmt.Sprintf("Flappy (seed %d)", rt.Seed),
		Music:    musicOrNil(music),
		Logger:   logger,
	})

	id := sess.Close()
	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}

	if id > 0 {
		fmt.Printf("Run saved as #%d. Replay it with 'flappy replay %d'.\n", id, id)
	}
	return nil
}

// loadConfig loads the config and applies the --fps override.
func loadConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	if flagFPS > 0 {
		cfg.Timing.TickRate = flagFPS
	}
	return cfg, nil
}

// runtimeConfig resolves the tick rate and seed for this process.
func runtimeConfig(cfg config.FlappyConfig) core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.TickRate = cfg.Timing.TickRate
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	return rt
}

// newMusic returns the background track, or nil when music is off.
func newMusic(cfg config.AudioConfig, logger *log.Logger) *audio.Music {
	if flagNoMusic || !cfg.Enabled {
		return nil
	}
	if flagMusic != "" {
		cfg.Path = flagMusic
	}

	m := audio.NewMusic(cfg)
	if err := m.Load(); err != nil {
		logger.Warn("music disabled", "error", err)
		return nil
	}
	return m
}

// musicOrNil avoids handing hosts a typed nil interface.
func musicOrNil(m *audio.Music) registry.Music {
	if m == nil {
		return nil
	}
	return m
}
