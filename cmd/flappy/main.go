// flappy is a fixed-timestep Flappy Bird for the terminal or a desktop window.
//
// Usage:
//
//	flappy play              - Play in the terminal (or --host window)
//	flappy replays           - Browse and replay recorded runs
//	flappy replay <id>       - Replay one recorded run
//	flappy hosts             - List available hosts
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Override the tick rate from the config
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.flappy/runs.db)
//	--config <path>     - Use a custom config YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination while the terminal host is active
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import hosts to register them
	_ "github.com/vovakirdan/tui-flappy/internal/platform/tui"
	_ "github.com/vovakirdan/tui-flappy/internal/platform/window"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - a fixed-timestep Flappy Bird",
	Long: `Flappy is a Flappy Bird clone with a deterministic simulation.
Every run is recorded and can be replayed tick for tick.

Available commands:
  play     - Play a game
  replays  - Browse recorded runs
  replay   - Replay a recorded run by ID
  hosts    - Show available hosts
  config   - Print configuration

Examples:
  flappy play
  flappy play --host window --seed 42
  flappy replays
  flappy replay 3
  flappy config --defaults > ~/.flappy/configs/flappy.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.flappy/flappy.log", "Log file used while the terminal host is active")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(hostsCmd)
	rootCmd.AddCommand(configCmd)
}
