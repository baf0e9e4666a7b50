// Package main is the dungeonforge command line interface.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeonforge/internal/config"
	"github.com/samdwyer/dungeonforge/internal/dungeon"
	"github.com/samdwyer/dungeonforge/internal/logging"
	"github.com/samdwyer/dungeonforge/internal/solver"
	"github.com/samdwyer/dungeonforge/internal/telemetry"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	// Per-run generation overrides shared by the subcommands. Zero
	// means "use the configured value".
	flagRooms int
	flagGrid  int
	flagGap   int
	flagSeed  int64

	cfg               config.Config
	logger            *zap.Logger
	telemetryShutdown func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "dungeonforge",
	Short: "Roguelike dungeon generator backed by an ASP solver",
	Long: `dungeonforge generates roguelike dungeon layouts by delegating the
combinatorial search (room topology, adjacency, reachability, content
distribution) to the clingo answer set solver, then turns the answer
atoms into a room graph, a tile grid, and renderings.

A clingo binary must be available on PATH (or set solver.binary in the
config file).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional and only used for local development, e.g.
		// OTEL exporter credentials.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if cfg.Telemetry.Enabled {
			shutdown, err := telemetry.Setup(cmd.Context())
			if err != nil {
				logger.Warn("telemetry setup failed, continuing without it", zap.Error(err))
			} else {
				telemetryShutdown = shutdown
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if telemetryShutdown != nil {
			if err := telemetryShutdown(cmd.Context()); err != nil && logger != nil {
				logger.Warn("telemetry shutdown failed", zap.Error(err))
			}
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&flagRooms, "rooms", 0, "number of rooms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagGrid, "grid", 0, "coarse grid size (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagGap, "gap", 0, "minimum gap between rooms (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "solver seed (0 picks a random one)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(viewCmd)
}

// newPipeline builds the full generation pipeline over a clingo runner.
func newPipeline() (*dungeon.Generator, error) {
	runner := solver.NewClingo(cfg.Solver.Binary, logger)
	return dungeon.NewGenerator(runner, logger)
}

// pipelineParams merges config values with command line overrides.
func pipelineParams() dungeon.Params {
	p := dungeon.Params{
		Rooms:         cfg.Dungeon.Rooms,
		GridSize:      cfg.Dungeon.GridSize,
		MinGap:        cfg.Dungeon.MinGap,
		Seed:          flagSeed,
		RandFreq:      cfg.Solver.RandFreq,
		MaxAttempts:   cfg.Solver.MaxAttempts,
		SolverTimeout: cfg.Solver.TimeoutDuration(),
	}
	if flagRooms > 0 {
		p.Rooms = flagRooms
	}
	if flagGrid > 0 {
		p.GridSize = flagGrid
	}
	if flagGap > 0 {
		p.MinGap = flagGap
	}
	return p
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
