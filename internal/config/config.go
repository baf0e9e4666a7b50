// Package config loads dungeonforge configuration from a YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory
// when no --config flag is given.
const DefaultFile = "dungeonforge.yaml"

// Config holds all dungeonforge configuration.
type Config struct {
	Dungeon   DungeonConfig   `yaml:"dungeon"`
	Solver    SolverConfig    `yaml:"solver"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DungeonConfig shapes the generated floors.
type DungeonConfig struct {
	Rooms    int `yaml:"rooms"`
	GridSize int `yaml:"grid_size"`
	MinGap   int `yaml:"min_gap"`
}

// SolverConfig configures the external ASP solver.
type SolverConfig struct {
	// Binary is the solver executable, resolved through PATH.
	Binary string `yaml:"binary"`
	// Timeout is the hard deadline per solver call, e.g. "10s".
	Timeout string `yaml:"timeout"`
	// MaxAttempts bounds the reseeded retries on unsatisfiable runs.
	MaxAttempts int `yaml:"max_attempts"`
	// RandFreq is the solver's random decision frequency (0..1].
	RandFreq float64 `yaml:"rand_freq"`
}

// TimeoutDuration parses the solver timeout, falling back to 10s.
func (s SolverConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// File enables rotating file output when set.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// TelemetryConfig gates the OpenTelemetry exporter.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dungeon: DungeonConfig{
			Rooms:    7,
			GridSize: 4,
			MinGap:   2,
		},
		Solver: SolverConfig{
			Binary:      "clingo",
			Timeout:     "10s",
			MaxAttempts: 3,
			RandFreq:    0.5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Load reads the config file at path, or DefaultFile if path is empty
// and the file exists; otherwise the defaults are used. Environment
// variables override file values afterwards.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Environment overrides, all prefixed DUNGEONFORGE_.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DUNGEONFORGE_ROOMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Dungeon.Rooms = n
		}
	}
	if v := os.Getenv("DUNGEONFORGE_GRID_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Dungeon.GridSize = n
		}
	}
	if v := os.Getenv("DUNGEONFORGE_MIN_GAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Dungeon.MinGap = n
		}
	}
	if v := os.Getenv("DUNGEONFORGE_SOLVER_BINARY"); v != "" {
		cfg.Solver.Binary = v
	}
	if v := os.Getenv("DUNGEONFORGE_SOLVER_TIMEOUT"); v != "" {
		cfg.Solver.Timeout = v
	}
	if v := os.Getenv("DUNGEONFORGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DUNGEONFORGE_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("DUNGEONFORGE_TELEMETRY"); v != "" {
		cfg.Telemetry.Enabled = v == "1" || v == "true"
	}
}

func (c Config) validate() error {
	if c.Dungeon.Rooms <= 0 {
		return fmt.Errorf("dungeon.rooms must be positive, got %d", c.Dungeon.Rooms)
	}
	if c.Dungeon.GridSize <= 0 {
		return fmt.Errorf("dungeon.grid_size must be positive, got %d", c.Dungeon.GridSize)
	}
	if c.Dungeon.Rooms > c.Dungeon.GridSize*c.Dungeon.GridSize {
		return fmt.Errorf("dungeon.rooms (%d) cannot exceed grid capacity (%d)",
			c.Dungeon.Rooms, c.Dungeon.GridSize*c.Dungeon.GridSize)
	}
	if c.Dungeon.MinGap < 0 {
		return fmt.Errorf("dungeon.min_gap must not be negative, got %d", c.Dungeon.MinGap)
	}
	if c.Solver.RandFreq < 0 || c.Solver.RandFreq > 1 {
		return fmt.Errorf("solver.rand_freq must be in [0, 1], got %g", c.Solver.RandFreq)
	}
	return nil
}
