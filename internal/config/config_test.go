package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 7, cfg.Dungeon.Rooms)
	assert.Equal(t, 4, cfg.Dungeon.GridSize)
	assert.Equal(t, 2, cfg.Dungeon.MinGap)
	assert.Equal(t, "clingo", cfg.Solver.Binary)
	assert.Equal(t, 10*time.Second, cfg.Solver.TimeoutDuration())
	assert.Equal(t, 3, cfg.Solver.MaxAttempts)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.NoError(t, cfg.validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := `
dungeon:
  rooms: 9
  grid_size: 5
solver:
  binary: /opt/clingo/bin/clingo
  timeout: 30s
logging:
  level: debug
telemetry:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Dungeon.Rooms)
	assert.Equal(t, 5, cfg.Dungeon.GridSize)
	assert.Equal(t, 2, cfg.Dungeon.MinGap, "unset keys keep their defaults")
	assert.Equal(t, "/opt/clingo/bin/clingo", cfg.Solver.Binary)
	assert.Equal(t, 30*time.Second, cfg.Solver.TimeoutDuration())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DUNGEONFORGE_ROOMS", "12")
	t.Setenv("DUNGEONFORGE_GRID_SIZE", "6")
	t.Setenv("DUNGEONFORGE_SOLVER_BINARY", "clingo-5.6")
	t.Setenv("DUNGEONFORGE_SOLVER_TIMEOUT", "1m")
	t.Setenv("DUNGEONFORGE_LOG_LEVEL", "warn")
	t.Setenv("DUNGEONFORGE_TELEMETRY", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Dungeon.Rooms)
	assert.Equal(t, 6, cfg.Dungeon.GridSize)
	assert.Equal(t, "clingo-5.6", cfg.Solver.Binary)
	assert.Equal(t, time.Minute, cfg.Solver.TimeoutDuration())
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero rooms", func(c *Config) { c.Dungeon.Rooms = 0 }, "rooms"},
		{"zero grid", func(c *Config) { c.Dungeon.GridSize = 0 }, "grid_size"},
		{"rooms beyond capacity", func(c *Config) { c.Dungeon.Rooms = 17; c.Dungeon.GridSize = 4 }, "grid capacity"},
		{"negative gap", func(c *Config) { c.Dungeon.MinGap = -1 }, "min_gap"},
		{"rand freq out of range", func(c *Config) { c.Solver.RandFreq = 1.5 }, "rand_freq"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTimeoutDurationFallback(t *testing.T) {
	assert.Equal(t, 10*time.Second, SolverConfig{Timeout: "garbage"}.TimeoutDuration())
	assert.Equal(t, 10*time.Second, SolverConfig{Timeout: "-5s"}.TimeoutDuration())
	assert.Equal(t, 10*time.Second, SolverConfig{}.TimeoutDuration())
}
