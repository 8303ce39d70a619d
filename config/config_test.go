package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/mazecar/physics"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mazecar.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, cfg.Sim.TickRate)
	assert.Equal(t, time.Second/30, cfg.Sim.TickInterval())
	assert.Equal(t, 300*time.Millisecond, cfg.Sim.TurnDuration)
	assert.Equal(t, time.Second, cfg.Sim.StartDelay)
	assert.True(t, cfg.Sim.HeadBob)
	assert.Equal(t, physics.DefaultBounceRule, cfg.Bounce.Rule())
	assert.Equal(t, 800.0, cfg.Arena.Width)
	assert.Equal(t, 600.0, cfg.Arena.Height)
	assert.Equal(t, -4.0, cfg.Car.VelocityX)
	assert.Equal(t, 0.0, cfg.Car.VelocityY)
	assert.Empty(t, cfg.Maze.Layout)
	assert.Equal(t, 15, cfg.Maze.Cols)
	assert.Equal(t, 11, cfg.Maze.Rows)
	assert.False(t, cfg.Audio.Enabled)
}

func TestDefaultMatchesLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, Default())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `
logLevel = "debug"

[sim]
tickRate = 60
turnDuration = "500ms"
seed = 42

[bounce]
narrowMin = 10
narrowMax = 20

[maze]
layout = "obstacle.txt"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 60, cfg.Sim.TickRate)
	assert.Equal(t, 500*time.Millisecond, cfg.Sim.TurnDuration)
	assert.Equal(t, uint64(42), cfg.Sim.Seed)
	assert.Equal(t, physics.AngleRange{Min: 10, Max: 20}, cfg.Bounce.Rule().Narrow)
	assert.Equal(t, physics.AngleRange{Min: 100, Max: 130}, cfg.Bounce.Rule().Wide)
	assert.Equal(t, "obstacle.txt", cfg.Maze.Layout)
	// Untouched keys keep defaults
	assert.Equal(t, time.Second, cfg.Sim.StartDelay)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MAZECAR_SIM_TICKRATE", "20")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Sim.TickRate)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/mazecar.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidRejected(t *testing.T) {
	path := writeConfig(t, `
[bounce]
wideMin = 140
wideMax = 130
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wideMin")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"tick rate", func(c *Config) { c.Sim.TickRate = 0 }, "tickRate"},
		{"negative turn", func(c *Config) { c.Sim.TurnDuration = -time.Second }, "turnDuration"},
		{"negative delay", func(c *Config) { c.Sim.StartDelay = -time.Second }, "startDelay"},
		{"narrow inverted", func(c *Config) { c.Bounce.NarrowMin = 90 }, "narrowMin"},
		{"arena", func(c *Config) { c.Arena.Width = 0 }, "arena size"},
		{"car", func(c *Config) { c.Car.Height = -1 }, "car size"},
		{"car too large", func(c *Config) { c.Car.Width = 1000 }, "does not fit"},
		{"grid", func(c *Config) { c.Maze.Cols = 2 }, "maze.cols"},
		{"braiding", func(c *Config) { c.Maze.Braiding = 1.5 }, "braiding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_GridIgnoredWithLayout(t *testing.T) {
	cfg := Default()
	cfg.Maze.Cols = 0
	cfg.Maze.Layout = "obstacle.txt"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_SampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "mazecar.toml"))
	require.NoError(t, err)

	assert.Equal(t, "layouts/obstacle.txt", cfg.Maze.Layout)
	assert.Equal(t, Default().Bounce, cfg.Bounce)
	assert.Equal(t, Default().Sim, cfg.Sim)
}
