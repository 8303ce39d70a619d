// Package config loads runtime settings from an optional TOML file
// Every key has a default, so a missing file yields the stock simulation
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/lixenwraith/mazecar/parameter"
	"github.com/lixenwraith/mazecar/physics"
)

// EnvPrefix scopes environment overrides, e.g. MAZECAR_SIM_SEED
const EnvPrefix = "MAZECAR"

type Config struct {
	LogLevel string       `mapstructure:"logLevel"`
	Sim      SimConfig    `mapstructure:"sim"`
	Bounce   BounceConfig `mapstructure:"bounce"`
	Arena    ArenaConfig  `mapstructure:"arena"`
	Car      CarConfig    `mapstructure:"car"`
	Maze     MazeConfig   `mapstructure:"maze"`
	Audio    AudioConfig  `mapstructure:"audio"`
}

type SimConfig struct {
	TickRate     int           `mapstructure:"tickRate"`
	TurnDuration time.Duration `mapstructure:"turnDuration"`
	StartDelay   time.Duration `mapstructure:"startDelay"`
	Seed         uint64        `mapstructure:"seed"`
	HeadBob      bool          `mapstructure:"headBob"`
}

// TickInterval converts the tick rate to a period
func (s SimConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}

type BounceConfig struct {
	WideMin   int `mapstructure:"wideMin"`
	WideMax   int `mapstructure:"wideMax"`
	NarrowMin int `mapstructure:"narrowMin"`
	NarrowMax int `mapstructure:"narrowMax"`
}

// Rule converts the configured ranges to a bounce rule
func (b BounceConfig) Rule() physics.BounceRule {
	return physics.BounceRule{
		Wide:   physics.AngleRange{Min: b.WideMin, Max: b.WideMax},
		Narrow: physics.AngleRange{Min: b.NarrowMin, Max: b.NarrowMax},
	}
}

type ArenaConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

type CarConfig struct {
	Width     float64 `mapstructure:"width"`
	Height    float64 `mapstructure:"height"`
	VelocityX float64 `mapstructure:"velocityX"`
	VelocityY float64 `mapstructure:"velocityY"`
}

// MazeConfig selects the obstacle source: Layout wins when set,
// otherwise a grid of Cols x Rows is generated
type MazeConfig struct {
	Layout   string  `mapstructure:"layout"`
	Cols     int     `mapstructure:"cols"`
	Rows     int     `mapstructure:"rows"`
	Braiding float64 `mapstructure:"braiding"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("sim.tickRate", parameter.TickRate)
	v.SetDefault("sim.turnDuration", parameter.TurnDuration.String())
	v.SetDefault("sim.startDelay", parameter.StartDelay.String())
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.headBob", true)

	v.SetDefault("bounce.wideMin", parameter.BounceWideMin)
	v.SetDefault("bounce.wideMax", parameter.BounceWideMax)
	v.SetDefault("bounce.narrowMin", parameter.BounceNarrowMin)
	v.SetDefault("bounce.narrowMax", parameter.BounceNarrowMax)

	v.SetDefault("arena.width", parameter.ArenaWidth)
	v.SetDefault("arena.height", parameter.ArenaHeight)

	v.SetDefault("car.width", parameter.CarWidth)
	v.SetDefault("car.height", parameter.CarHeight)
	v.SetDefault("car.velocityX", parameter.CarStartVelocityX)
	v.SetDefault("car.velocityY", parameter.CarStartVelocityY)

	v.SetDefault("maze.layout", "")
	v.SetDefault("maze.cols", parameter.GeneratedCols)
	v.SetDefault("maze.rows", parameter.GeneratedRows)
	v.SetDefault("maze.braiding", parameter.GeneratedBraiding)

	v.SetDefault("audio.enabled", false)
}

// Default returns the configuration with no file and no environment
func Default() *Config {
	cfg, err := load(viper.New(), "")
	if err != nil {
		// Defaults are constants; failure here is a programming error
		panic(err)
	}
	return cfg
}

// Load reads path (TOML) over the defaults. An empty path skips the file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return load(v, path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the simulation cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Sim.TickRate <= 0:
		return errors.Errorf("sim.tickRate must be positive, got %d", c.Sim.TickRate)
	case c.Sim.TurnDuration < 0:
		return errors.Errorf("sim.turnDuration must not be negative, got %s", c.Sim.TurnDuration)
	case c.Sim.StartDelay < 0:
		return errors.Errorf("sim.startDelay must not be negative, got %s", c.Sim.StartDelay)
	case c.Bounce.WideMin > c.Bounce.WideMax:
		return errors.Errorf("bounce.wideMin %d exceeds bounce.wideMax %d", c.Bounce.WideMin, c.Bounce.WideMax)
	case c.Bounce.NarrowMin > c.Bounce.NarrowMax:
		return errors.Errorf("bounce.narrowMin %d exceeds bounce.narrowMax %d", c.Bounce.NarrowMin, c.Bounce.NarrowMax)
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return errors.Errorf("arena size must be positive, got %gx%g", c.Arena.Width, c.Arena.Height)
	case c.Car.Width <= 0 || c.Car.Height <= 0:
		return errors.Errorf("car size must be positive, got %gx%g", c.Car.Width, c.Car.Height)
	case c.Car.Width > c.Arena.Width || c.Car.Height > c.Arena.Height:
		return errors.New("car does not fit in the arena")
	case c.Maze.Layout == "" && (c.Maze.Cols < 3 || c.Maze.Rows < 3):
		return errors.Errorf("maze.cols and maze.rows must be at least 3, got %dx%d", c.Maze.Cols, c.Maze.Rows)
	case c.Maze.Braiding < 0 || c.Maze.Braiding > 1:
		return errors.Errorf("maze.braiding must be within [0,1], got %g", c.Maze.Braiding)
	}
	return nil
}
