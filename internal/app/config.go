package app

import (
	"flag"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultTPS is the reference simulation tick rate.
	DefaultTPS = 10
	// DefaultWindowWidth and DefaultWindowHeight size the GUI window.
	DefaultWindowWidth  = 1200
	DefaultWindowHeight = 800
	// DefaultHUDWidth is the width of the parameter panel in pixels.
	DefaultHUDWidth = 220
)

// Config represents the host parameters for the application.
type Config struct {
	Sim          string  `yaml:"sim"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Scale        int     `yaml:"scale"`
	TPS          int     `yaml:"tps"`
	Seed         int64   `yaml:"seed"`
	Density      float64 `yaml:"density"`
	Workers      int     `yaml:"workers"`
	StepsPerTick int     `yaml:"steps_per_tick"`

	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// NewConfig returns a Config populated with the reference defaults.
func NewConfig() *Config {
	return &Config{
		Sim:          "immigration",
		Width:        128,
		Height:       128,
		Scale:        4,
		TPS:          DefaultTPS,
		Seed:         42,
		Density:      0.25,
		StepsPerTick: 1,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel size of one cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.Float64Var(&c.Density, "density", c.Density, "probability that a cell starts alive")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per generation (0 = GOMAXPROCS)")
	fs.IntVar(&c.StepsPerTick, "batch", c.StepsPerTick, "generations per tick")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// LoadFile overlays values from a YAML file onto c. Keys missing from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parsing config %s", path)
	}
	return nil
}

// Validate rejects configurations no simulation can start from.
func (c *Config) Validate() error {
	switch {
	case c.Sim == "":
		return errors.New("sim must be set")
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("grid dimensions must be positive, got %dx%d", c.Width, c.Height)
	case c.Scale <= 0:
		return errors.Errorf("scale must be positive, got %d", c.Scale)
	case c.TPS <= 0:
		return errors.Errorf("tps must be positive, got %d", c.TPS)
	case c.Density < 0 || c.Density > 1:
		return errors.Errorf("density must be within [0,1], got %v", c.Density)
	case c.Workers < 0:
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	case c.StepsPerTick <= 0:
		return errors.Errorf("steps per tick must be positive, got %d", c.StepsPerTick)
	}
	return nil
}

// SimOptions renders the simulation-facing fields in the string-map form the
// sim factories accept.
func (c *Config) SimOptions() map[string]string {
	return map[string]string{
		"w":       strconv.Itoa(c.Width),
		"h":       strconv.Itoa(c.Height),
		"density": strconv.FormatFloat(c.Density, 'f', -1, 64),
		"workers": strconv.Itoa(c.Workers),
		"batch":   strconv.Itoa(c.StepsPerTick),
	}
}
