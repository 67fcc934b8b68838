package immigration

import (
	"strconv"

	"immigration-ca/pkg/core"
)

// Config controls the Immigration simulation.
type Config struct {
	core.Config

	// Density is the probability that a cell starts alive.
	Density float64
}

// DefaultConfig returns the reference configuration: a 128x128 grid seeded
// at 25% density.
func DefaultConfig() Config {
	return Config{
		Config:  core.Config{Width: 128, Height: 128, StepsPerTick: 1},
		Density: 0.25,
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Config = core.ParseConfig(cfg, c.Config)
	if cfg == nil {
		return c
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}
