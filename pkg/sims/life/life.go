package life

import (
	"image/color"
	"strconv"

	"immigration-ca/pkg/core"
)

// Alive is the single live state.
const Alive core.State = 1

// Rule implements Conway's Game of Life (B3/S23) on a bounded grid.
type Rule struct{}

// Name returns the simulation identifier.
func (Rule) Name() string { return "life" }

// States returns Dead and Alive.
func (Rule) States() int { return 2 }

// Transition applies B3/S23.
func (Rule) Transition(current core.State, neighbors []core.State) core.State {
	alive := 0
	for _, n := range neighbors {
		if n != core.Dead {
			alive++
		}
	}
	if alive == 3 || (current != core.Dead && alive == 2) {
		return Alive
	}
	return core.Dead
}

// ColorOf draws live cells black on the background.
func (Rule) ColorOf(s core.State) (color.RGBA, bool) {
	if s == core.Dead {
		return color.RGBA{}, false
	}
	return color.RGBA{R: 20, G: 20, B: 20, A: 255}, true
}

// Config controls the Life simulation.
type Config struct {
	core.Config
	Density float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Config: core.Config{Width: 256, Height: 256, StepsPerTick: 1}, Density: 0.5}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Config = core.ParseConfig(cfg, c.Config)
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}

// New returns a Life automaton with the provided configuration.
func New(cfg Config) (*core.Automaton, error) {
	return core.NewAutomaton(Rule{}, cfg.Config, cfg.Density)
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
