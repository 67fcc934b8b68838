package briansbrain

import (
	"image/color"
	"strconv"

	"immigration-ca/pkg/core"
)

const (
	stateDead  = core.Dead
	stateOn    = core.State(1)
	stateDying = core.State(2)
)

// Rule implements Brian's Brain: firing cells become refractory, refractory
// cells die, and dead cells fire with exactly two firing neighbours.
type Rule struct{}

// Name identifies the simulation.
func (Rule) Name() string { return "briansbrain" }

// States returns dead, firing and refractory.
func (Rule) States() int { return 3 }

// Transition advances one cell by one tick.
func (Rule) Transition(current core.State, neighbors []core.State) core.State {
	switch current {
	case stateOn:
		return stateDying
	case stateDying:
		return stateDead
	}
	firing := 0
	for _, n := range neighbors {
		if n == stateOn {
			firing++
		}
	}
	if firing == 2 {
		return stateOn
	}
	return stateDead
}

// ColorOf draws firing cells white and refractory cells blue.
func (Rule) ColorOf(s core.State) (color.RGBA, bool) {
	switch s {
	case stateOn:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}, true
	case stateDying:
		return color.RGBA{R: 60, G: 90, B: 200, A: 255}, true
	}
	return color.RGBA{}, false
}

// Seed fires roughly density of the cells; the rest start dead.
func (Rule) Seed(rng *core.RNG, density float64) core.State {
	if rng.Chance(density) {
		return stateOn
	}
	return stateDead
}

// Config holds the grid settings plus the initial firing density.
type Config struct {
	core.Config
	Density float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Config: core.Config{Width: 256, Height: 256, StepsPerTick: 1}, Density: 0.125}
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

// New creates a Brain automaton from cfg.
func New(cfg Config) (*core.Automaton, error) {
	return core.NewAutomaton(Rule{}, cfg.Config, cfg.Density)
}

func init() {
	core.Register("briansbrain", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
