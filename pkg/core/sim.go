package core

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []State
	Generation() uint64
	Rule() Rule
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames lists registered simulations in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSim looks up name in the registry and builds it from cfg.
func NewSim(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, errors.Errorf("unknown sim %q (available: %v)", name, SimNames())
	}
	sim, err := f(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "building sim %q", name)
	}
	return sim, nil
}

// ParseConfig overlays the shared keys w, h, workers and batch from a
// flag-style map onto base. Unparseable or out-of-range values are ignored.
func ParseConfig(cfg map[string]string, base Config) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["batch"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.StepsPerTick = parsed
		}
	}
	return c
}

// Automaton binds a Grid, a Rule and a Scheduler into a runnable Sim.
type Automaton struct {
	rule    Rule
	grid    *Grid
	sched   *Scheduler
	density float64
}

// NewAutomaton allocates an all-Dead automaton. Call Reset to seed it.
func NewAutomaton(rule Rule, cfg Config, density float64) (*Automaton, error) {
	if rule == nil {
		return nil, errors.New("automaton requires a rule")
	}
	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	a := &Automaton{rule: rule, grid: grid, sched: NewScheduler(rule, cfg)}
	a.SetDensity(density)
	return a, nil
}

// Name returns the rule name.
func (a *Automaton) Name() string { return a.rule.Name() }

// Size returns the grid dimensions.
func (a *Automaton) Size() Size {
	b := a.grid.Bounds()
	return Size{W: b.W, H: b.H}
}

// Rule returns the transition rule.
func (a *Automaton) Rule() Rule { return a.rule }

// Grid exposes the underlying grid.
func (a *Automaton) Grid() *Grid { return a.grid }

// Scheduler exposes the scheduler for batching and observer control.
func (a *Automaton) Scheduler() *Scheduler { return a.sched }

// Cells exposes the current generation in row-major order.
func (a *Automaton) Cells() []State { return a.grid.Cells() }

// Generation returns the number of generations since the last Reset.
func (a *Automaton) Generation() uint64 { return a.sched.Generation() }

// Density returns the seeding probability used by Reset.
func (a *Automaton) Density() float64 { return a.density }

// SetDensity clamps p to [0,1] and stores it for the next Reset.
func (a *Automaton) SetDensity(p float64) {
	a.density = min(max(p, 0), 1)
}

// Reset reseeds every cell from a deterministic RNG. Rules that implement
// Seeder choose the live state; others use state 1.
func (a *Automaton) Reset(seed int64) {
	rng := NewRNG(seed)
	seeder, hasSeeder := a.rule.(Seeder)
	a.grid.Fill(func(Coord) State {
		if hasSeeder {
			return seeder.Seed(rng, a.density)
		}
		if rng.Chance(a.density) {
			return 1
		}
		return Dead
	})
	a.sched.ResetGeneration()
}

// Load replaces the current generation with a snapshot of the same size.
func (a *Automaton) Load(gen Generation) error {
	if err := a.grid.ReplaceAll(gen); err != nil {
		return errors.Wrap(err, "loading snapshot")
	}
	a.sched.ResetGeneration()
	return nil
}

// Step advances the simulation by one scheduler tick.
func (a *Automaton) Step() { a.sched.Step(a.grid) }
