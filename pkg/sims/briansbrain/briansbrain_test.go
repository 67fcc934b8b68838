package briansbrain

import (
	"testing"

	"immigration-ca/pkg/core"
)

func TestFiringCycle(t *testing.T) {
	r := Rule{}
	if got := r.Transition(stateOn, nil); got != stateDying {
		t.Fatalf("firing cell should become refractory, got %d", got)
	}
	if got := r.Transition(stateDying, []core.State{stateOn, stateOn}); got != stateDead {
		t.Fatalf("refractory cell should die, got %d", got)
	}
	if got := r.Transition(stateDead, []core.State{stateOn, stateOn, stateDying}); got != stateOn {
		t.Fatalf("dead cell with two firing neighbours should fire, got %d", got)
	}
	if got := r.Transition(stateDead, []core.State{stateOn, stateOn, stateOn}); got != stateDead {
		t.Fatalf("three firing neighbours should not ignite, got %d", got)
	}
}

func TestResetDeterministic(t *testing.T) {
	a, err := New(Config{Config: core.Config{Width: 32, Height: 32}, Density: 0.125})
	if err != nil {
		t.Fatal(err)
	}
	a.Reset(7)
	first := a.Grid().Snapshot()
	a.Step()
	a.Reset(7)
	if !first.Equal(a.Grid().Snapshot()) {
		t.Fatal("Reset with the same seed should reproduce the grid")
	}
	if a.Generation() != 0 {
		t.Fatalf("Reset should zero the generation, got %d", a.Generation())
	}
}

func TestFromMapDensity(t *testing.T) {
	cfg := FromMap(map[string]string{"w": "10", "h": "12", "density": "0.6"})
	if cfg.Width != 10 || cfg.Height != 12 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Density != 0.6 {
		t.Fatalf("density should be 0.6, got %v", cfg.Density)
	}
	if got := FromMap(map[string]string{"density": "2"}).Density; got != 0.125 {
		t.Fatalf("out-of-range density should keep the default, got %v", got)
	}
}

func TestRegisteredFactoryHonoursDensity(t *testing.T) {
	sim, err := core.NewSim("briansbrain", map[string]string{"w": "8", "h": "8", "density": "1"})
	if err != nil {
		t.Fatal(err)
	}
	sim.Reset(3)
	for i, s := range sim.Cells() {
		if s != stateOn {
			t.Fatalf("cell %d should fire at density 1, got %d", i, s)
		}
	}
}
