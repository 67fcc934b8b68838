package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomatonResetAndStep(t *testing.T) {
	a, err := NewAutomaton(conway(), Config{Width: 24, Height: 24}, 0.4)
	require.NoError(t, err)
	a.Reset(10)
	seeded := a.Grid().Snapshot()
	assert.NotZero(t, seeded.Census()[1], "non-Seeder rules seed state 1")

	a.Step()
	a.Step()
	assert.Equal(t, uint64(2), a.Generation())

	a.Reset(10)
	assert.True(t, seeded.Equal(a.Grid().Snapshot()))
	assert.Zero(t, a.Generation())
}

func TestAutomatonDensityClamp(t *testing.T) {
	a, err := NewAutomaton(conway(), Config{Width: 4, Height: 4}, -1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.Density())
	a.SetDensity(3)
	assert.Equal(t, 1.0, a.Density())
	a.Reset(1)
	assert.Equal(t, 16, a.Grid().Census()[1])
}

func TestAutomatonLoad(t *testing.T) {
	a, err := NewAutomaton(conway(), Config{Width: 2, Height: 1}, 0)
	require.NoError(t, err)
	a.Step()
	gen, err := NewGeneration(Bounds{W: 2, H: 1}, []State{1, 1})
	require.NoError(t, err)
	require.NoError(t, a.Load(gen))
	assert.Equal(t, []State{1, 1}, a.Cells())
	assert.Zero(t, a.Generation())

	bad, err := NewGeneration(Bounds{W: 1, H: 1}, []State{1})
	require.NoError(t, err)
	assert.Error(t, a.Load(bad))
}

func TestRegistry(t *testing.T) {
	Register("stub-test", func(cfg map[string]string) (Sim, error) {
		return NewAutomaton(conway(), ParseConfig(cfg, Config{Width: 3, Height: 3}), 0)
	})
	sim, err := NewSim("stub-test", map[string]string{"w": "5", "h": "x"})
	require.NoError(t, err)
	assert.Equal(t, Size{W: 5, H: 3}, sim.Size())
	assert.Contains(t, SimNames(), "stub-test")

	_, err = NewSim("missing", nil)
	assert.Error(t, err)

	_, err = NewSim("stub-test", map[string]string{"w": "0"})
	assert.NoError(t, err, "invalid overrides fall back to defaults")
}

func TestParseConfig(t *testing.T) {
	base := Config{Width: 8, Height: 8, Workers: 2, StepsPerTick: 1}
	got := ParseConfig(map[string]string{"w": "16", "workers": "0", "batch": "-1"}, base)
	assert.Equal(t, Config{Width: 16, Height: 8, Workers: 0, StepsPerTick: 1}, got)
	assert.Equal(t, base, ParseConfig(nil, base))
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{{Name: "g", Params: []Parameter{FloatParam("density", "Density", 0.25)}}}}
	p, ok := snap.Lookup("density")
	require.True(t, ok)
	assert.Equal(t, "0.25", p.Value)
	_, ok = snap.Lookup("x")
	assert.False(t, ok)

	ctrl := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	assert.Equal(t, 1.0, ctrl.Clamp(2))
	assert.Equal(t, 0.0, ctrl.Clamp(-2))
}
