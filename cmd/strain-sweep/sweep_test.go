package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immigration-ca/internal/logging"
	"immigration-ca/pkg/sims/immigration"
)

func TestDominant(t *testing.T) {
	assert.Equal(t, 2, dominant([immigration.Strains + 1]int{0, 3, 7, 1}))
	assert.Equal(t, 0, dominant([immigration.Strains + 1]int{10, 0, 0, 0}))
	assert.Equal(t, 0, dominant([immigration.Strains + 1]int{0, 4, 4, 1}))
}

func TestValidate(t *testing.T) {
	ok := sweepOptions{Width: 8, Height: 8, Steps: 1, Workers: 1, Densities: []float64{0.5}, Seeds: []int64{1}}
	require.NoError(t, ok.validate())

	bad := ok
	bad.Densities = []float64{1.5}
	assert.Error(t, bad.validate())

	bad = ok
	bad.Seeds = nil
	assert.Error(t, bad.validate())

	bad = ok
	bad.Width = 0
	assert.Error(t, bad.validate())
}

func TestEmptyWorldSettlesImmediately(t *testing.T) {
	opts := sweepOptions{Width: 6, Height: 6, Steps: 10, Workers: 1}
	res, err := runScenario(opts, scenario{density: 0, seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.settledAt)
	assert.Equal(t, 0, res.extinctAt)
	assert.Equal(t, 1, res.steps)
	assert.Equal(t, 0, res.population())
	assert.Equal(t, 0, res.dominant)
}

func TestSweepRunsEveryScenario(t *testing.T) {
	opts := sweepOptions{Width: 16, Height: 16, Steps: 20, Workers: 3,
		Densities: []float64{0, 0.3}, Seeds: []int64{1, 2, 3}}
	results, err := sweep(opts, opts.scenarios(), logging.Discard())
	require.NoError(t, err)
	assert.Len(t, results, 6)
	for _, res := range results {
		assert.LessOrEqual(t, res.steps, opts.Steps)
		if res.scenario.density == 0 {
			assert.Zero(t, res.population())
		}
	}
}

func TestScenarioIsDeterministic(t *testing.T) {
	opts := sweepOptions{Width: 20, Height: 20, Steps: 15, Workers: 1}
	a, err := runScenario(opts, scenario{density: 0.3, seed: 9})
	require.NoError(t, err)
	b, err := runScenario(opts, scenario{density: 0.3, seed: 9})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
