package immigration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immigration-ca/pkg/core"
)

var (
	dead = core.Dead
	s1   = Alive(1)
	s2   = Alive(2)
	s3   = Alive(3)
)

func states(live ...core.State) []core.State {
	out := append([]core.State(nil), live...)
	for len(out) < 8 {
		out = append(out, dead)
	}
	return out
}

func TestTransitionAllDeadNeighbors(t *testing.T) {
	r := Rule{}
	for _, cur := range []core.State{dead, s1, s2, s3} {
		assert.Equal(t, dead, r.Transition(cur, states()), "current %d", cur)
		assert.Equal(t, dead, r.Transition(cur, []core.State{dead, dead, dead}), "corner, current %d", cur)
	}
}

func TestTransitionSurvivalKeepsStrain(t *testing.T) {
	r := Rule{}
	for _, cur := range []core.State{s1, s2, s3} {
		assert.Equal(t, cur, r.Transition(cur, states(s3, s3)), "two neighbours")
		assert.Equal(t, cur, r.Transition(cur, states(s1, s2, s2)), "three neighbours")
	}
}

func TestTransitionDeath(t *testing.T) {
	r := Rule{}
	for alive := 0; alive <= 8; alive++ {
		if alive == 2 || alive == 3 {
			continue
		}
		live := make([]core.State, alive)
		for i := range live {
			live[i] = s1
		}
		assert.Equal(t, dead, r.Transition(s2, states(live...)), "alive=%d", alive)
	}
}

func TestTransitionBirth(t *testing.T) {
	r := Rule{}
	tests := []struct {
		name string
		live []core.State
		want core.State
	}{
		{"majority one", []core.State{s1, s1, s2}, s1},
		{"majority two", []core.State{s3, s2, s2}, s2},
		{"unanimous three", []core.State{s3, s3, s3}, s3},
		{"tie goes to lowest", []core.State{s3, s2, s1}, s1},
		{"tie ignores order", []core.State{s2, s3, s1}, s1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Transition(dead, states(tt.live...)))
		})
	}
}

func TestTransitionNoBirthWithoutThree(t *testing.T) {
	r := Rule{}
	for _, live := range [][]core.State{{}, {s1}, {s1, s2}, {s1, s2, s3, s1}, {s1, s1, s1, s1, s1}} {
		assert.Equal(t, dead, r.Transition(dead, states(live...)), "live=%v", live)
	}
}

func TestScenarios(t *testing.T) {
	r := Rule{}
	// A: dead cell with parents 1,1,2 is born as strain 1.
	assert.Equal(t, s1, r.Transition(dead, states(s1, s1, s2)))
	// B: strain 2 with one neighbour dies.
	assert.Equal(t, dead, r.Transition(s2, states(s1)))
	// C: strain 3 with three neighbours survives unchanged.
	assert.Equal(t, s3, r.Transition(s3, states(s1, s2, s1)))
}

func TestAliveRejectsBadStrain(t *testing.T) {
	assert.Panics(t, func() { Alive(0) })
	assert.Panics(t, func() { Alive(4) })
	assert.Panics(t, func() { Rule{}.Transition(core.State(7), nil) })
	assert.NotPanics(t, func() { Alive(3) })
}

func TestStrainOf(t *testing.T) {
	_, ok := StrainOf(dead)
	assert.False(t, ok)
	s, ok := StrainOf(s2)
	require.True(t, ok)
	assert.Equal(t, 2, s)
}

func TestColorOf(t *testing.T) {
	r := Rule{}
	_, drawn := r.ColorOf(dead)
	assert.False(t, drawn, "dead cells are background")

	seen := map[[4]uint8]bool{}
	for _, s := range []core.State{s1, s2, s3} {
		c, ok := r.ColorOf(s)
		require.True(t, ok)
		seen[[4]uint8{c.R, c.G, c.B, c.A}] = true
	}
	assert.Len(t, seen, Strains, "each strain needs a distinct colour")
}

func TestSeedStrainsInRange(t *testing.T) {
	rng := core.NewRNG(3)
	r := Rule{}
	counts := map[core.State]int{}
	for i := 0; i < 3000; i++ {
		counts[r.Seed(rng, 1)]++
	}
	assert.Zero(t, counts[dead])
	for _, s := range []core.State{s1, s2, s3} {
		assert.InDelta(t, 1000, counts[s], 150, "strain %d", s)
	}
}
