package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomGrid(t *testing.T, w, h int, seed int64) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	require.NoError(t, err)
	rng := NewRNG(seed)
	g.Fill(func(Coord) State {
		if rng.Chance(0.35) {
			return 1
		}
		return Dead
	})
	return g
}

func TestSimultaneousUpdate(t *testing.T) {
	// A cell comes alive next to any live cell. Reading from the old
	// generation grows the row by one cell per step; an in-place sweep would
	// fill it in a single pass.
	spread := stubRule{transition: func(cur State, n []State) State {
		for _, s := range n {
			if s != Dead {
				return 1
			}
		}
		return cur
	}}
	g, err := NewGrid(6, 1)
	require.NoError(t, err)
	g.Set(Coord{X: 0, Y: 0}, 1)

	s := NewScheduler(spread, Config{Workers: 1})
	s.Step(g)
	assert.Equal(t, []State{1, 1, 0, 0, 0, 0}, g.Cells())
	s.Step(g)
	assert.Equal(t, []State{1, 1, 1, 0, 0, 0}, g.Cells())
}

func TestBlinkerOnScheduler(t *testing.T) {
	g, err := NewGrid(5, 5)
	require.NoError(t, err)
	for _, c := range []Coord{{2, 1}, {2, 2}, {2, 3}} {
		g.Set(c, 1)
	}
	start := g.Snapshot()
	s := NewScheduler(conway(), Config{})
	s.Step(g)
	assert.Equal(t, State(1), g.At(Coord{1, 2}))
	assert.Equal(t, Dead, g.At(Coord{2, 1}))
	s.Step(g)
	assert.True(t, start.Equal(g.Snapshot()))
	assert.Equal(t, uint64(2), s.Generation())
}

func TestParallelMatchesSerial(t *testing.T) {
	serial := randomGrid(t, 97, 131, 5)
	parallel := randomGrid(t, 97, 131, 5)
	require.True(t, serial.Snapshot().Equal(parallel.Snapshot()))

	NewScheduler(conway(), Config{Workers: 1}).Advance(serial, 25)
	NewScheduler(conway(), Config{Workers: 7}).Advance(parallel, 25)
	assert.True(t, serial.Snapshot().Equal(parallel.Snapshot()))
}

func TestAdvanceZeroIsIdentity(t *testing.T) {
	g := randomGrid(t, 20, 20, 9)
	before := g.Snapshot()
	s := NewScheduler(conway(), Config{})
	s.Advance(g, 0)
	s.Advance(g, -3)
	assert.True(t, before.Equal(g.Snapshot()))
	assert.Zero(t, s.Generation())
}

func TestBoundsInvariantAcrossSteps(t *testing.T) {
	g := randomGrid(t, 17, 9, 2)
	s := NewScheduler(conway(), Config{StepsPerTick: 3})
	for i := 0; i < 10; i++ {
		s.Step(g)
		require.Equal(t, Bounds{W: 17, H: 9}, g.Bounds())
		require.Len(t, g.Cells(), 17*9)
	}
	assert.Equal(t, uint64(30), s.Generation())
}

func TestBatchingMatchesSingleSteps(t *testing.T) {
	a := randomGrid(t, 40, 40, 11)
	b := randomGrid(t, 40, 40, 11)
	batched := NewScheduler(conway(), Config{StepsPerTick: 4})
	single := NewScheduler(conway(), Config{})
	batched.Step(a)
	for i := 0; i < 4; i++ {
		single.Step(b)
	}
	assert.True(t, a.Snapshot().Equal(b.Snapshot()))
	assert.Equal(t, batched.Generation(), single.Generation())
}

func TestSchedulerDefaults(t *testing.T) {
	s := NewScheduler(conway(), Config{Workers: -2, StepsPerTick: 0})
	assert.GreaterOrEqual(t, s.Workers(), 1)
	assert.Equal(t, 1, s.StepsPerTick())
	assert.Panics(t, func() { NewScheduler(nil, Config{}) })
}

func TestBands(t *testing.T) {
	s := NewScheduler(conway(), Config{Workers: 4})
	assert.Equal(t, []band{{0, 10}}, s.bands(10), "small grids stay on one band")

	got := s.bands(100)
	require.Len(t, got, 4)
	assert.Equal(t, 0, got[0].y0)
	assert.Equal(t, 100, got[len(got)-1].y1)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1].y1, got[i].y0, "bands must tile the rows")
	}
}

type recordingObserver struct{ stats []StepStats }

func (r *recordingObserver) ObserveStep(s StepStats) { r.stats = append(r.stats, s) }

func TestObserverSeesEveryGeneration(t *testing.T) {
	g := randomGrid(t, 16, 16, 1)
	obs := &recordingObserver{}
	s := NewScheduler(conway(), Config{StepsPerTick: 3})
	s.SetObserver(obs)
	s.Step(g)
	require.Len(t, obs.stats, 3)
	assert.Equal(t, uint64(3), obs.stats[2].Generation)
	assert.GreaterOrEqual(t, obs.stats[0].Duration, time.Duration(0))
}
