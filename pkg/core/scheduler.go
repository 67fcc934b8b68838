package core

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMinRowsPerWorker keeps tiny grids from being split into bands
	// that cost more to schedule than to compute.
	DefaultMinRowsPerWorker = 8
)

// Config carries the dimensions and scheduling knobs for an automaton. It is
// passed explicitly rather than held in package state.
type Config struct {
	Width  int
	Height int
	// Workers bounds the goroutines used per generation. Zero means
	// runtime.GOMAXPROCS.
	Workers int
	// StepsPerTick is how many generations one Step call advances. Zero
	// means one.
	StepsPerTick int
}

// StepStats describes one committed generation.
type StepStats struct {
	Generation uint64
	Duration   time.Duration
	Workers    int
}

// Observer receives a callback after every committed generation.
type Observer interface {
	ObserveStep(StepStats)
}

// Scheduler advances a Grid with simultaneous-update semantics: every cell of
// generation n+1 is computed from an untouched view of generation n, and the
// new generation is published in a single swap.
type Scheduler struct {
	rule       Rule
	workers    int
	batch      int
	generation uint64
	observer   Observer
}

// NewScheduler builds a scheduler for rule. A nil rule panics.
func NewScheduler(rule Rule, cfg Config) *Scheduler {
	if rule == nil {
		panic("core: NewScheduler requires a rule")
	}
	s := &Scheduler{rule: rule}
	s.SetWorkers(cfg.Workers)
	s.SetStepsPerTick(cfg.StepsPerTick)
	return s
}

// Rule returns the transition rule.
func (s *Scheduler) Rule() Rule { return s.rule }

// Generation returns how many generations have been committed.
func (s *Scheduler) Generation() uint64 { return s.generation }

// ResetGeneration zeroes the generation counter after a reseed.
func (s *Scheduler) ResetGeneration() { s.generation = 0 }

// StepsPerTick returns the batch size used by Step.
func (s *Scheduler) StepsPerTick() int { return s.batch }

// SetStepsPerTick changes the batch size; values below one become one.
func (s *Scheduler) SetStepsPerTick(n int) {
	if n < 1 {
		n = 1
	}
	s.batch = n
}

// Workers returns the configured worker ceiling.
func (s *Scheduler) Workers() int { return s.workers }

// SetWorkers changes the worker ceiling; values below one select GOMAXPROCS.
func (s *Scheduler) SetWorkers(n int) {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	s.workers = n
}

// SetObserver installs o, or removes the observer when o is nil.
func (s *Scheduler) SetObserver(o Observer) { s.observer = o }

// Step advances g by StepsPerTick generations.
func (s *Scheduler) Step(g *Grid) { s.Advance(g, s.batch) }

// Advance runs exactly n generations. n <= 0 leaves g unchanged.
func (s *Scheduler) Advance(g *Grid, n int) {
	for i := 0; i < n; i++ {
		s.advanceOne(g)
	}
}

func (s *Scheduler) advanceOne(g *Grid) {
	start := time.Now()
	view := g.view()
	next := g.scratch
	bands := s.bands(view.bounds.H)

	if len(bands) == 1 {
		s.computeRows(view, next, 0, view.bounds.H)
	} else {
		var eg errgroup.Group
		for _, b := range bands {
			eg.Go(func() error {
				s.computeRows(view, next, b.y0, b.y1)
				return nil
			})
		}
		// computeRows cannot fail; Wait is the barrier before the commit.
		_ = eg.Wait()
	}

	g.commit()
	s.generation++
	if s.observer != nil {
		s.observer.ObserveStep(StepStats{
			Generation: s.generation,
			Duration:   time.Since(start),
			Workers:    len(bands),
		})
	}
}

// computeRows writes next states for rows [y0, y1) into next.
func (s *Scheduler) computeRows(view Generation, next []State, y0, y1 int) {
	w := view.bounds.W
	neighbors := make([]State, 0, len(mooreOffsets))
	for y := y0; y < y1; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			neighbors = appendNeighborStates(neighbors[:0], view, x, y)
			next[row+x] = s.rule.Transition(view.cells[row+x], neighbors)
		}
	}
}

type band struct{ y0, y1 int }

// bands splits h rows across the configured workers, never giving a worker
// fewer than DefaultMinRowsPerWorker rows.
func (s *Scheduler) bands(h int) []band {
	workers := s.workers
	if maxWorkers := h / DefaultMinRowsPerWorker; workers > maxWorkers {
		workers = maxWorkers
	}
	if workers < 1 {
		workers = 1
	}
	rows := (h + workers - 1) / workers
	out := make([]band, 0, workers)
	for y0 := 0; y0 < h; y0 += rows {
		out = append(out, band{y0: y0, y1: min(y0+rows, h)})
	}
	return out
}
