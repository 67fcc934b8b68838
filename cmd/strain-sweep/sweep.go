package main

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"immigration-ca/pkg/core"
	"immigration-ca/pkg/sims/immigration"
)

type sweepOptions struct {
	Width     int
	Height    int
	Steps     int
	Workers   int
	Densities []float64
	Seeds     []int64
}

func (o sweepOptions) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return errors.Errorf("grid must be positive, got %dx%d", o.Width, o.Height)
	case o.Steps < 0:
		return errors.Errorf("steps must not be negative, got %d", o.Steps)
	case o.Workers <= 0:
		return errors.Errorf("workers must be positive, got %d", o.Workers)
	case len(o.Densities) == 0 || len(o.Seeds) == 0:
		return errors.New("need at least one density and one seed")
	}
	for _, d := range o.Densities {
		if d < 0 || d > 1 {
			return errors.Errorf("density %v outside [0,1]", d)
		}
	}
	return nil
}

type scenario struct {
	density float64
	seed    int64
}

func (o sweepOptions) scenarios() []scenario {
	out := make([]scenario, 0, len(o.Densities)*len(o.Seeds))
	for _, d := range o.Densities {
		for _, s := range o.Seeds {
			out = append(out, scenario{density: d, seed: s})
		}
	}
	return out
}

type scenarioResult struct {
	scenario  scenario
	steps     int
	settledAt int // generation at which the grid stopped changing, or -1
	extinctAt int // first generation with no live cells, or -1
	census    [immigration.Strains + 1]int
	dominant  int // 0 when extinct or tied
}

func (r scenarioResult) population() int {
	total := 0
	for s := 1; s <= immigration.Strains; s++ {
		total += r.census[s]
	}
	return total
}

func (r scenarioResult) share(strain int) float64 {
	pop := r.population()
	if pop == 0 {
		return 0
	}
	return float64(r.census[strain]) / float64(pop)
}

func (r scenarioResult) String() string {
	return fmt.Sprintf("density=%.2f seed=%d steps=%d pop=%d share=[%.2f %.2f %.2f] dominant=%d extinct=%s settled=%s",
		r.scenario.density, r.scenario.seed, r.steps, r.population(),
		r.share(1), r.share(2), r.share(3), r.dominant, genOrNo(r.extinctAt), genOrNo(r.settledAt))
}

func genOrNo(gen int) string {
	if gen < 0 {
		return "no"
	}
	return fmt.Sprintf("gen %d", gen)
}

func sweep(opts sweepOptions, scenarios []scenario, log *slog.Logger) ([]scenarioResult, error) {
	results := make([]scenarioResult, len(scenarios))
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, sc := range scenarios {
		g.Go(func() error {
			res, err := runScenario(opts, sc)
			if err != nil {
				return err
			}
			log.Debug("scenario done", "density", sc.density, "seed", sc.seed, "dominant", res.dominant)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runScenario seeds one world and advances it until opts.Steps generations
// have run or the grid stops changing. Each scenario steps serially; the
// pool provides the parallelism.
func runScenario(opts sweepOptions, sc scenario) (scenarioResult, error) {
	cfg := immigration.DefaultConfig()
	cfg.Width, cfg.Height = opts.Width, opts.Height
	cfg.Workers = 1
	cfg.Density = sc.density

	world, err := immigration.New(cfg)
	if err != nil {
		return scenarioResult{}, errors.Wrapf(err, "scenario density=%v seed=%d", sc.density, sc.seed)
	}
	world.Reset(sc.seed)

	res := scenarioResult{scenario: sc, settledAt: -1, extinctAt: -1}
	prev := world.Grid().Snapshot()
	if extinct(prev) {
		res.extinctAt = 0
	}
	for res.steps < opts.Steps {
		world.Scheduler().Advance(world.Grid(), 1)
		res.steps++
		cur := world.Grid().Snapshot()
		if res.extinctAt < 0 && extinct(cur) {
			res.extinctAt = res.steps
		}
		if cur.Equal(prev) {
			res.settledAt = res.steps - 1
			break
		}
		prev = cur
	}
	res.census = world.Census()
	res.dominant = dominant(res.census)
	return res, nil
}

func extinct(gen core.Generation) bool {
	return gen.Census()[core.Dead] == gen.Bounds().Len()
}

// dominant returns the strain with the strictly largest population, or 0.
func dominant(census [immigration.Strains + 1]int) int {
	best, bestCount, tied := 0, 0, false
	for s := 1; s <= immigration.Strains; s++ {
		switch {
		case census[s] > bestCount:
			best, bestCount, tied = s, census[s], false
		case census[s] == bestCount && bestCount > 0:
			tied = true
		}
	}
	if tied {
		return 0
	}
	return best
}
