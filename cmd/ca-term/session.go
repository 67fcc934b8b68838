package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"

	"immigration-ca/internal/app"
	"immigration-ca/internal/logging"
	"immigration-ca/internal/metrics"
	"immigration-ca/pkg/core"
)

// engine is implemented by sims built on core.Automaton.
type engine interface {
	core.Sim
	Grid() *core.Grid
	Scheduler() *core.Scheduler
	Load(core.Generation) error
}

// session is a configured sim plus its logger and optional metrics server.
type session struct {
	sim     core.Sim
	log     *slog.Logger
	metrics *metrics.Collector
	server  *http.Server
}

func openSession(opts *options, service string) (*session, error) {
	logger, err := logging.New(logging.Config{Level: opts.cfg.LogLevel, Format: opts.cfg.LogFormat, Service: service})
	if err != nil {
		return nil, err
	}
	sim, err := app.BuildSim(opts.cfg)
	if err != nil {
		return nil, err
	}
	s := &session{sim: sim, log: logger, metrics: metrics.NewCollector(sim.Name())}

	if opts.loadPath != "" {
		if err := s.load(opts.loadPath); err != nil {
			return nil, err
		}
	}
	if eng, ok := sim.(engine); ok {
		eng.Scheduler().SetObserver(s.metrics)
	}
	s.metrics.ObservePopulation(census(sim))

	if addr := opts.cfg.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.metrics.Handler())
		s.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "addr", addr, "error", err)
			}
		}()
		logger.Info("serving metrics", "addr", addr)
	}

	size := sim.Size()
	logger.Info("session ready", "sim", sim.Name(), "width", size.W, "height", size.H,
		"seed", opts.cfg.Seed, "density", opts.cfg.Density, "batch", opts.cfg.StepsPerTick)
	return s, nil
}

func (s *session) load(path string) error {
	eng, ok := s.sim.(engine)
	if !ok {
		return errors.Errorf("sim %q does not support snapshots", s.sim.Name())
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening snapshot")
	}
	defer f.Close()
	gen, err := core.Decode(f, maxState(s.sim.Rule()))
	if err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}
	if err := eng.Load(gen); err != nil {
		return err
	}
	s.log.Info("loaded snapshot", "path", path)
	return nil
}

func (s *session) save(path string) error {
	size := s.sim.Size()
	gen, err := core.NewGeneration(core.Bounds{W: size.W, H: size.H}, s.sim.Cells())
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating snapshot")
	}
	if err := core.Encode(f, gen); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing snapshot")
	}
	s.log.Info("saved snapshot", "path", path, "generation", s.sim.Generation())
	return nil
}

// advance runs exactly n generations when the sim exposes its scheduler,
// otherwise whole ticks until at least n have run.
func (s *session) advance(n int) {
	if eng, ok := s.sim.(engine); ok {
		eng.Scheduler().Advance(eng.Grid(), n)
	} else {
		start := s.sim.Generation()
		for s.sim.Generation()-start < uint64(n) {
			s.sim.Step()
		}
	}
	s.metrics.ObservePopulation(census(s.sim))
}

func (s *session) close(savePath string) error {
	var err error
	if savePath != "" {
		err = s.save(savePath)
	}
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if shutdownErr := s.server.Shutdown(ctx); shutdownErr != nil && err == nil {
			err = errors.Wrap(shutdownErr, "stopping metrics server")
		}
	}
	return err
}

func census(sim core.Sim) map[core.State]int {
	out := map[core.State]int{}
	for _, st := range sim.Cells() {
		out[st]++
	}
	return out
}

func maxState(rule core.Rule) core.State {
	if sc, ok := rule.(core.StateCounter); ok && sc.States() > 0 && sc.States() <= 256 {
		return core.State(sc.States() - 1)
	}
	return 255
}
