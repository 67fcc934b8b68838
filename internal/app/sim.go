package app

import (
	"immigration-ca/pkg/core"
)

// BuildSim validates cfg, constructs the named simulation from the registry
// and seeds it. Callers blank-import the sim packages they want available.
func BuildSim(cfg *Config) (core.Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sim, err := core.NewSim(cfg.Sim, cfg.SimOptions())
	if err != nil {
		return nil, err
	}
	sim.Reset(cfg.Seed)
	return sim, nil
}
