package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immigration-ca/pkg/core"
	_ "immigration-ca/pkg/sims/immigration"
)

func TestBuildSim(t *testing.T) {
	cfg := NewConfig()
	cfg.Width, cfg.Height = 16, 8
	sim, err := BuildSim(cfg)
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 16, H: 8}, sim.Size())
	assert.Zero(t, sim.Generation())

	cfg.Sim = "nope"
	_, err = BuildSim(cfg)
	assert.Error(t, err)

	cfg = NewConfig()
	cfg.TPS = 0
	_, err = BuildSim(cfg)
	assert.Error(t, err)
}
