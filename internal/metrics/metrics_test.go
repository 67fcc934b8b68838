package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immigration-ca/pkg/core"
	"immigration-ca/pkg/sims/immigration"
)

func TestCollectorObservesScheduler(t *testing.T) {
	cfg := immigration.DefaultConfig()
	cfg.Width, cfg.Height, cfg.StepsPerTick = 32, 32, 3
	sim, err := immigration.New(cfg)
	require.NoError(t, err)
	sim.Reset(1)

	c := NewCollector(sim.Name())
	sim.Scheduler().SetObserver(c)
	sim.Step()

	assert.Equal(t, 3.0, testutil.ToFloat64(c.generations))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))
}

func TestObservePopulationResetsStaleStates(t *testing.T) {
	c := NewCollector("immigration")
	c.ObservePopulation(map[core.State]int{0: 10, 1: 4, 2: 2})
	assert.Equal(t, 3, testutil.CollectAndCount(c.population))

	c.ObservePopulation(map[core.State]int{0: 16})
	assert.Equal(t, 1, testutil.CollectAndCount(c.population))
	assert.Equal(t, 16.0, testutil.ToFloat64(c.population.WithLabelValues("0")))
}

func TestHandlerServesMetrics(t *testing.T) {
	c := NewCollector("life")
	c.ObserveStep(core.StepStats{Generation: 1, Duration: time.Millisecond, Workers: 2})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `ca_generations_total{sim="life"} 1`), body)
	assert.Contains(t, body, "ca_step_workers")
}

func TestCollectorsUseSeparateRegistries(t *testing.T) {
	a := NewCollector("immigration")
	b := NewCollector("life")
	a.ObserveStep(core.StepStats{Generation: 1, Duration: time.Millisecond, Workers: 1})

	n, err := testutil.GatherAndCount(a.Registry(), "ca_generations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	err = testutil.GatherAndCompare(b.Registry(), strings.NewReader(`
# HELP ca_generations_total Generations committed since start.
# TYPE ca_generations_total counter
ca_generations_total{sim="life"} 0
`), "ca_generations_total")
	assert.NoError(t, err)
}
