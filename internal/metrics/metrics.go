// Package metrics exports simulation progress as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"immigration-ca/pkg/core"
)

// Collector implements core.Observer and owns a private registry so several
// collectors can coexist in one process (and in tests).
type Collector struct {
	registry    *prometheus.Registry
	generations prometheus.Counter
	duration    prometheus.Histogram
	workers     prometheus.Gauge
	population  *prometheus.GaugeVec
}

// NewCollector registers the simulation metrics labelled with the sim name.
func NewCollector(sim string) *Collector {
	labels := prometheus.Labels{"sim": sim}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ca_generations_total",
			Help:        "Generations committed since start.",
			ConstLabels: labels,
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "ca_step_duration_seconds",
			Help:        "Wall time to compute and commit one generation.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.00005, 2, 14),
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "ca_step_workers",
			Help:        "Row bands computed in parallel for the last generation.",
			ConstLabels: labels,
		}),
		population: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "ca_population",
			Help:        "Cells per state in the current generation.",
			ConstLabels: labels,
		}, []string{"state"}),
	}
	c.registry.MustRegister(c.generations, c.duration, c.workers, c.population)
	return c
}

// ObserveStep records one committed generation.
func (c *Collector) ObserveStep(s core.StepStats) {
	c.generations.Inc()
	c.duration.Observe(s.Duration.Seconds())
	c.workers.Set(float64(s.Workers))
}

// ObservePopulation refreshes the per-state gauges from a census. States that
// disappeared are reset to zero rather than left stale.
func (c *Collector) ObservePopulation(census map[core.State]int) {
	c.population.Reset()
	for state, n := range census {
		c.population.WithLabelValues(strconv.Itoa(int(state))).Set(float64(n))
	}
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
