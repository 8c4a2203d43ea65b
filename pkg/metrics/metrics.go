// Package metrics keeps reconciliation counters in a Prometheus registry and
// writes them out for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/newtron-network/nxcfg/pkg/nxos"
)

var (
	once     sync.Once
	registry *Registry
)

// Run results
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Registry holds all reconciliation metrics.
type Registry struct {
	reg *prometheus.Registry

	LinesDropped    *prometheus.CounterVec
	Sections        *prometheus.CounterVec
	BlocksGenerated *prometheus.CounterVec
	Runs            *prometheus.CounterVec
	LastReconcile   prometheus.Gauge
	Duration        prometheus.Histogram
}

// Get returns the process-wide registry, creating it if necessary.
func Get() *Registry {
	once.Do(func() {
		registry = New()
	})
	return registry
}

// New creates a registry with every metric registered
func New() *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}
	factory := promauto.With(r.reg)

	r.LinesDropped = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "nxcfg_lines_dropped_total",
		Help: "Existing configuration lines dropped, by filter rule",
	}, []string{"rule"})

	r.Sections = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "nxcfg_sections_total",
		Help: "Existing configuration sections seen by the filter, by kind and action",
	}, []string{"kind", "action"})

	r.BlocksGenerated = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "nxcfg_blocks_generated_total",
		Help: "Configuration blocks generated from the manifest, by kind",
	}, []string{"kind"})

	r.Runs = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "nxcfg_reconcile_runs_total",
		Help: "Reconciliation runs, by result",
	}, []string{"result"})

	r.LastReconcile = factory.NewGauge(prometheus.GaugeOpts{
		Name: "nxcfg_last_reconcile_timestamp_seconds",
		Help: "Unix timestamp of the last successful reconciliation",
	})

	r.Duration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "nxcfg_reconcile_duration_seconds",
		Help:    "Time spent reconciling one configuration",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	})

	return r
}

// Gatherer exposes the underlying registry
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveResult records a successful reconciliation
func (r *Registry) ObserveResult(res *nxos.Result) {
	r.Runs.WithLabelValues(ResultSuccess).Inc()
	r.LastReconcile.SetToCurrentTime()
	r.Duration.Observe(res.Duration.Seconds())

	if rep := res.Filter; rep != nil {
		for rule, n := range rep.Dropped {
			r.LinesDropped.WithLabelValues(rule).Add(float64(n))
		}
		for _, o := range rep.Removed {
			r.Sections.WithLabelValues(o.Kind, string(nxos.ActionRemove)).Inc()
		}
		for _, o := range rep.Preserved {
			r.Sections.WithLabelValues(o.Kind, string(nxos.ActionPreserve)).Inc()
		}
		for _, o := range rep.Foreign {
			r.Sections.WithLabelValues(o.Kind, "passthrough").Inc()
		}
	}
	for _, o := range res.Generated {
		r.BlocksGenerated.WithLabelValues(o.Kind).Inc()
	}
}

// ObserveError records a failed reconciliation
func (r *Registry) ObserveError(duration time.Duration) {
	r.Runs.WithLabelValues(ResultError).Inc()
	r.Duration.Observe(duration.Seconds())
}

// WriteTextfile writes the registry in text exposition format. The file is
// replaced atomically, so a collector never reads a partial file.
func (r *Registry) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
