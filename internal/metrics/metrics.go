// Package metrics holds the Prometheus instruments for analyzer runs and the
// HTTP layer. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace         = "graphlens"
	analysisSubsystem = "analysis"
	httpSubsystem     = "http"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

type Metrics struct {
	// RunsTotal counts analyzer runs. Labels: analyzer, status (ok, failed)
	RunsTotal *prometheus.CounterVec

	// RunDurationSeconds measures wall time per run. Labels: analyzer
	RunDurationSeconds *prometheus.HistogramVec

	// GraphNodes records the node count of each analyzed graph. Labels: analyzer
	GraphNodes *prometheus.HistogramVec

	// InFlight is the number of runs currently executing.
	InFlight prometheus.Gauge

	// HTTPRequestsTotal counts served requests. Labels: route, method, code
	HTTPRequestsTotal *prometheus.CounterVec
}

// New registers every instrument with reg. Registering twice on the same
// registry panics, so callers build one Metrics per registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: analysisSubsystem,
				Name:      "runs_total",
				Help:      "Total analyzer runs by analyzer and status",
			},
			[]string{"analyzer", "status"},
		),

		RunDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: analysisSubsystem,
				Name:      "run_duration_seconds",
				Help:      "Analyzer run duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"analyzer"},
		),

		GraphNodes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: analysisSubsystem,
				Name:      "graph_nodes",
				Help:      "Number of nodes in analyzed graphs",
				Buckets:   prometheus.ExponentialBuckets(4, 4, 7),
			},
			[]string{"analyzer"},
		),

		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: analysisSubsystem,
				Name:      "in_flight",
				Help:      "Number of analyzer runs currently executing",
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: httpSubsystem,
				Name:      "requests_total",
				Help:      "Total HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
	}
}

// StartRun marks a run in flight and returns the function that records its
// outcome.
func (m *Metrics) StartRun(analyzer string, nodes int) func(failed bool) {
	if m == nil {
		return func(bool) {}
	}

	start := time.Now()
	m.InFlight.Inc()
	m.GraphNodes.WithLabelValues(analyzer).Observe(float64(nodes))

	return func(failed bool) {
		m.InFlight.Dec()
		status := StatusOK
		if failed {
			status = StatusFailed
		}
		m.RunsTotal.WithLabelValues(analyzer, status).Inc()
		m.RunDurationSeconds.WithLabelValues(analyzer).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObserveRequest(route, method, code string) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, method, code).Inc()
}
