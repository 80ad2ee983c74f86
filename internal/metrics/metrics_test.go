package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStartRun(t *testing.T) {
	m := New(prometheus.NewRegistry())

	done := m.StartRun("path-analysis", 12)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InFlight))
	done(false)

	m.StartRun("path-analysis", 3)(true)
	m.StartRun("path-analysis", 3)(false)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("path-analysis", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("path-analysis", StatusFailed)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDurationSeconds))
	assert.Equal(t, 1, testutil.CollectAndCount(m.GraphNodes))
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("/analyses/:id", "POST", "200")
	m.ObserveRequest("/analyses/:id", "POST", "200")
	m.ObserveRequest("/analyses/:id", "POST", "422")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/analyses/:id", "POST", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestsTotal))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.StartRun("community-detection", 5)(false)
		m.ObserveRequest("/health", "GET", "200")
	})
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
