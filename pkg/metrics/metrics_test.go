package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.ObserveAllocation("found")
	m.ObserveAllocation("found")
	m.ObserveCommit("conflict")
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.ObserveDBQuery("exec", time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AllocationResults.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommitResults.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("exec")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAllocation("found")
		m.ObserveCommit("confirmed")
		m.ObserveAttempts("confirmed", 1)
		m.ObserveLockWait("acquired", time.Millisecond)
		m.ObserveDBQuery("query", time.Millisecond, nil)
		m.ObserveHTTPRequest("GET", "/", "200", time.Millisecond)
	})
}
