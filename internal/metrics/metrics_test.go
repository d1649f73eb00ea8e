package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/raptor-audit/cairo-parser/internal/metrics"
)

func TestCountersIncrement(t *testing.T) {
	m, _ := metrics.New()

	m.FilesScanned.Add(3)
	m.ImportsResolved.Inc()
	m.ImportsStubbed.Inc()
	m.FunctionsAnalyzed.Add(2)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.FilesScanned))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ImportsResolved))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ImportsStubbed))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.FunctionsAnalyzed))
}

func TestTwoRegistriesAreIndependent(t *testing.T) {
	a, _ := metrics.New()
	b, _ := metrics.New()

	a.FilesScanned.Add(5)
	assert.Equal(t, float64(5), testutil.ToFloat64(a.FilesScanned))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.FilesScanned))
}
