package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(a.MapOperations))

	other := prometheus.NewRegistry()
	assert.NoError(t, other.Register(b.MapOperations))
}

func TestMetrics_AllCollectorsRegister(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()

	for _, c := range m.collectors() {
		require.NoError(t, reg.Register(c))
	}

	m.MapOperations.WithLabelValues(ActionUpdate, OutcomeApplied).Inc()
	m.SnapshotCache.WithLabelValues("hit").Inc()
	m.MapBound.Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["risk_map_map_operations_total"])
	assert.True(t, names["risk_map_snapshot_cache_total"])
	assert.True(t, names["risk_map_map_bound"])
}
