package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "risk_map"

// Label values for MapOperations.
const (
	ActionReset  = "reset"
	ActionUpdate = "update"

	OutcomeApplied  = "applied"
	OutcomeNotReady = "not_ready"
	OutcomeFailed   = "failed"
)

// Metrics holds the Prometheus collectors of the risk map service.
type Metrics struct {
	// labels: action={reset,update}, outcome={applied,not_ready}
	MapOperations *prometheus.CounterVec
	LoadFailures  prometheus.Counter
	LoadDuration  prometheus.Histogram
	MapBound      prometheus.Gauge

	FeaturesMatched   prometheus.Gauge
	FeaturesUnmatched prometheus.Gauge
	DuplicateCities   prometheus.Counter

	// labels: result={hit,miss}
	SnapshotCache *prometheus.CounterVec
	// labels: action, outcome={applied,failed}
	CommandsProcessed *prometheus.CounterVec
}

func newMetrics() *Metrics {
	return &Metrics{
		MapOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_operations_total",
			Help:      "Reset and year-update operations by outcome.",
		}, []string{"action", "outcome"}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Failed attempts to load boundaries or the risk table.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of the initial data load.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		MapBound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "map_bound",
			Help:      "1 once boundaries and the risk table are bound, 0 before.",
		}),
		FeaturesMatched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "features_matched",
			Help:      "Features that received a risk level for the current selection.",
		}),
		FeaturesUnmatched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "features_unmatched",
			Help:      "Features left Unknown for the current selection.",
		}),
		DuplicateCities: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_cities_total",
			Help:      "Risk table rows overwritten by a later row with the same normalized city.",
		}),
		SnapshotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_total",
			Help:      "Styled map snapshot cache lookups by result.",
		}, []string{"result"}),
		CommandsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_processed_total",
			Help:      "Map commands consumed from the command stream by action and outcome.",
		}, []string{"action", "outcome"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.MapOperations,
		m.LoadFailures,
		m.LoadDuration,
		m.MapBound,
		m.FeaturesMatched,
		m.FeaturesUnmatched,
		m.DuplicateCities,
		m.SnapshotCache,
		m.CommandsProcessed,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere,
// so every test can build its own set.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
