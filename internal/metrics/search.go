package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "searches_total",
			Help:      "Total number of listing searches",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "discovery",
			Name:      "search_duration_seconds",
			Help:      "Listing search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SearchResultCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "discovery",
			Name:      "search_result_count",
			Help:      "Number of listings returned per search page",
			Buckets:   []float64{0, 1, 5, 10, 20, 50},
		},
	)

	AuditWriteFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "audit_write_failures_total",
			Help:      "Total number of failed audit stream writes",
		},
	)

	ProximityLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "proximity_lookups_total",
			Help:      "Total number of proximity ranking lookups",
		},
		[]string{"status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultCount)
	prometheus.MustRegister(AuditWriteFailuresTotal)
	prometheus.MustRegister(ProximityLookupsTotal)
	searchMetricsRegistered = true
}
