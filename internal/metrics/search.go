package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and rate-limit Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitesearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"outcome"}, // "ok" / "blank" / "error"
	)

	SearchResultCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sitesearch",
			Name:      "search_result_count",
			Help:      "Number of results per search request",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	RateLimitDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitesearch",
			Name:      "ratelimit_decisions_total",
			Help:      "Rate limiter allow/deny decisions",
		},
		[]string{"pattern", "decision"}, // "allowed" / "denied"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search and rate-limit metrics. Must be
// called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchResultCount)
	prometheus.MustRegister(RateLimitDecisionsTotal)
	searchMetricsRegistered = true
}
