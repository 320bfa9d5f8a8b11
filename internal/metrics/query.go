package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query pipeline Prometheus metrics.
var (
	QueryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recordq",
			Name:      "query_requests_total",
			Help:      "Total number of list queries per collection",
		},
		[]string{"collection"},
	)

	QueryMatchedRecords = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recordq",
			Name:      "query_matched_records",
			Help:      "Records surviving the filter stage per query",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 250, 500, 1000, 5000},
		},
		[]string{"collection"},
	)

	QueryReturnedRecords = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recordq",
			Name:      "query_returned_records",
			Help:      "Records returned in the served page",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"collection"},
	)
)

// Register registers every recordq collector with reg. Call once at startup.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		httpRequestDuration,
		httpRequestsTotal,
		QueryRequestsTotal,
		QueryMatchedRecords,
		QueryReturnedRecords,
	)
}

// QueryRecorder feeds executed queries into the query metrics.
type QueryRecorder struct{}

// ObserveQuery records one executed list query.
func (QueryRecorder) ObserveQuery(collection string, matched, returned int) {
	QueryRequestsTotal.WithLabelValues(collection).Inc()
	QueryMatchedRecords.WithLabelValues(collection).Observe(float64(matched))
	QueryReturnedRecords.WithLabelValues(collection).Observe(float64(returned))
}
