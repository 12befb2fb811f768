package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Remote gateway metrics
	RemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postboard_remote_requests_total",
			Help: "Total number of remote API requests by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)

	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postboard_remote_request_duration_seconds",
			Help:    "Remote API request duration in seconds, retries included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	RemoteRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "postboard_remote_retries_total",
			Help: "Total number of retried remote GET attempts",
		},
	)

	// Reconciliation metrics
	ReconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "postboard_reconcile_duration_seconds",
			Help:    "Time taken to merge remote and local posts in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RemoteIDCollisions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "postboard_remote_id_collisions_total",
			Help: "Remote posts dropped because their id falls in the local id range",
		},
	)

	// Local store metrics
	LocalPosts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "postboard_local_posts",
			Help: "Number of locally created posts",
		},
	)

	DeletedPosts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "postboard_deleted_posts",
			Help: "Number of ids in the deleted-id set",
		},
	)

	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postboard_mutations_total",
			Help: "Total number of post mutations by operation, provenance and result",
		},
		[]string{"op", "provenance", "result"},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postboard_api_requests_total",
			Help: "Total number of API requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postboard_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(RemoteRequestsTotal)
	prometheus.MustRegister(RemoteRequestDuration)
	prometheus.MustRegister(RemoteRetriesTotal)
	prometheus.MustRegister(ReconcileDuration)
	prometheus.MustRegister(RemoteIDCollisions)
	prometheus.MustRegister(LocalPosts)
	prometheus.MustRegister(DeletedPosts)
	prometheus.MustRegister(MutationsTotal)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
