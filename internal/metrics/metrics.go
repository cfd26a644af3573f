// Package metrics exposes Prometheus collectors for the ingestion service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal           *prometheus.CounterVec
	commentPagesTotal          *prometheus.CounterVec
	entitiesWrittenTotal       *prometheus.CounterVec
	duplicateSkipsTotal        *prometheus.CounterVec
	ingestionsTotal            *prometheus.CounterVec
	quotaRemaining             prometheus.Gauge
	upstreamRetriesTotal       *prometheus.CounterVec
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		apiRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytingest_api_requests_total",
				Help: "Total upstream API requests, labeled by endpoint and status.",
			},
			[]string{"endpoint", "status"},
		)

		commentPagesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytingest_comment_pages_total",
				Help: "Total comment thread pages fetched, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		entitiesWrittenTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytingest_entities_written_total",
				Help: "Total entity rows written, labeled by kind.",
			},
			[]string{"kind"},
		)

		duplicateSkipsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytingest_duplicate_skips_total",
				Help: "Total writes skipped because the entity already existed, labeled by kind.",
			},
			[]string{"kind"},
		)

		ingestionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytingest_ingestions_total",
				Help: "Total ingestion runs, labeled by terminal state.",
			},
			[]string{"state"},
		)

		quotaRemaining = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ytingest_quota_remaining",
				Help: "Remaining daily API quota units. -1 when quota tracking is disabled.",
			},
		)

		upstreamRetriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytingest_upstream_retries_total",
				Help: "Total retried upstream requests, labeled by endpoint.",
			},
			[]string{"endpoint"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAPIRequest increments the upstream request counter.
func ObserveAPIRequest(endpoint string, status int) {
	apiRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// ObserveCommentPage increments the comment page counter for the given outcome.
func ObserveCommentPage(outcome string) {
	commentPagesTotal.WithLabelValues(outcome).Inc()
}

// ObserveEntityWritten increments the written-entity counter for the kind.
func ObserveEntityWritten(kind string) {
	entitiesWrittenTotal.WithLabelValues(kind).Inc()
}

// ObserveDuplicateSkip increments the duplicate-skip counter for the kind.
func ObserveDuplicateSkip(kind string) {
	duplicateSkipsTotal.WithLabelValues(kind).Inc()
}

// ObserveIngestion increments the ingestion counter for the terminal state.
func ObserveIngestion(state string) {
	ingestionsTotal.WithLabelValues(state).Inc()
}

// SetQuotaRemaining records the remaining daily quota units.
func SetQuotaRemaining(remaining int) {
	quotaRemaining.Set(float64(remaining))
}

// ObserveUpstreamRetry increments the retry counter for the endpoint.
func ObserveUpstreamRetry(endpoint string) {
	upstreamRetriesTotal.WithLabelValues(endpoint).Inc()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
