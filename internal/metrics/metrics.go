// Package metrics exposes the Prometheus collectors shared by the API server
// and the submission gateway.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sizeBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000}

	httpLabels = []string{"method", "endpoint", "status_code"}
)

// HTTP
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route and status.",
	}, httpLabels)

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, httpLabels)

	httpRequestSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "http",
		Name:      "request_size_bytes",
		Help:      "Size of HTTP request bodies.",
		Buckets:   sizeBuckets,
	}, []string{"method", "endpoint"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "Size of HTTP response bodies.",
		Buckets:   sizeBuckets,
	}, []string{"method", "endpoint"})
)

// Database
var (
	dbConnections = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Subsystem: "db",
		Name:      "connections",
		Help:      "Open database connections by state.",
	}, []string{"state"})

	dbQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "db",
		Name:      "queries_total",
		Help:      "Database queries by operation and outcome.",
	}, []string{"operation", "status"})

	dbQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Database query latency.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"operation"})
)

// EduNest
var (
	adminAuthAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "admin",
		Name:      "auth_attempts_total",
		Help:      "Admin PIN checks by result.",
	}, []string{"result"})

	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_total",
		Help: "Accepted public form submissions by kind.",
	}, []string{"kind"})

	gatewayFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "gateway",
		Name:      "fallbacks_total",
		Help:      "Gateway operations served by the local fallback store.",
	}, []string{"operation"})
)

// PrometheusMiddleware instruments every request except the scrape endpoint.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		endpoint := routeLabel(r.URL.Path)
		if r.ContentLength > 0 {
			httpRequestSize.WithLabelValues(r.Method, endpoint).Observe(float64(r.ContentLength))
		}

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		status := strconv.Itoa(rec.status)
		httpRequestsTotal.WithLabelValues(r.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, endpoint, status).Observe(time.Since(start).Seconds())
		httpResponseSize.WithLabelValues(r.Method, endpoint).Observe(float64(rec.written))
	})
}

// routeLabel replaces numeric path segments with {id} to bound label cardinality.
func routeLabel(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if _, err := strconv.ParseInt(seg, 10, 64); err == nil {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

type recorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.written += n
	return n, err
}

// RecordAdminAuth counts one admin PIN check.
func RecordAdminAuth(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	adminAuthAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordInquirySubmission counts a stored inquiry.
func RecordInquirySubmission() {
	submissionsTotal.WithLabelValues("inquiry").Inc()
}

// RecordAdmissionSubmission counts a stored admission application.
func RecordAdmissionSubmission() {
	submissionsTotal.WithLabelValues("admission").Inc()
}

// RecordFallback counts a gateway operation that fell back to local storage.
func RecordFallback(operation string) {
	gatewayFallbacksTotal.WithLabelValues(operation).Inc()
}

// RecordDBQuery records the outcome and latency of one query.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	dbQueriesTotal.WithLabelValues(operation, status).Inc()
	dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnections sets the connection gauges from pool stats.
func UpdateDBConnections(active, idle int) {
	dbConnections.WithLabelValues("in_use").Set(float64(active))
	dbConnections.WithLabelValues("idle").Set(float64(idle))
}
