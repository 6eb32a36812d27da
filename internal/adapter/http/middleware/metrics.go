package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Metrics middleware records HTTP metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		// Wrap response writer to capture status code
		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Fixed route segments under /api/v1/assets/ that are not asset IDs.
var literalAssetRoutes = map[string]bool{
	"register": true,
	"draft":    true,
	"counts":   true,
}

// normalizePath replaces ID path segments with :id so metric label
// cardinality stays bounded.
// /api/v1/assets/01ABC123/entries -> /api/v1/assets/:id/entries
func normalizePath(path string) string {
	for _, prefix := range []string{"/api/v1/assets/", "/api/v1/types/"} {
		n := len(prefix)
		if len(path) <= n || path[:n] != prefix || path[n] == '/' {
			continue
		}

		segment := path[n:]
		suffix := ""
		for i := n; i < len(path); i++ {
			if path[i] == '/' {
				segment = path[n:i]
				suffix = path[i:]
				break
			}
		}

		if literalAssetRoutes[segment] {
			return path
		}

		return prefix + ":id" + suffix
	}

	return path
}
