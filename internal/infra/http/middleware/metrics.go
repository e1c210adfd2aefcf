package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
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
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	scoreRecalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_score_recalculations_total",
			Help: "Total number of lead score recalculations",
		},
		[]string{"source"},
	)

	scoreOverrides = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_score_overrides_total",
			Help: "Total number of manual lead score overrides",
		},
	)

	interactionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_interactions_created_total",
			Help: "Total number of lead interactions recorded",
		},
		[]string{"type"},
	)

	followUpTasksCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "follow_up_tasks_created_total",
			Help: "Total number of follow-up tasks created from interactions",
		},
	)

	authFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Total number of rejected authentication attempts",
		},
		[]string{"reason"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

func wrap(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := wrap(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern labels by chi route pattern so IDs do not blow up cardinality.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordScoreRecalculation(source string) {
	scoreRecalculations.WithLabelValues(source).Inc()
}

func RecordScoreOverride() {
	scoreOverrides.Inc()
}

func RecordInteraction(interactionType string) {
	interactionsCreated.WithLabelValues(interactionType).Inc()
}

func RecordFollowUpTask() {
	followUpTasksCreated.Inc()
}

func RecordAuthFailure(reason string) {
	authFailures.WithLabelValues(reason).Inc()
}
