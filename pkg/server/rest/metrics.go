package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics mirrors the teacher's api/middlewares.go metrics struct,
// relabeled for plan/replan calls instead of shortest-path queries.
type Metrics struct {
	PlanCount          *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	durationSummary    prometheus.Summary
	responseStatusCode *prometheus.CounterVec
	totalRequests      *prometheus.CounterVec
}

// NewMetrics registers and returns the REST demo server's metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PlanCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motionplanner",
			Name:      "plan_query_count",
			Help:      "The total number of plan/replan queries",
		}, []string{"engine"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "motionplanner",
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "path"}),
		durationSummary: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace:  "motionplanner",
			Name:       "plan_request_duration_summary_seconds",
			Help:       "The duration of requests",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}),
		responseStatusCode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motionplanner",
			Name:      "response_status_code",
			Help:      "The status code of http responses",
		}, []string{"status", "method", "path"}),
		totalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motionplanner",
			Name:      "total_requests",
			Help:      "The total number of requests",
		}, []string{"path", "method", "status"}),
	}
	reg.MustRegister(m.PlanCount, m.httpDuration, m.durationSummary, m.responseStatusCode, m.totalRequests)
	return m
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// PromeHttpMiddleware instruments every request with request duration,
// status code, and total-request counters (teacher's api/middlewares.go
// PromeHttpMiddleware, ported as-is).
func PromeHttpMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			rw := newResponseWriter(w)
			timer := prometheus.NewTimer(m.httpDuration.With(prometheus.Labels{"method": r.Method, "path": path}))
			now := time.Now()

			next.ServeHTTP(rw, r)

			statusCode := rw.statusCode
			m.responseStatusCode.With(prometheus.Labels{"status": strconv.Itoa(statusCode), "method": r.Method, "path": path}).Inc()
			m.totalRequests.With(prometheus.Labels{"path": path, "method": r.Method, "status": strconv.Itoa(statusCode)}).Inc()
			timer.ObserveDuration()
			m.durationSummary.Observe(time.Since(now).Seconds())
		})
	}
}
