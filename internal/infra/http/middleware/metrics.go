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

	leadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_leads_created_total",
			Help: "Total number of leads created in the pipeline",
		},
	)

	stageMoves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_moves_total",
			Help: "Total number of committed stage moves",
		},
		[]string{"from_stage", "to_stage"},
	)

	paymentsConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_payments_confirmed_total",
			Help: "Total number of confirmed payments (deals won)",
		},
	)

	moveConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_move_conflicts_total",
			Help: "Total number of stage moves rejected by concurrent modification",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadCreated() {
	leadsCreated.Inc()
}

func RecordStageMove(fromStage, toStage string) {
	stageMoves.WithLabelValues(fromStage, toStage).Inc()
}

func RecordPaymentConfirmation() {
	paymentsConfirmed.Inc()
}

func RecordMoveConflict() {
	moveConflicts.Inc()
}
