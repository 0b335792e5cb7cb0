package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Capture Metrics
	CapturesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_captures_total",
			Help: "Total number of tasks created, by capture mode",
		},
		[]string{"mode"}, // quick, bulk, composer
	)

	StatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_status_transitions_total",
			Help: "Total number of task status changes",
		},
		[]string{"from", "to"},
	)

	RolloversTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_recurrence_rollovers_total",
			Help: "Total number of recurring tasks rolled forward on completion",
		},
		[]string{"recurrence"},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type", "reason"}, // database, validation, auth
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackCapture counts tasks created through a capture mode.
func TrackCapture(mode string, count int) {
	CapturesTotal.WithLabelValues(mode).Add(float64(count))
}

func TrackStatusTransition(from, to string) {
	StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

func TrackRollover(recurrence string) {
	RolloversTotal.WithLabelValues(recurrence).Inc()
}

// TrackError increments the error counter by type
func TrackError(errorType, reason string) {
	ErrorsTotal.WithLabelValues(errorType, reason).Inc()
}
