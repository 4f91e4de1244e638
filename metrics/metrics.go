package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeQueued    = "queued"
	OutcomeDelivered = "delivered"
	OutcomeError     = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicebook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "servicebook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "servicebook_bookings_created_total",
			Help: "Total number of bookings created",
		},
	)

	SchedulingConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicebook_scheduling_conflicts_total",
			Help: "Create or reschedule attempts refused because the slot was taken",
		},
		[]string{"operation"},
	)

	StatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicebook_status_transitions_total",
			Help: "Booking status transitions",
		},
		[]string{"from", "to"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicebook_notifications_total",
			Help: "Notification events by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	SweepProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicebook_sweep_processed_total",
			Help: "Bookings touched by periodic sweeps",
		},
		[]string{"sweep"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated() {
	BookingsCreatedTotal.Inc()
}

func RecordConflict(operation string) {
	SchedulingConflictsTotal.WithLabelValues(operation).Inc()
}

func RecordTransition(from, to string) {
	StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordNotification(kind, outcome string) {
	NotificationsTotal.WithLabelValues(kind, outcome).Inc()
}

func RecordSweep(sweep string, n int) {
	SweepProcessedTotal.WithLabelValues(sweep).Add(float64(n))
}
