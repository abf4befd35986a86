package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "desuite", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "desuite", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	DemoRequestsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "desuite", Name: "demo_requests_created_total", Help: "Number of stored demo requests."},
	)
	DemoRequestsInvalid = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "desuite", Name: "demo_requests_invalid_total", Help: "Number of demo requests rejected by validation."},
	)
	StorageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "desuite", Name: "storage_failures_total", Help: "Number of failed storage operations by operation."},
		[]string{"op"},
	)
	NotificationsSent = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "desuite", Name: "notifications_sent_total", Help: "Number of operator notifications delivered."},
	)
	NotificationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "desuite", Name: "notification_failures_total", Help: "Number of operator notifications that failed."},
	)
	NotificationLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "desuite", Name: "notification_send_duration_seconds", Help: "Time taken to send operator notifications.", Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10}},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(DemoRequestsCreated)
	reg.MustRegister(DemoRequestsInvalid)
	reg.MustRegister(StorageFailures)
	reg.MustRegister(NotificationsSent)
	reg.MustRegister(NotificationFailures)
	reg.MustRegister(NotificationLatency)
}
