package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docshare", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docshare", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	DocumentOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docshare", Name: "document_operations_total", Help: "Document service operations by operation and outcome."},
		[]string{"op", "outcome"},
	)
	DocumentOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "docshare", Name: "document_operation_duration_seconds", Help: "Latency of document service operations.", Buckets: prometheus.DefBuckets},
		[]string{"op"},
	)
)

// Outcome labels for DocumentOps.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(DocumentOps)
	reg.MustRegister(DocumentOpDuration)
}
