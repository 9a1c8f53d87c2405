package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Invocation outcomes.
const (
	OutcomeReply          = "reply"
	OutcomeFallback       = "fallback"
	OutcomeTransportError = "transport_error"
)

var (
	once sync.Once

	// InvocationsTotal counts model invocations by mode and outcome.
	InvocationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chat",
		Subsystem: "model",
		Name:      "invocations_total",
		Help:      "Total number of model invocations, labeled by outcome.",
	}, []string{"outcome"})

	// InvocationDurationSeconds is the time spent in the transport call.
	InvocationDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chat",
		Subsystem: "model",
		Name:      "invocation_duration_seconds",
		Help:      "Time spent waiting on the model provider, labeled by outcome.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"outcome"})

	// FallbackReasonsTotal counts response shape anomalies that degraded to the fallback reply.
	FallbackReasonsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chat",
		Subsystem: "model",
		Name:      "fallback_reasons_total",
		Help:      "Total number of fallback replies, labeled by anomaly reason.",
	}, []string{"reason"})

	// ChatRequestsTotal counts chat requests by mode.
	ChatRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chat",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total number of chat requests, labeled by mode (direct, with_doc).",
	}, []string{"mode"})
)

// Register registers chat metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			InvocationsTotal,
			InvocationDurationSeconds,
			FallbackReasonsTotal,
			ChatRequestsTotal,
		)
	})
}
