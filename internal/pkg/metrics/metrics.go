// Package metrics holds the Prometheus collectors of the service
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "wanderlust"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	// Model calls by flow (suggest, brief) and outcome (success, error, rejected)
	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Total number of model calls",
		},
		[]string{"flow", "outcome"},
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "call_duration_seconds",
			Help:      "Model call duration in seconds, retries included",
			Buckets:   []float64{.25, .5, 1, 2, 5, 10, 20, 40, 60},
		},
		[]string{"flow"},
	)

	LLMRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "retries_total",
			Help:      "Total number of retried model calls",
		},
		[]string{"flow"},
	)

	// 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "circuit_breaker_state",
			Help:      "Model provider circuit breaker state",
		},
		[]string{"name"},
	)

	SuggestionsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "suggestion",
			Name:      "destinations_count",
			Help:      "Number of destinations returned per suggestion request",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8, 10},
		},
	)

	BriefCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "details",
			Name:      "cache_lookups_total",
			Help:      "Destination brief cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	HistoryOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "operations_total",
			Help:      "History store operations by kind and status",
		},
		[]string{"operation", "status"},
	)

	QuestionnaireSessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "questionnaire",
			Name:      "sessions_started_total",
			Help:      "Questionnaire sessions started by front-end",
		},
		[]string{"frontend"},
	)

	TelegramUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telegram",
			Name:      "updates_total",
			Help:      "Telegram updates processed by kind and status",
		},
		[]string{"kind", "status"},
	)
)

// StatusLabel folds an error into a status label
func StatusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
