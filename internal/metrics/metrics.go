// Package metrics provides Prometheus metrics for the agent.
// They are exposed on /metrics by the API server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all agent metrics
	namespace = "nm_agent"
)

// Result label values.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultConfined = "confined"
)

var (
	// CommandTotal tracks external command executions
	CommandTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_total",
			Help:      "Total number of external command executions",
		},
		[]string{"command", "result"},
	)

	// CommandDuration tracks how long external commands take
	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of external command executions in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"command"},
	)

	// FactResolveTotal tracks fact resolutions by outcome
	FactResolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fact_resolve_total",
			Help:      "Total number of fact resolutions",
		},
		[]string{"fact", "result"},
	)

	// ConnectionFetchTotal tracks per-connection detail fetches of the resource reader
	ConnectionFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connection_fetch_total",
			Help:      "Total number of per-connection detail fetches",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		CommandTotal,
		CommandDuration,
		FactResolveTotal,
		ConnectionFetchTotal,
	)
}

// RecordCommand records the outcome and duration of one external command.
func RecordCommand(command string, seconds float64, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	CommandTotal.WithLabelValues(command, result).Inc()
	CommandDuration.WithLabelValues(command).Observe(seconds)
}

// RecordFact records one fact resolution.
func RecordFact(fact, result string) {
	FactResolveTotal.WithLabelValues(fact, result).Inc()
}

// RecordConnectionFetch records one per-connection detail fetch.
func RecordConnectionFetch(err error) {
	if err != nil {
		ConnectionFetchTotal.WithLabelValues(ResultFailure).Inc()
		return
	}
	ConnectionFetchTotal.WithLabelValues(ResultSuccess).Inc()
}
