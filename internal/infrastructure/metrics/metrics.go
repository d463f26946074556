package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Agent API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opsagent",
			Subsystem: "agent_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "opsagent",
			Subsystem: "agent_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Interpretation outcomes per strategy
	InterpretationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opsagent",
			Subsystem: "agent_api",
			Name:      "interpretations_total",
			Help:      "Interpretation outcomes by strategy",
		},
		[]string{"strategy", "outcome"},
	)

	// Tool executions
	ToolExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opsagent",
			Subsystem: "agent_api",
			Name:      "tool_executions_total",
			Help:      "Tool executions by tool name and status",
		},
		[]string{"tool", "status"},
	)

	// Tool execution duration
	ToolExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "opsagent",
			Subsystem: "agent_api",
			Name:      "tool_execution_duration_seconds",
			Help:      "Tool execution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"tool"},
	)

	// Auth requests
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opsagent",
			Subsystem: "agent_api",
			Name:      "auth_requests_total",
			Help:      "Total authentication checks",
		},
		[]string{"status"},
	)

	// Registered tools gauge
	ToolsRegistered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "opsagent",
			Subsystem: "agent_api",
			Name:      "tools_registered",
			Help:      "Number of tools currently in the catalog",
		},
	)

	// Schema reloads
	SchemaReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opsagent",
			Subsystem: "agent_api",
			Name:      "schema_reloads_total",
			Help:      "Tool schema reload attempts",
		},
		[]string{"status"},
	)

	// Stored entities gauge, refreshed periodically
	EntityCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "opsagent",
			Subsystem: "agent_api",
			Name:      "entities",
			Help:      "Stored entities by kind",
		},
		[]string{"kind"},
	)
)

// RecordRequest records an HTTP request with duration
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordInterpretation records one interpretation outcome
// (matched, no_match or error)
func RecordInterpretation(strategy, outcome string) {
	InterpretationsTotal.WithLabelValues(strategy, outcome).Inc()
}

// RecordToolExecution records one tool run
func RecordToolExecution(tool, status string, durationSec float64) {
	if tool == "" {
		tool = "unknown"
	}
	ToolExecutionsTotal.WithLabelValues(tool, status).Inc()
	ToolExecutionDuration.WithLabelValues(tool).Observe(durationSec)
}

// RecordAuthRequest records an authentication check
// (allowed, denied or throttled)
func RecordAuthRequest(status string) {
	AuthRequestsTotal.WithLabelValues(status).Inc()
}

// SetToolsRegistered sets the catalog size gauge
func SetToolsRegistered(n int) {
	ToolsRegistered.Set(float64(n))
}

// RecordSchemaReload records a schema reload attempt
func RecordSchemaReload(ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	SchemaReloadsTotal.WithLabelValues(status).Inc()
}

// SetEntityCount sets the stored-entity gauge for one kind
func SetEntityCount(kind string, n int64) {
	EntityCount.WithLabelValues(kind).Set(float64(n))
}
