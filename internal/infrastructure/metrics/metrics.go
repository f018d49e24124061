package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MCP search server metrics - using explicit registration
var (
	// Request counters
	RequestsTotal *prometheus.CounterVec

	// Tool call counters
	ToolCallsTotal *prometheus.CounterVec

	// Tool duration histogram
	ToolDuration *prometheus.HistogramVec

	// External provider latency
	UpstreamLatency *prometheus.HistogramVec
)

func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mcp",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total number of MCP requests",
		},
		[]string{"method", "status"},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mcp",
			Subsystem: "search",
			Name:      "tool_calls_total",
			Help:      "Total tool invocations",
		},
		[]string{"tool_name", "status"},
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mcp",
			Subsystem: "search",
			Name:      "tool_duration_seconds",
			Help:      "Tool execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"tool_name"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mcp",
			Subsystem: "search",
			Name:      "upstream_latency_seconds",
			Help:      "Upstream provider response time in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"operation"},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ToolCallsTotal)
	prometheus.MustRegister(ToolDuration)
	prometheus.MustRegister(UpstreamLatency)
}

// RecordRequest records an MCP request
func RecordRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordToolCall records a tool invocation
func RecordToolCall(toolName, status string, durationSec float64) {
	if status == "" {
		status = "unknown"
	}
	ToolCallsTotal.WithLabelValues(toolName, status).Inc()
	ToolDuration.WithLabelValues(toolName).Observe(durationSec)
}

// RecordUpstreamLatency records provider response time per operation
func RecordUpstreamLatency(operation string, durationSec float64) {
	UpstreamLatency.WithLabelValues(operation).Observe(durationSec)
}
