package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles Prometheus collectors for the service.
type Metrics struct {
	Registry         *prometheus.Registry
	ToolCallsTotal   *prometheus.CounterVec
	AuthFailures     prometheus.Counter
	UpstreamRequests *prometheus.CounterVec
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	toolCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricelens_tool_calls_total",
			Help: "Total MCP tool invocations by tool name.",
		},
		[]string{"tool"},
	)
	authFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricelens_auth_failures_total",
			Help: "Total rejected bearer-token validations.",
		},
	)
	upstreamRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricelens_upstream_requests_total",
			Help: "Total shopping search requests by outcome.",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(toolCalls, authFailures, upstreamRequests)

	return &Metrics{
		Registry:         registry,
		ToolCallsTotal:   toolCalls,
		AuthFailures:     authFailures,
		UpstreamRequests: upstreamRequests,
	}
}

// IncToolCall increments the tool invocation counter.
func (m *Metrics) IncToolCall(tool string) {
	if m == nil {
		return
	}
	m.ToolCallsTotal.WithLabelValues(tool).Inc()
}

// IncAuthFailure increments the rejected validation counter.
func (m *Metrics) IncAuthFailure() {
	if m == nil {
		return
	}
	m.AuthFailures.Inc()
}

// IncUpstream increments the upstream request counter for an outcome label.
func (m *Metrics) IncUpstream(outcome string) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(outcome).Inc()
}
