package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hamedsh/agentchat/internal/agent"
)

var (
	chatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentchat_chat_requests_total",
		Help: "Chat requests by mode and transport.",
	}, []string{"mode", "stream"})

	chatEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentchat_stream_events_total",
		Help: "Events emitted on chat streams by type.",
	}, []string{"type"})

	toolExecutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentchat_tool_executions_total",
		Help: "Tool executions by tool name and outcome.",
	}, []string{"tool", "outcome"})

	activeStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agentchat_active_streams",
		Help: "Currently open SSE chat streams.",
	})
)

// recordEvent counts a chat event, plus the per-tool outcome when it
// reports a tool execution.
func recordEvent(ev agent.Event) {
	chatEventsTotal.WithLabelValues(ev.Type).Inc()
	switch ev.Type {
	case agent.EventToolResult:
		toolExecutionsTotal.WithLabelValues(ev.ToolName, "ok").Inc()
	case agent.EventToolError:
		toolExecutionsTotal.WithLabelValues(ev.ToolName, "error").Inc()
	}
}
