// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatTurnsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_completed_total",
			Help: "Total number of chat turns completed, by outcome",
		},
		[]string{"outcome"},
	)

	ChatTurnsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_failed_total",
			Help: "Total number of chat turns that ended in an error bubble",
		},
		[]string{"error_code"},
	)

	ChatTurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_turn_duration_seconds",
			Help: "Duration of a full chat turn in seconds",
		},
		[]string{"outcome"},
	)

	EscalationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escalations_submitted_total",
			Help: "Total number of follow-up escalations handed off, by status",
		},
		[]string{"status"},
	)

	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_store_operations_total",
			Help: "Conversation store operations, by backend, op and status",
		},
		[]string{"backend", "op", "status"},
	)
)

// Turn outcome label values.
const (
	OutcomeTrusted  = "trusted"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)
