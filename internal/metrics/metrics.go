package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamflow_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teamflow_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5, 20},
		},
		[]string{"method", "path"},
	)

	// Workspace metrics
	MessagesPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamflow_messages_posted_total",
			Help: "Total messages appended to rooms",
		},
		[]string{"role"}, // "user", "assistant", "system"
	)

	ActionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamflow_actions_applied_total",
			Help: "Total collaborator actions applied",
		},
		[]string{"type"},
	)

	ActionsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teamflow_actions_skipped_total",
			Help: "Total collaborator actions skipped as unrecognized",
		},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamflow_collaborator_failures_total",
			Help: "Total collaborator round-trips that failed",
		},
		[]string{"reason"}, // "timeout" or "error"
	)

	PresenceUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teamflow_presence_updates_total",
			Help: "Total presence updates applied",
		},
	)

	PermissionDenials = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teamflow_permission_denials_total",
			Help: "Total mutating operations rejected by role gating",
		},
	)
)
