// Package metrics defines and registers the console's custom Prometheus
// metrics. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default registry at package init through
// promauto and exposed by the console's /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin"

// ── Gateway metrics ──────────────────────────────────────────────────────────

// GatewayRequestsTotal counts backend requests by outcome.
// Labels:
//   - method: HTTP method (e.g. "GET")
//   - outcome: "ok" or a failure kind (e.g. "unauthorized", "timeout")
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Total number of backend requests, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// GatewayRequestDuration measures the round trip of a backend request.
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Duration of backend requests from dispatch to decoded payload.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// GatewaySignOutsTotal counts sign-outs triggered by a 401 from the backend.
// Several in-flight requests may each report one for a single transition.
var GatewaySignOutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "signouts_total",
		Help:      "Total number of sign-outs requested after credential rejection.",
	},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session status transitions.
// Labels:
//   - from, to: "resolving", "authenticated" or "anonymous"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "transitions_total",
		Help:      "Total number of session status transitions.",
	},
	[]string{"from", "to"},
)

// SignInAttemptsTotal counts sign-in attempts.
// Label:
//   - result: "success", "refused" (non-admin) or "failed"
var SignInAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "signin_attempts_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)
