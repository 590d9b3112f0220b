// Package metrics defines and registers the portal's custom Prometheus
// metrics. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookeasy_portal"

// UpstreamRequestsTotal counts calls made to the booking backend.
// Labels:
//   - operation: the typed client method (e.g. "login", "approve_booking")
//   - outcome: "ok", "rejected" (backend returned an error payload), or
//     "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the booking backend.",
	},
	[]string{"operation", "outcome"},
)

// UpstreamRequestDuration measures how long a single backend call takes.
// Label:
//   - operation: the typed client method
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of booking backend calls from request to decode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// SessionsStartedTotal counts successful logins and registrations.
// Label:
//   - via: "login" or "register"
var SessionsStartedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of sessions established, by entry point.",
	},
	[]string{"via"},
)
