// Package metrics defines and registers all custom Prometheus metrics for the
// studio API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studio"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts credential checks.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests refused by the auth layer.
// Label:
//   - reason: "unauthenticated", "forbidden" or "inactive"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ── Lead metrics ──────────────────────────────────────────────────────────────

// LeadsCapturedTotal counts public submissions.
// Labels:
//   - kind: "booking" or "contact"
//   - result: "created" or "replayed"
var LeadsCapturedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_captured_total",
		Help:      "Total number of bookings and contact messages received from the public forms.",
	},
	[]string{"kind", "result"},
)

// StatusChangesTotal counts admin status updates.
// Labels:
//   - resource: "booking" or "contact"
//   - status: the status that was set
var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Total number of booking and contact status updates.",
	},
	[]string{"resource", "status"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityRecordedTotal counts audit entries persisted, by action.
var ActivityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of audit entries persisted.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts audit entries that were lost.
// Label:
//   - reason: "queue_full" or "insert_failed"
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of audit entries that could not be recorded.",
	},
	[]string{"reason"},
)

// ActivityQueueDepth tracks pending entries in each dispatcher worker channel.
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures persistence time of a single entry.
var ActivityProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of audit entry persistence from dequeue to insert.",
		Buckets:   prometheus.DefBuckets,
	},
)
