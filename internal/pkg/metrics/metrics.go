// Package metrics defines and registers all custom Prometheus metrics for the
// notification service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto; the HTTP layer exposes them at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notifeed"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthOperationsTotal counts authentication outcomes.
// Labels:
//   - operation: "register", "login" or "refresh"
//   - result: "success", "invalid", "conflict", "denied", "expired" or "reused"
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of authentication operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// PasswordHashDuration measures time spent inside bcrypt, excluding queueing.
// Label:
//   - operation: "hash" or "verify"
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of a single bcrypt hash or verify call.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// HashQueueDepth tracks jobs waiting for a free hashing worker.
var HashQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_queue_depth",
		Help:      "Current number of password hashing jobs waiting for a worker.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsCreatedTotal counts stored notifications.
// Label:
//   - type: "like", "comment" or "repost"
var NotificationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notifications created, by type.",
	},
	[]string{"type"},
)

// NotificationsDeletedTotal counts notifications removed by their owner.
var NotificationsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_deleted_total",
		Help:      "Total number of notifications deleted.",
	},
)
