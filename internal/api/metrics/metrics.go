// Package metrics defines and registers all custom Prometheus metrics for
// the member system. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics registered through promauto attach to the default registry at
// package initialisation; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "member_system"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by active mode and outcome.
// Labels:
//   - mode: "standard" or "dual"
//   - outcome: "success", "legacy_success", or "denied"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by auth mode and outcome.",
	},
	[]string{"mode", "outcome"},
)

// ── Migration metrics ─────────────────────────────────────────────────────────

// MigrationsTotal counts single migration attempts by result.
// Label:
//   - result: "migrated", "not_found", "already_migrated", "not_dual_mode", "error"
var MigrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "migrations_total",
		Help:      "Total number of legacy member migrations attempted, by result.",
	},
	[]string{"result"},
)

// MigrationBatchSize observes the number of identifiers per batch request.
var MigrationBatchSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "migration_batch_size",
		Help:      "Number of identifiers submitted per batch migration.",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000},
	},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditEventsTotal counts audit events leaving the dispatcher.
// Labels:
//   - kind: "login" or "migration"
//   - result: "recorded" or "error"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events processed, by kind and result.",
	},
	[]string{"kind", "result"},
)

// AuditQueueDepth tracks the number of events pending in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
