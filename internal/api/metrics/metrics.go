// Package metrics defines the custom Prometheus metrics of the storefront
// API. HTTP request metrics come from echoprometheus; the counters here
// cover domain outcomes.
//
// All metrics are registered with the default registry via promauto on
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login outcomes.
// Labels:
//   - kind: "register" or "login"
//   - result: "success", "validation", "conflict", "invalid_credentials" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"kind", "result"},
)

// RateLimitedTotal counts requests rejected by a rate limiter.
// Label:
//   - scope: limiter scope (e.g. "auth")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by rate limiting.",
	},
	[]string{"scope"},
)

// AuditEventsDroppedTotal counts auth events discarded because the audit
// queue was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of auth audit events dropped on a full queue.",
	},
)

// ── Storefront metrics ────────────────────────────────────────────────────────

// ContactMessagesTotal counts stored contact form submissions.
var ContactMessagesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact messages stored.",
	},
)

// ProductQueryDuration measures product listing latency, table ensure included.
// Label:
//   - result: "ok" or "error"
var ProductQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "product_query_duration_seconds",
		Help:      "Duration of product listing queries.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
