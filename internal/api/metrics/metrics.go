// Package metrics defines and registers all custom Prometheus metrics for the
// filmoteka catalogue API. It is the single source of truth for metric names,
// labels, and help strings.
//
// The promauto constructors register every metric with the default Prometheus
// registry at package load time; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "filmoteka"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-token exchanges.
// Label:
//   - result: "success" or "failure"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh token exchanges, labelled by result.",
	},
	[]string{"result"},
)

// VerificationEmailsTotal counts verification emails handed to the dispatcher.
// Label:
//   - result: "sent" or "failed"
var VerificationEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_emails_total",
		Help:      "Total number of verification emails dispatched, labelled by result.",
	},
	[]string{"result"},
)

// GateDenialsTotal counts requests rejected by the authorization middleware.
// Label:
//   - reason: "missing_token", "invalid_token", "expired_token", "role", "unverified"
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of requests denied by auth middleware, labelled by reason.",
	},
	[]string{"reason"},
)

// ── Catalogue metrics ─────────────────────────────────────────────────────────

// ContentCacheTotal counts content detail cache lookups.
// Label:
//   - result: "hit" or "miss"
var ContentCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_cache_total",
		Help:      "Total number of content cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
