// Package metrics defines and registers the custom Prometheus metrics of the
// directory API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry on import.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/medilink/directory/internal/core/domain"
)

const namespace = "directory"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Labels:
//   - outcome: "success", "invalid_credentials" or "storage_error"
//   - role: the resolved role, or "none" when the attempt failed
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome and resolved role.",
	},
	[]string{"outcome", "role"},
)

// LoginDuration measures credential resolution plus session write.
// Label:
//   - outcome: as for LoginAttemptsTotal
var LoginDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login attempts.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// ProfileIntegrityViolationsTotal counts doctor credentials that matched but
// had no profile.
var ProfileIntegrityViolationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_integrity_violations_total",
		Help:      "Total number of matching doctor credentials whose profile was missing.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LogoutsTotal counts explicit logouts.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests served.",
	},
)

// ExternalAdoptionsTotal counts guest sessions opened from provider tokens.
// Label:
//   - provider: the sign-in provider named in the token, or "unknown"
var ExternalAdoptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_adoptions_total",
		Help:      "Total number of external identities adopted as guest sessions.",
	},
	[]string{"provider"},
)

// ── Credential metrics ────────────────────────────────────────────────────────

// SecretChangesTotal counts doctor secret change requests.
// Label:
//   - result: "changed", "rejected" or "error"
var SecretChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "secret_changes_total",
		Help:      "Total number of doctor secret change requests, by result.",
	},
	[]string{"result"},
)

// Successful logins are pre-seeded for every role so dashboards see zero
// series before the first sign-in.
func init() {
	for _, r := range domain.Roles() {
		LoginAttemptsTotal.WithLabelValues(string(domain.OutcomeSuccess), r.String())
	}
}

// ObserveLogin records one login attempt that started at start.
func ObserveLogin(err error, role domain.Role, start time.Time) {
	outcome := string(domain.OutcomeOf(err))
	roleLabel := role.String()
	if err != nil || roleLabel == "" {
		roleLabel = "none"
	}
	LoginAttemptsTotal.WithLabelValues(outcome, roleLabel).Inc()
	LoginDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

// RecordOrphanedCredential is suitable as a resolver orphan hook.
func RecordOrphanedCredential(domain.DoctorID) {
	ProfileIntegrityViolationsTotal.Inc()
}
