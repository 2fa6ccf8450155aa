// Package metrics defines and registers all custom Prometheus metrics for
// the user API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at init time;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userapi"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid", "locked", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts newly created users.
// Label:
//   - role: the role name the user was created with (e.g. "client")
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by role.",
	},
	[]string{"role"},
)

// UsersDeletedTotal counts user deactivations through the delete endpoint.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deactivated.",
	},
)

// AuditEventsTotal counts persisted security audit events.
// Label:
//   - kind: the audit event kind (e.g. "suspicious_token", "login_failed")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of security audit events persisted, by kind.",
	},
	[]string{"kind"},
)
