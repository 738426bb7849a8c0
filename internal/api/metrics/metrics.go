// Package metrics defines and registers the Prometheus metrics of the user
// service. It is the single source of truth for metric names, labels and help
// strings. Metrics are registered with the default registry on import.
package metrics

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", or the error kind on failure (e.g. "unauthenticated")
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed tokens.
// Label:
//   - flow: "login", "register" or "check_token"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued, by flow.",
	},
	[]string{"flow"},
)

// GuardDenialsTotal counts requests rejected by an access guard.
// Labels:
//   - stage: "authenticated", "role" or "role_or_owner"
//   - kind: the error kind returned by the guard
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests denied by an access guard.",
	},
	[]string{"stage", "kind"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

var httpMiddleware = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 namespace,
		Subsystem:                 "http",
		DoNotUseRequestPathFor404: true,
	})
})

// HTTPMiddleware records users_http_requests_total, request duration and
// request/response sizes labelled by code, method, host and route template
// ("url"). The collectors are registered once per process, so every router
// built in the same process shares them.
func HTTPMiddleware() echo.MiddlewareFunc {
	return httpMiddleware()
}

// Handler serves the default registry.
func Handler() echo.HandlerFunc {
	return echoprometheus.NewHandler()
}
