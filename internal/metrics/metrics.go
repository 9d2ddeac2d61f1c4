// Package metrics defines and registers the Prometheus metrics of the Curato
// client. It is the single source of truth for metric names, labels, and help
// strings.
//
// Metrics register with the default Prometheus registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "curato_client"

// ── HTTP client metrics ───────────────────────────────────────────────────────

// RequestsTotal counts outbound backend requests.
// Labels:
//   - method: HTTP method
//   - outcome: status class ("2xx", "4xx", "5xx") or "network" / "request"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of backend requests, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// RequestDuration measures backend round-trip time.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of backend requests from send to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// SessionExpiredTotal counts 401 responses that reset the session.
var SessionExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expired_total",
		Help:      "Total number of session resets caused by a 401 on a non-login endpoint.",
	},
)

// ── Collection cache metrics ──────────────────────────────────────────────────

// CacheRefreshTotal counts full-list refreshes.
// Label:
//   - result: "ok" or "error" (the cache degraded to empty)
var CacheRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_refresh_total",
		Help:      "Total number of collection cache refreshes, by result.",
	},
	[]string{"result"},
)

// CacheSize tracks the number of collections currently cached.
var CacheSize = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_collections",
		Help:      "Current number of collections held in the local cache.",
	},
)

// StatusClass maps an HTTP status to its "Nxx" label.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
