// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the tenant isolation core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gadisewa_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gadisewa_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gadisewa_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gadisewa_auth_failures_total",
			Help: "Total number of failed authentication attempts",
		},
	)

	// Tenant isolation metrics. A non-zero missing-scope count means a code
	// path reached guarded data access without a tenant filter.
	TenantResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gadisewa_tenant_resolutions_total",
			Help: "Tenant resolution outcomes per request",
		},
		[]string{"outcome"}, // resolved, platform, not_found
	)

	TenantScopeMissingTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gadisewa_tenant_scope_missing_total",
			Help: "Guarded data operations attempted without a tenant filter",
		},
	)
)
