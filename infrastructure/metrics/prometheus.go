// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "satorii"

var (
	// CacheOperationsTotal tracks response cache operations.
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, expired, success, error
	//   - category: search, details, trending, channel_icon
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of response cache operations",
		},
		[]string{"operation", "status", "category"},
	)

	// UpstreamAttemptsTotal counts every HTTP attempt made against the YouTube Data API.
	// Labels:
	//   - operation: search, videos, trending, ...
	//   - result: success, empty, quota_exceeded, upstream_error, transport_error
	UpstreamAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_attempts_total",
			Help:      "Total number of upstream API attempts",
		},
		[]string{"operation", "result"},
	)

	// KeyRotationsTotal counts credential rotations triggered by quota responses.
	KeyRotationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "key_rotations_total",
			Help:      "Total number of API key rotations",
		},
	)

	// FallbacksTotal counts substitutions made by the fallback resolver.
	// Labels:
	//   - operation: related
	//   - trigger: low_yield, failure
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Total number of fallback strategy substitutions",
		},
		[]string{"operation", "trigger"},
	)

	// StreamResolutionsTotal tracks stream URL resolution per mirror.
	// Labels:
	//   - instance: mirror base URL, or "none" when every mirror failed
	//   - result: audio, video, error
	StreamResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_resolutions_total",
			Help:      "Total number of stream resolution attempts",
		},
		[]string{"instance", "result"},
	)

	// SingleflightRequestsTotal tracks collapsing of concurrent cache misses.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// HTTPRequestsTotal counts served API requests.
// Labels:
//   - route: the matched route pattern, "unmatched" otherwise
//   - method: HTTP method
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served",
	},
	[]string{"route", "method", "status"},
)

// HTTPRequestDuration observes request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusExpired = "expired"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Fallback trigger constants.
const (
	FallbackLowYield = "low_yield"
	FallbackFailure  = "failure"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
