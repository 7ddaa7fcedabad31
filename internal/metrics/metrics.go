// Package metrics exposes Prometheus counters for the HTTP surface and the
// view caches.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service registers.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	bundleReloads   prometheus.Counter
}

// New registers the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eldir_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eldir_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eldir_cache_hits_total",
			Help: "View cache hits by tier.",
		}, []string{"tier"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eldir_cache_misses_total",
			Help: "View cache misses by tier.",
		}, []string{"tier"}),
		bundleReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eldir_bundle_reloads_total",
			Help: "Dataset bundle invalidations.",
		}),
	}
	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.cacheHits,
		m.cacheMisses,
		m.bundleReloads,
	)
	return m
}

// CacheHit records a hit on a cache tier ("lru", "redis"). Recorders accept a
// nil receiver so callers without metrics wired can skip the nil checks.
func (m *Metrics) CacheHit(tier string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(tier).Inc()
}

// CacheMiss records a miss on a cache tier.
func (m *Metrics) CacheMiss(tier string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(tier).Inc()
}

// BundleReload records a dataset invalidation.
func (m *Metrics) BundleReload() {
	if m == nil {
		return
	}
	m.bundleReloads.Inc()
}

// Middleware instruments every request. The route label uses the matched
// pattern, not the raw path, to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
