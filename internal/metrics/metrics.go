// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	filterRuns   *prometheus.CounterVec
	markersBuilt *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aterbruk_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aterbruk_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		filterRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aterbruk_filter_runs_total",
			Help: "Filter pipeline passes by map.",
		}, []string{"map"}),
		markersBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aterbruk_markers_built_total",
			Help: "Markers produced by projection, by map.",
		}, []string{"map"}),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.filterRuns,
		c.markersBuilt,
	)

	return c
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (c *Collector) RecordFilterRun(mapName string) {
	c.filterRuns.WithLabelValues(mapName).Inc()
}

func (c *Collector) RecordMarkersBuilt(mapName string, count int) {
	c.markersBuilt.WithLabelValues(mapName).Add(float64(count))
}

// Handler serves the scrape endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
