// Package metrics exposes Prometheus counters for the auth flows and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"bookmarks/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookmarks"

// Collector implements service.AuthMetrics and records per-request HTTP metrics.
type Collector struct {
	signups        *prometheus.CounterVec
	signins        *prometheus.CounterVec
	tokensRejected prometheus.Counter
	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

var _ service.AuthMetrics = (*Collector)(nil)

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// NewCollector creates the collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Signup attempts by outcome.",
		}, []string{"outcome"}),
		signins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signins_total",
			Help:      "Signin attempts by outcome.",
		}, []string{"outcome"}),
		tokensRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_rejected_total",
			Help:      "Bearer tokens that failed verification or resolution.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(c.signups, c.signins, c.tokensRejected, c.requests, c.latency)

	return c
}

func (c *Collector) RecordSignup(outcome string) {
	c.signups.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordSignin(outcome string) {
	c.signins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordTokenRejected() {
	c.tokensRejected.Inc()
}

// RecordRequest stores one finished HTTP request. route is the registered
// path pattern, not the raw URL, to keep label cardinality bounded.
func (c *Collector) RecordRequest(method, route string, statusCode int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
