package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service's Prometheus metrics behind its own
// registry so tests can build throwaway instances.
type Registry struct {
	reg *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec
	CacheHits        *prometheus.CounterVec
	CacheMisses      *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insider_upstream_requests_total",
				Help: "Upstream API requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insider_cache_hits_total",
				Help: "Cache hits by query kind",
			},
			[]string{"kind"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insider_cache_misses_total",
				Help: "Cache misses by query kind",
			},
			[]string{"kind"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "insider_http_request_duration_seconds",
				Help:    "Inbound request duration by route and status",
				Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"route", "status"},
		),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		r.UpstreamRequests,
		r.CacheHits,
		r.CacheMisses,
		r.RequestDuration,
	)
	return r
}

// Handler serves the registry in Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveRequest records one inbound request.
func (r *Registry) ObserveRequest(route, status string, d time.Duration) {
	r.RequestDuration.WithLabelValues(route, status).Observe(d.Seconds())
}
