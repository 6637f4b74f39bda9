// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tiptrip"

type Registry struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	datesInserted   prometheus.Counter
	datesDeleted    prometheus.Counter
	backfilled      prometheus.Counter
	settlementLines prometheus.Counter
}

func New() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method, route pattern and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		datesInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dates",
			Name:      "inserted_total",
			Help:      "Trip date rows inserted by generation and reconciliation.",
		}),
		datesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dates",
			Name:      "deleted_total",
			Help:      "Trip date rows deleted by reconciliation.",
		}),
		backfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "availability",
			Name:      "backfilled_total",
			Help:      "Unset availability rows created for new members.",
		}),
		settlementLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlements",
			Name:      "lines_total",
			Help:      "Settlement lines returned to clients.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests,
		r.duration,
		r.datesInserted,
		r.datesDeleted,
		r.backfilled,
		r.settlementLines,
	)
	return r
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	r.requests.WithLabelValues(method, route, code).Inc()
	r.duration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
}

func (r *Registry) DatesInserted(n int) {
	if n > 0 {
		r.datesInserted.Add(float64(n))
	}
}

func (r *Registry) DatesDeleted(n int) {
	if n > 0 {
		r.datesDeleted.Add(float64(n))
	}
}

func (r *Registry) AvailabilityBackfilled(n int) {
	if n > 0 {
		r.backfilled.Add(float64(n))
	}
}

func (r *Registry) SettlementsComputed(n int) {
	if n > 0 {
		r.settlementLines.Add(float64(n))
	}
}
