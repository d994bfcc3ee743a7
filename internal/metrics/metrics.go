// Package metrics holds the Prometheus collectors for the rigcheck service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rigcheck"

// Metrics is one set of collectors registered on its own registry, so
// several servers (and tests) can coexist in a process.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	evaluations  *prometheus.CounterVec
	issues       *prometheus.CounterVec
	savedBuilds  prometheus.Counter
}

// New creates and registers the collectors. sessions reports the number
// of live sessions at scrape time; it may be nil.
func New(sessions func() int) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}, []string{"method", "path"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compat",
			Name:      "evaluations_total",
			Help:      "Total number of build evaluations by outcome.",
		}, []string{"outcome"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compat",
			Name:      "issues_total",
			Help:      "Total number of compatibility issues reported, by rule.",
		}, []string{"rule"}),
		savedBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gallery",
			Name:      "saved_builds_total",
			Help:      "Total number of builds saved to the gallery.",
		}),
	}

	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.evaluations,
		m.issues,
		m.savedBuilds,
		prometheus.NewGoCollector(),
	)

	if sessions != nil {
		m.Registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "live",
			Help:      "Number of build sessions currently held in memory.",
		}, func() float64 { return float64(sessions()) }))
	}
	return m
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// StartRequest marks a request in flight and returns the function that
// records its completion.
func (m *Metrics) StartRequest() func(method, path, status string, d time.Duration) {
	m.httpInFlight.Inc()
	return func(method, path, status string, d time.Duration) {
		m.httpInFlight.Dec()
		m.httpRequests.WithLabelValues(method, path, status).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
	}
}

// RecordEvaluation counts one evaluation and the rules that fired.
func (m *Metrics) RecordEvaluation(rules []string) {
	outcome := "valid"
	if len(rules) > 0 {
		outcome = "issues"
	}
	m.evaluations.WithLabelValues(outcome).Inc()
	for _, r := range rules {
		m.issues.WithLabelValues(r).Inc()
	}
}

// RecordSavedBuild counts one build saved to the gallery.
func (m *Metrics) RecordSavedBuild() {
	m.savedBuilds.Inc()
}
