// Package metrics exposes Prometheus metrics for directory loads, filter
// passes and HTTP requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resdir"

var _ directory.Observer = (*Metrics)(nil)

// Metrics owns a private registry so tests can create as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	loads           *prometheus.CounterVec
	loadDuration    prometheus.Histogram
	records         prometheus.Gauge
	filters         *prometheus.CounterVec
	matched         prometheus.Histogram
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates Metrics with Go runtime and process collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Dataset loads by outcome.",
		}, []string{"state"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time spent loading the dataset.",
			Buckets:   prometheus.DefBuckets,
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Number of records in the loaded dataset.",
		}),
		filters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_passes_total",
			Help:      "Filter passes by category match mode.",
		}, []string{"mode"}),
		matched: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filter_matched_records",
			Help:      "Records matched per filter pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.loads, m.loadDuration, m.records,
		m.filters, m.matched,
		m.requests, m.requestDuration,
	)
	return m
}

// ObserveLoad records the outcome of the initial dataset load.
func (m *Metrics) ObserveLoad(state directory.State, records int, d time.Duration) {
	m.loads.WithLabelValues(state.String()).Inc()
	m.loadDuration.Observe(d.Seconds())
	m.records.Set(float64(records))
}

// ObserveFilter records one filter pass.
func (m *Metrics) ObserveFilter(mode directory.MatchMode, matched int) {
	m.filters.WithLabelValues(mode.String()).Inc()
	m.matched.Observe(float64(matched))
}

// ObserveRequest records one HTTP request. route should be the router
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
