// Package metrics provides Prometheus metrics for the console dev server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the dev server's metrics and the registry they live in.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	proxyRequests       *prometheus.CounterVec
	proxyDuration       *prometheus.HistogramVec
	proxyUpstreamErrors *prometheus.CounterVec
	consoleRequests     *prometheus.CounterVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers the metrics on registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "eduadmin",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)

	m.proxyRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "devproxy",
			Name:      "requests_total",
			Help:      "Requests forwarded by the dev proxy by prefix and status class",
		},
		[]string{"prefix", "status"},
	)

	m.proxyDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "devproxy",
			Name:      "request_duration_seconds",
			Help:      "Round trip time through the dev proxy",
			Buckets:   m.histogramBuckets,
		},
		[]string{"prefix"},
	)

	m.proxyUpstreamErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "devproxy",
			Name:      "upstream_errors_total",
			Help:      "Requests the dev proxy could not deliver upstream",
		},
		[]string{"prefix"},
	)

	m.consoleRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "console",
			Name:      "requests_total",
			Help:      "Requests served by the console endpoints",
		},
		[]string{"method", "status"},
	)

	return m
}

func (m *Manager) RecordProxyRequest(prefix string, status int, elapsed time.Duration) {
	m.proxyRequests.WithLabelValues(prefix, StatusClass(status)).Inc()
	m.proxyDuration.WithLabelValues(prefix).Observe(elapsed.Seconds())
}

func (m *Manager) RecordUpstreamError(prefix string) {
	m.proxyUpstreamErrors.WithLabelValues(prefix).Inc()
}

func (m *Manager) RecordConsoleRequest(method string, status int) {
	m.consoleRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StatusClass maps 204 to "2xx"; anything outside 100-599 is "unknown".
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
