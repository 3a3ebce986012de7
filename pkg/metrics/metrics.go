// Package metrics holds the service's Prometheus registry and collectors.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/filevault/pkg/auth"
	"github.com/dmitrymomot/filevault/pkg/files"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "filevault"

// Operation results recorded by RecordOperation.
const (
	ResultOK                 = "ok"
	ResultInvalidFileType    = "invalid_file_type"
	ResultNotFound           = "not_found"
	ResultForbidden          = "forbidden"
	ResultSigningUnavailable = "signing_unavailable"
	ResultNoFiles            = "no_files"
	ResultUnauthenticated    = "unauthenticated"
	ResultError              = "error"
)

// Metrics owns a private registry with HTTP and file-operation collectors.
type Metrics struct {
	reg        *prometheus.Registry
	inflight   prometheus.Gauge
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	operations *prometheus.CounterVec
}

// New creates Metrics under namespace, or DefaultNamespace when empty.
// Go runtime and process collectors are registered too.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reg: reg,
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of inflight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests, partitioned by status code, method and route.",
		}, []string{"code", "method", "route"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Histogram of HTTP request latencies.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code", "method", "route"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "files",
			Name:      "operations_total",
			Help:      "Total number of file operations, partitioned by operation and result.",
		}, []string{"op", "result"}),
	}

	reg.MustRegister(
		m.inflight,
		m.requests,
		m.latency,
		m.operations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// TrackInflight increments the inflight gauge and returns the matching decrement.
func (m *Metrics) TrackInflight() func() {
	m.inflight.Inc()
	return m.inflight.Dec
}

// ObserveRequest records one finished HTTP request.
// route should be the matched pattern, not the raw path.
func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c := strconv.Itoa(code)
	m.requests.WithLabelValues(c, method, route).Inc()
	m.latency.WithLabelValues(c, method, route).Observe(elapsed.Seconds())
}

// RecordOperation counts a file operation by its outcome.
func (m *Metrics) RecordOperation(op string, err error) {
	m.operations.WithLabelValues(op, Result(err)).Inc()
}

// Result classifies err into a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, files.ErrInvalidFileType):
		return ResultInvalidFileType
	case errors.Is(err, files.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, files.ErrForbidden):
		return ResultForbidden
	case errors.Is(err, files.ErrSigningUnavailable):
		return ResultSigningUnavailable
	case errors.Is(err, files.ErrNoFiles):
		return ResultNoFiles
	case errors.Is(err, auth.ErrUnauthenticated):
		return ResultUnauthenticated
	default:
		return ResultError
	}
}

var _ files.Recorder = (*Metrics)(nil)
