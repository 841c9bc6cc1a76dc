// Package prom implements observability.Metrics with Prometheus collectors.
package prom

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultBuckets are histogram buckets in milliseconds.
var DefaultBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// Metrics registers instruments on a Prometheus registry.
// Instruments are cached by name; asking twice for the same name returns the same collector.
type Metrics struct {
	namespace  string
	registry   *prometheus.Registry
	buckets    []float64
	mu         sync.Mutex
	counters   map[string]*counter
	histograms map[string]*histogram
}

// Option configures Metrics.
type Option func(*Metrics)

// WithBuckets overrides the histogram buckets.
func WithBuckets(buckets ...float64) Option {
	return func(m *Metrics) {
		m.buckets = buckets
	}
}

// New creates a Metrics backed by its own registry.
func New(namespace string, opts ...Option) *Metrics {
	m := &Metrics{
		namespace:  sanitize(namespace),
		registry:   prometheus.NewRegistry(),
		buckets:    DefaultBuckets,
		counters:   make(map[string]*counter),
		histograms: make(map[string]*histogram),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Counter(name, description string, labels ...string) observability.Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.counters[name]; ok {
		return c
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      sanitize(name) + "_total",
		Help:      description,
	}, labels)
	m.registry.MustRegister(vec)

	c := &counter{vec: vec, labels: labels}
	m.counters[name] = c
	return c
}

func (m *Metrics) Histogram(name, description string, labels ...string) observability.Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.histograms[name]; ok {
		return h
	}

	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      sanitize(name),
		Help:      description,
		Buckets:   m.buckets,
	}, labels)
	m.registry.MustRegister(vec)

	h := &histogram{vec: vec, labels: labels}
	m.histograms[name] = h
	return h
}

type counter struct {
	vec    *prometheus.CounterVec
	labels []string
}

func (c *counter) Add(ctx context.Context, value int64, fields ...observability.Field) {
	if value < 0 {
		return
	}
	c.vec.With(labelValues(c.labels, fields)).Add(float64(value))
}

func (c *counter) Increment(ctx context.Context, fields ...observability.Field) {
	c.Add(ctx, 1, fields...)
}

type histogram struct {
	vec    *prometheus.HistogramVec
	labels []string
}

func (h *histogram) Record(ctx context.Context, value float64, fields ...observability.Field) {
	h.vec.With(labelValues(h.labels, fields)).Observe(value)
}

// labelValues picks one value per declared label; missing labels are empty.
func labelValues(labels []string, fields []observability.Field) prometheus.Labels {
	values := make(prometheus.Labels, len(labels))
	for _, label := range labels {
		values[label] = ""
	}
	for _, f := range fields {
		if _, ok := values[f.Key]; ok {
			values[f.Key] = fmt.Sprint(f.Value)
		}
	}
	return values
}

// sanitize maps dotted or dashed names onto the Prometheus metric name alphabet.
func sanitize(name string) string {
	return strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name)
}
