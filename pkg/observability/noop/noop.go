package noop

import (
	"context"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
)

// Provider returns a no-op implementation of observability that has zero runtime overhead.
// Use this when you want to disable observability completely.
type Provider struct {
	logger  *noopLogger
	metrics *noopMetrics
}

// NewProvider creates a new no-op observability provider.
func NewProvider() *Provider {
	return &Provider{
		logger:  &noopLogger{},
		metrics: &noopMetrics{},
	}
}

// Logger returns a no-op logger.
func (p *Provider) Logger() observability.Logger {
	return p.logger
}

// Metrics returns a no-op metrics recorder.
func (p *Provider) Metrics() observability.Metrics {
	return p.metrics
}

type noopLogger struct{}

func (l *noopLogger) Debug(ctx context.Context, msg string, fields ...observability.Field) {}

func (l *noopLogger) Info(ctx context.Context, msg string, fields ...observability.Field) {}

func (l *noopLogger) Warn(ctx context.Context, msg string, fields ...observability.Field) {}

func (l *noopLogger) Error(ctx context.Context, msg string, fields ...observability.Field) {}

func (l *noopLogger) With(fields ...observability.Field) observability.Logger {
	return l
}

type noopMetrics struct{}

func (m *noopMetrics) Counter(name, description string, labels ...string) observability.Counter {
	return noopCounter{}
}

func (m *noopMetrics) Histogram(name, description string, labels ...string) observability.Histogram {
	return noopHistogram{}
}

type noopCounter struct{}

func (c noopCounter) Add(ctx context.Context, value int64, fields ...observability.Field) {}

func (c noopCounter) Increment(ctx context.Context, fields ...observability.Field) {}

type noopHistogram struct{}

func (h noopHistogram) Record(ctx context.Context, value float64, fields ...observability.Field) {}
