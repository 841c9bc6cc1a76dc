package fake

import (
	"context"
	"sync"
	"time"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
)

// Provider implements a fake observability provider for testing purposes.
// It captures all operations so they can be inspected in tests.
type Provider struct {
	logger  *FakeLogger
	metrics *FakeMetrics
}

// NewProvider creates a new fake observability provider for testing.
func NewProvider() *Provider {
	return &Provider{
		logger:  NewFakeLogger(),
		metrics: NewFakeMetrics(),
	}
}

// Logger returns the fake logger.
func (p *Provider) Logger() observability.Logger {
	return p.logger
}

// Metrics returns the fake metrics recorder.
func (p *Provider) Metrics() observability.Metrics {
	return p.metrics
}

// FakeLogger captures all log operations for test assertions.
// Child loggers created with With share the parent's entry buffer.
type FakeLogger struct {
	mu      *sync.RWMutex
	entries *[]LogEntry
	fields  []observability.Field
}

// NewFakeLogger creates a new fake logger.
func NewFakeLogger() *FakeLogger {
	entries := make([]LogEntry, 0)
	return &FakeLogger{
		mu:      &sync.RWMutex{},
		entries: &entries,
		fields:  make([]observability.Field, 0),
	}
}

func (l *FakeLogger) Debug(ctx context.Context, msg string, fields ...observability.Field) {
	l.capture(observability.LogLevelDebug, msg, fields)
}

func (l *FakeLogger) Info(ctx context.Context, msg string, fields ...observability.Field) {
	l.capture(observability.LogLevelInfo, msg, fields)
}

func (l *FakeLogger) Warn(ctx context.Context, msg string, fields ...observability.Field) {
	l.capture(observability.LogLevelWarn, msg, fields)
}

func (l *FakeLogger) Error(ctx context.Context, msg string, fields ...observability.Field) {
	l.capture(observability.LogLevelError, msg, fields)
}

func (l *FakeLogger) capture(level observability.LogLevel, msg string, fields []observability.Field) {
	all := make([]observability.Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)

	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, LogEntry{
		Level:     level,
		Message:   msg,
		Fields:    all,
		Timestamp: time.Now(),
	})
}

// With creates a child logger with additional fields.
func (l *FakeLogger) With(fields ...observability.Field) observability.Logger {
	merged := make([]observability.Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &FakeLogger{
		mu:      l.mu,
		entries: l.entries,
		fields:  merged,
	}
}

// GetEntries returns all captured log entries (for test assertions).
func (l *FakeLogger) GetEntries() []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make([]LogEntry, len(*l.entries))
	copy(result, *l.entries)
	return result
}

// Messages returns the captured messages in emission order.
func (l *FakeLogger) Messages() []string {
	entries := l.GetEntries()
	result := make([]string, len(entries))
	for i, entry := range entries {
		result[i] = entry.Message
	}
	return result
}

// Reset clears all captured log entries.
func (l *FakeLogger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = make([]LogEntry, 0)
}

// LogEntry represents a captured log entry.
type LogEntry struct {
	Level     observability.LogLevel
	Message   string
	Fields    []observability.Field
	Timestamp time.Time
}

// Field returns the value of the last field with the given key.
func (e LogEntry) Field(key string) (any, bool) {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == key {
			return e.Fields[i].Value, true
		}
	}
	return nil, false
}

// FakeMetrics captures all metrics operations for test assertions.
type FakeMetrics struct {
	mu         sync.RWMutex
	counters   map[string]*FakeCounter
	histograms map[string]*FakeHistogram
}

// NewFakeMetrics creates a new fake metrics recorder.
func NewFakeMetrics() *FakeMetrics {
	return &FakeMetrics{
		counters:   make(map[string]*FakeCounter),
		histograms: make(map[string]*FakeHistogram),
	}
}

// Counter returns or creates a fake counter.
func (m *FakeMetrics) Counter(name, description string, labels ...string) observability.Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, exists := m.counters[name]; exists {
		return c
	}

	c := &FakeCounter{
		Name:        name,
		Description: description,
		Labels:      labels,
		values:      make([]CounterValue, 0),
	}
	m.counters[name] = c
	return c
}

// Histogram returns or creates a fake histogram.
func (m *FakeMetrics) Histogram(name, description string, labels ...string) observability.Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, exists := m.histograms[name]; exists {
		return h
	}

	h := &FakeHistogram{
		Name:        name,
		Description: description,
		Labels:      labels,
		values:      make([]HistogramValue, 0),
	}
	m.histograms[name] = h
	return h
}

// GetCounter returns a counter by name for test assertions.
func (m *FakeMetrics) GetCounter(name string) *FakeCounter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[name]
}

// GetHistogram returns a histogram by name for test assertions.
func (m *FakeMetrics) GetHistogram(name string) *FakeHistogram {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.histograms[name]
}

// FakeCounter captures counter operations.
type FakeCounter struct {
	mu          sync.RWMutex
	Name        string
	Description string
	Labels      []string
	values      []CounterValue
}

// Add captures a counter increment.
func (c *FakeCounter) Add(ctx context.Context, value int64, fields ...observability.Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, CounterValue{
		Value:     value,
		Fields:    fields,
		Timestamp: time.Now(),
	})
}

// Increment increments the counter by 1.
func (c *FakeCounter) Increment(ctx context.Context, fields ...observability.Field) {
	c.Add(ctx, 1, fields...)
}

// GetValues returns all captured values.
func (c *FakeCounter) GetValues() []CounterValue {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]CounterValue, len(c.values))
	copy(result, c.values)
	return result
}

// CounterValue represents a captured counter value.
type CounterValue struct {
	Value     int64
	Fields    []observability.Field
	Timestamp time.Time
}

// FakeHistogram captures histogram operations.
type FakeHistogram struct {
	mu          sync.RWMutex
	Name        string
	Description string
	Labels      []string
	values      []HistogramValue
}

// Record captures a histogram value.
func (h *FakeHistogram) Record(ctx context.Context, value float64, fields ...observability.Field) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.values = append(h.values, HistogramValue{
		Value:     value,
		Fields:    fields,
		Timestamp: time.Now(),
	})
}

// GetValues returns all captured values.
func (h *FakeHistogram) GetValues() []HistogramValue {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make([]HistogramValue, len(h.values))
	copy(result, h.values)
	return result
}

// HistogramValue represents a captured histogram value.
type HistogramValue struct {
	Value     float64
	Fields    []observability.Field
	Timestamp time.Time
}
