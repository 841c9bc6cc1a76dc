package observability

import "time"

// Observability is the facade handed to application layers.
// It groups the log sink and the metrics recorder behind one dependency.
type Observability interface {
	Logger() Logger
	Metrics() Metrics
}

// Field represents a key-value pair attached to log entries and metric observations.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Error creates an error field.
func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

// Any creates a field with any value type.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// provider is a plain Observability built from its parts.
type provider struct {
	logger  Logger
	metrics Metrics
}

// New assembles an Observability from a logger and a metrics recorder.
func New(logger Logger, metrics Metrics) Observability {
	return &provider{logger: logger, metrics: metrics}
}

func (p *provider) Logger() Logger {
	return p.logger
}

func (p *provider) Metrics() Metrics {
	return p.metrics
}
