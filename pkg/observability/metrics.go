package observability

import "context"

// Metrics provides application metrics capabilities.
//
// Label names are fixed when an instrument is created. At record time, fields whose
// key matches a label name supply that label's value; other fields are ignored.
type Metrics interface {
	// Counter returns a counter metric instrument.
	Counter(name, description string, labels ...string) Counter

	// Histogram returns a histogram metric instrument.
	Histogram(name, description string, labels ...string) Histogram
}

// Counter is a monotonically increasing metric.
type Counter interface {
	// Add increments the counter by the given value with optional attributes.
	Add(ctx context.Context, value int64, fields ...Field)

	// Increment increments the counter by 1 with optional attributes.
	Increment(ctx context.Context, fields ...Field)
}

// Histogram records a distribution of values.
type Histogram interface {
	// Record adds a value to the histogram with optional attributes.
	Record(ctx context.Context, value float64, fields ...Field)
}
