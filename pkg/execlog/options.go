package execlog

import (
	"time"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
	"github.com/oklog/ulid/v2"
)

var defaultSettings = settings{
	now:   time.Now,
	newID: func() string { return ulid.Make().String() },
}

type (
	// Option configures a Tracer.
	Option   func(s settings) settings
	settings struct {
		now     func() time.Time
		newID   func() string
		metrics observability.Metrics
		hooks   []func(Record)
	}
)

// WithClock replaces time.Now. Durations are clamped to zero if the clock runs backwards.
func WithClock(now func() time.Time) Option {
	return func(s settings) settings {
		s.now = now
		return s
	}
}

// WithIDGenerator replaces the ULID generator used for Record.ID.
func WithIDGenerator(newID func() string) Option {
	return func(s settings) settings {
		s.newID = newID
		return s
	}
}

// WithMetrics records a call counter and a duration histogram per operation.
func WithMetrics(metrics observability.Metrics) Option {
	return func(s settings) settings {
		s.metrics = metrics
		return s
	}
}

// WithRecordHook registers fn to receive every completed Record.
// Hooks run synchronously on the calling goroutine, after the last log line.
func WithRecordHook(fn func(Record)) Option {
	return func(s settings) settings {
		s.hooks = append(s.hooks[:len(s.hooks):len(s.hooks)], fn)
		return s
	}
}
