package execlog

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
)

// Invocation performs the real work of a traced operation.
type Invocation func(ctx context.Context) (any, error)

// Tracer logs the execution of operations. It holds no per-call state and is
// safe for concurrent use.
type Tracer struct {
	logger    observability.Logger
	now       func() time.Time
	newID     func() string
	hooks     []func(Record)
	calls     observability.Counter
	durations observability.Histogram
}

// New creates a Tracer writing to logger.
func New(logger observability.Logger, options ...Option) *Tracer {
	s := defaultSettings
	for _, option := range options {
		s = option(s)
	}

	t := &Tracer{
		logger: logger,
		now:    s.now,
		newID:  s.newID,
		hooks:  s.hooks,
	}

	if s.metrics != nil {
		t.calls = s.metrics.Counter("execlog.calls", "Traced operation calls", "operation", "outcome")
		t.durations = s.metrics.Histogram("execlog.duration_milliseconds", "Traced operation duration in milliseconds", "operation", "outcome")
	}

	return t
}

// Trace runs invoke as the operation named operation, logging its start and
// its outcome. The value and error from invoke are returned unchanged; a panic
// in invoke is logged and re-raised with the same value.
func (t *Tracer) Trace(ctx context.Context, operation string, args []Arg, invoke Invocation) (any, error) {
	return t.trace(ctx, operation, args, true, invoke)
}

// Run is Trace for operations that produce no value. The end line reports
// an empty return value.
func (t *Tracer) Run(ctx context.Context, operation string, args []Arg, run func(ctx context.Context) error) error {
	_, err := t.trace(ctx, operation, args, false, func(ctx context.Context) (any, error) {
		return nil, run(ctx)
	})
	return err
}

func (t *Tracer) trace(ctx context.Context, operation string, args []Arg, hasValue bool, invoke Invocation) (any, error) {
	if operation == "" {
		panic(ErrEmptyOperation)
	}

	rec := Record{
		ID:        t.newID(),
		Operation: operation,
		Params:    renderParams(args),
		Start:     t.now(),
	}
	logger := t.logger.With(
		observability.String("operation", operation),
		observability.String("execution_id", rec.ID),
	)

	logger.Info(ctx, "start -> Executing "+operation+", "+FormatParams(rec.Params))

	returned := false
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if returned {
			panic(p)
		}
		rec.Duration = t.since(rec.Start)
		rec.Panicked = true
		rec.Err = &PanicError{Value: p}
		logger.Error(ctx, failureMessage(operation),
			observability.Any("panic", p),
			observability.String("stacktrace", string(debug.Stack())),
		)
		t.finish(ctx, rec)
		panic(p)
	}()

	result, err := invoke(ctx)
	returned = true
	rec.Duration = t.since(rec.Start)

	if err != nil {
		rec.Err = err
		logger.Error(ctx, failureMessage(operation), observability.Error(err))
		t.finish(ctx, rec)
		return result, err
	}

	if hasValue {
		rec.Result = renderValue(result)
		rec.HasResult = true
	}

	logger.Info(ctx,
		fmt.Sprintf("end -> Finished executing: %s, returned: '%s', duration: %d ms", operation, rec.Result, rec.DurationMillis()),
		observability.Int64("duration_ms", rec.DurationMillis()),
	)
	t.finish(ctx, rec)
	return result, nil
}

func (t *Tracer) since(start time.Time) time.Duration {
	d := t.now().Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

func (t *Tracer) finish(ctx context.Context, rec Record) {
	if t.calls != nil {
		fields := []observability.Field{
			observability.String("operation", rec.Operation),
			observability.String("outcome", rec.outcome()),
		}
		t.calls.Increment(ctx, fields...)
		t.durations.Record(ctx, float64(rec.Duration)/float64(time.Millisecond), fields...)
	}
	for _, hook := range t.hooks {
		hook(rec)
	}
}

func failureMessage(operation string) string {
	return "*** Exception during executing " + operation + ","
}
