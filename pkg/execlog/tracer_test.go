package execlog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
	"github.com/JailtonJunior94/aop-logging/pkg/observability/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var endLine = regexp.MustCompile(`^end -> Finished executing: (.+), returned: '(.*)', duration: (\d+) ms$`)

type TracerSuite struct {
	suite.Suite

	ctx     context.Context
	logger  *fake.FakeLogger
	records []Record
	mu      sync.Mutex
	tracer  *Tracer
}

func TestTracerSuite(t *testing.T) {
	suite.Run(t, new(TracerSuite))
}

func (s *TracerSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = fake.NewFakeLogger()
	s.records = nil
	s.tracer = New(s.logger, WithRecordHook(s.collect))
}

func (s *TracerSuite) collect(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

func (s *TracerSuite) TestSuccessEmitsStartThenEnd() {
	out, err := s.tracer.Trace(s.ctx, "Calc.add(..)", []Arg{Int(40), Int(2)}, func(ctx context.Context) (any, error) {
		return 42, nil
	})
	s.Require().NoError(err)
	s.Equal(42, out)

	entries := s.logger.GetEntries()
	s.Require().Len(entries, 2)
	s.Equal(observability.LogLevelInfo, entries[0].Level)
	s.Equal("start -> Executing Calc.add(..), parameters: [Int(40), Int(2)]", entries[0].Message)
	s.Equal(observability.LogLevelInfo, entries[1].Level)

	m := endLine.FindStringSubmatch(entries[1].Message)
	s.Require().NotNil(m, "unexpected end line %q", entries[1].Message)
	s.Equal("Calc.add(..)", m[1])
	s.Equal("42", m[2])
	ms, err := strconv.ParseInt(m[3], 10, 64)
	s.Require().NoError(err)
	s.GreaterOrEqual(ms, int64(0))

	s.Require().Len(s.records, 1)
	rec := s.records[0]
	s.True(rec.Succeeded())
	s.True(rec.HasResult)
	s.Equal("42", rec.Result)
	s.Equal([]Param{{TypeName: "Int", Value: "40"}, {TypeName: "Int", Value: "2"}}, rec.Params)
	s.GreaterOrEqual(rec.Duration, time.Duration(0))
}

func (s *TracerSuite) TestFailurePropagatesSameError() {
	sentinel := errors.New("database unavailable")

	out, err := s.tracer.Trace(s.ctx, "Repo.find(..)", []Arg{String("id-1")}, func(ctx context.Context) (any, error) {
		return nil, sentinel
	})
	s.Nil(out)
	s.Same(sentinel, err)

	entries := s.logger.GetEntries()
	s.Require().Len(entries, 2)
	s.Equal("start -> Executing Repo.find(..), parameters: [String(id-1)]", entries[0].Message)
	s.Equal(observability.LogLevelError, entries[1].Level)
	s.Equal("*** Exception during executing Repo.find(..),", entries[1].Message)

	logged, ok := entries[1].Field("error")
	s.Require().True(ok)
	s.Same(sentinel, logged)

	for _, e := range entries {
		s.NotRegexp(`^end ->`, e.Message)
	}

	s.Require().Len(s.records, 1)
	s.False(s.records[0].Succeeded())
	s.False(s.records[0].HasResult)
	s.Same(sentinel, s.records[0].Err)
}

type notFoundError struct{ id string }

func (e *notFoundError) Error() string { return e.id + " not found" }

func (s *TracerSuite) TestFailureKeepsErrorType() {
	_, err := s.tracer.Trace(s.ctx, "Repo.find(..)", nil, func(ctx context.Context) (any, error) {
		return nil, fmt.Errorf("lookup: %w", &notFoundError{id: "7"})
	})

	var nf *notFoundError
	s.Require().True(errors.As(err, &nf))
	s.Equal("7", nf.id)
	s.EqualError(err, "lookup: 7 not found")
}

func (s *TracerSuite) TestPanicIsLoggedAndReraised() {
	type boom struct{ code int }
	value := &boom{code: 9}

	defer func() {
		recovered := recover()
		s.Same(value, recovered)

		entries := s.logger.GetEntries()
		s.Require().Len(entries, 2)
		s.Equal("*** Exception during executing Job.run(..),", entries[1].Message)
		s.Equal(observability.LogLevelError, entries[1].Level)
		_, hasStack := entries[1].Field("stacktrace")
		s.True(hasStack)

		s.Require().Len(s.records, 1)
		s.True(s.records[0].Panicked)
		var pe *PanicError
		s.Require().ErrorAs(s.records[0].Err, &pe)
		s.Same(value, pe.Value)
	}()

	_, _ = s.tracer.Trace(s.ctx, "Job.run(..)", nil, func(ctx context.Context) (any, error) {
		panic(value)
	})
	s.Fail("panic should propagate")
}

func (s *TracerSuite) TestRunLogsEmptyReturn() {
	err := s.tracer.Run(s.ctx, "Cache.flush(..)", nil, func(ctx context.Context) error { return nil })
	s.Require().NoError(err)

	entries := s.logger.GetEntries()
	s.Require().Len(entries, 2)
	m := endLine.FindStringSubmatch(entries[1].Message)
	s.Require().NotNil(m)
	s.Equal("", m[2])
	s.False(s.records[0].HasResult)
}

func (s *TracerSuite) TestNilResultRendersAsNull() {
	_, err := s.tracer.Trace(s.ctx, "Svc.nothing(..)", nil, func(ctx context.Context) (any, error) {
		return nil, nil
	})
	s.Require().NoError(err)
	s.Equal("null", s.records[0].Result)

	var missing *notFoundError
	_, err = s.tracer.Trace(s.ctx, "Svc.lookup(..)", nil, func(ctx context.Context) (any, error) {
		return missing, nil
	})
	s.Require().NoError(err)
	s.Equal("null", s.records[1].Result)
	messages := s.logger.Messages()
	s.Require().Len(messages, 4)
	s.Contains(messages[3], "Finished executing: Svc.lookup(..), returned: 'null',")
}

func (s *TracerSuite) TestRepeatedCallsAreIndependent() {
	invoke := func(ctx context.Context) (any, error) { return "same", nil }

	_, _ = s.tracer.Trace(s.ctx, "Svc.echo(..)", []Arg{String("a")}, invoke)
	_, _ = s.tracer.Trace(s.ctx, "Svc.echo(..)", []Arg{String("a")}, invoke)

	s.Require().Len(s.records, 2)
	s.NotEqual(s.records[0].ID, s.records[1].ID)
	s.Equal(s.records[0].Params, s.records[1].Params)

	s.records[0].Params[0].Value = "mutated"
	s.Equal("a", s.records[1].Params[0].Value)
	s.Len(s.logger.GetEntries(), 4)
}

func (s *TracerSuite) TestLinesCarryExecutionID() {
	_, _ = s.tracer.Trace(s.ctx, "Svc.id(..)", nil, func(ctx context.Context) (any, error) { return 1, nil })

	entries := s.logger.GetEntries()
	s.Require().Len(entries, 2)
	startID, _ := entries[0].Field("execution_id")
	endID, _ := entries[1].Field("execution_id")
	s.Equal(s.records[0].ID, startID)
	s.Equal(startID, endID)
}

func (s *TracerSuite) TestEmptyOperationPanics() {
	s.PanicsWithValue(ErrEmptyOperation, func() {
		_, _ = s.tracer.Trace(s.ctx, "", nil, func(ctx context.Context) (any, error) { return nil, nil })
	})
	s.Empty(s.logger.GetEntries())
}

func TestDurationCoversDelay(t *testing.T) {
	const delay = 25 * time.Millisecond
	var rec Record
	tracer := New(fake.NewFakeLogger(), WithRecordHook(func(r Record) { rec = r }))

	_, err := tracer.Trace(context.Background(), "Slow.op(..)", nil, func(ctx context.Context) (any, error) {
		time.Sleep(delay)
		return "done", nil
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rec.DurationMillis(), delay.Milliseconds())
	assert.Less(t, rec.Duration, delay+2*time.Second)
}

func TestDurationWithFixedClock(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(1500 * time.Millisecond)}
	clock := func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]
		return now
	}
	logger := fake.NewFakeLogger()
	tracer := New(logger, WithClock(clock), WithIDGenerator(func() string { return "id-1" }))

	_, err := tracer.Trace(context.Background(), "Clock.tick(..)", nil, func(ctx context.Context) (any, error) { return "ok", nil })
	require.NoError(t, err)

	messages := logger.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "end -> Finished executing: Clock.tick(..), returned: 'ok', duration: 1500 ms", messages[1])
}

func TestDurationNeverNegative(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(-time.Second)}
	clock := func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]
		return now
	}
	var rec Record
	tracer := New(fake.NewFakeLogger(), WithClock(clock), WithRecordHook(func(r Record) { rec = r }))

	_, _ = tracer.Trace(context.Background(), "Clock.back(..)", nil, func(ctx context.Context) (any, error) { return nil, nil })
	assert.Equal(t, time.Duration(0), rec.Duration)
}

func TestMetricsRecorded(t *testing.T) {
	metrics := fake.NewFakeMetrics()
	tracer := New(fake.NewFakeLogger(), WithMetrics(metrics))
	ctx := context.Background()

	_, _ = tracer.Trace(ctx, "M.ok(..)", nil, func(ctx context.Context) (any, error) { return 1, nil })
	_, _ = tracer.Trace(ctx, "M.fail(..)", nil, func(ctx context.Context) (any, error) { return nil, errors.New("x") })

	calls := metrics.GetCounter("execlog.calls")
	require.NotNil(t, calls)
	values := calls.GetValues()
	require.Len(t, values, 2)
	assert.Equal(t, []observability.Field{
		observability.String("operation", "M.ok(..)"),
		observability.String("outcome", "success"),
	}, values[0].Fields)
	assert.Equal(t, []observability.Field{
		observability.String("operation", "M.fail(..)"),
		observability.String("outcome", "failure"),
	}, values[1].Fields)

	durations := metrics.GetHistogram("execlog.duration_milliseconds")
	require.NotNil(t, durations)
	assert.Len(t, durations.GetValues(), 2)
}

func TestConcurrentTraces(t *testing.T) {
	var (
		mu      sync.Mutex
		records []Record
	)
	logger := fake.NewFakeLogger()
	tracer := New(logger, WithRecordHook(func(r Record) {
		mu.Lock()
		records = append(records, r)
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := tracer.Trace(context.Background(), "Par.run(..)", []Arg{Int(i)}, func(ctx context.Context) (any, error) {
				return i * 2, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, i*2, out)
		}(i)
	}
	wg.Wait()

	assert.Len(t, records, 50)
	assert.Len(t, logger.GetEntries(), 100)

	ids := make(map[string]struct{}, len(records))
	for _, r := range records {
		ids[r.ID] = struct{}{}
	}
	assert.Len(t, ids, 50)
}
