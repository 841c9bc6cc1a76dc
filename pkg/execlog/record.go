package execlog

import "time"

// Record is the per-call data captured by the Tracer.
type Record struct {
	ID        string
	Operation string
	Params    []Param
	Start     time.Time
	Duration  time.Duration
	Result    string
	HasResult bool
	Err       error
	Panicked  bool
}

// Succeeded reports whether the call returned without error or panic.
func (r Record) Succeeded() bool {
	return r.Err == nil && !r.Panicked
}

// DurationMillis is the duration in whole milliseconds, as logged.
func (r Record) DurationMillis() int64 {
	return r.Duration.Milliseconds()
}

func (r Record) outcome() string {
	switch {
	case r.Panicked:
		return outcomePanic
	case r.Err != nil:
		return outcomeFailure
	default:
		return outcomeSuccess
	}
}

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomePanic   = "panic"
)
