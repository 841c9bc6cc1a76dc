package execlog

import (
	"context"
	"sort"
)

// Selector is the static set of operations marked for tracing.
// It is built once at composition time and only read afterwards.
type Selector struct {
	tracer *Tracer
	marked map[Signature]struct{}
}

// NewSelector marks the given signatures for tracing through tracer.
func NewSelector(tracer *Tracer, marked ...Signature) *Selector {
	set := make(map[Signature]struct{}, len(marked))
	for _, sig := range marked {
		set[sig] = struct{}{}
	}
	return &Selector{tracer: tracer, marked: set}
}

// Marked reports whether calls to sig are traced. A nil Selector marks nothing.
func (s *Selector) Marked(sig Signature) bool {
	if s == nil || s.tracer == nil {
		return false
	}
	_, ok := s.marked[sig]
	return ok
}

// Signatures returns the marked signatures ordered by their condensed form.
func (s *Selector) Signatures() []Signature {
	if s == nil {
		return nil
	}
	sigs := make([]Signature, 0, len(s.marked))
	for sig := range s.marked {
		sigs = append(sigs, sig)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].String() < sigs[j].String() })
	return sigs
}

// Around0 decorates a function without arguments. Unmarked signatures get fn back unchanged.
func Around0[R any](s *Selector, sig Signature, fn func(context.Context) (R, error)) func(context.Context) (R, error) {
	if !s.Marked(sig) {
		return fn
	}
	op := sig.String()
	return func(ctx context.Context) (R, error) {
		out, err := s.tracer.Trace(ctx, op, nil, func(ctx context.Context) (any, error) {
			v, err := fn(ctx)
			return v, err
		})
		r, _ := out.(R)
		return r, err
	}
}

// Around1 decorates a one-argument function; renderA describes the argument in the start line.
func Around1[A, R any](s *Selector, sig Signature, fn func(context.Context, A) (R, error), renderA func(A) Arg) func(context.Context, A) (R, error) {
	if !s.Marked(sig) {
		return fn
	}
	op := sig.String()
	return func(ctx context.Context, a A) (R, error) {
		out, err := s.tracer.Trace(ctx, op, []Arg{renderA(a)}, func(ctx context.Context) (any, error) {
			v, err := fn(ctx, a)
			return v, err
		})
		r, _ := out.(R)
		return r, err
	}
}

// Around2 decorates a two-argument function.
func Around2[A, B, R any](s *Selector, sig Signature, fn func(context.Context, A, B) (R, error), renderA func(A) Arg, renderB func(B) Arg) func(context.Context, A, B) (R, error) {
	if !s.Marked(sig) {
		return fn
	}
	op := sig.String()
	return func(ctx context.Context, a A, b B) (R, error) {
		out, err := s.tracer.Trace(ctx, op, []Arg{renderA(a), renderB(b)}, func(ctx context.Context) (any, error) {
			v, err := fn(ctx, a, b)
			return v, err
		})
		r, _ := out.(R)
		return r, err
	}
}

// AroundErr0 decorates a function that only reports an error.
func AroundErr0(s *Selector, sig Signature, fn func(context.Context) error) func(context.Context) error {
	if !s.Marked(sig) {
		return fn
	}
	op := sig.String()
	return func(ctx context.Context) error {
		return s.tracer.Run(ctx, op, nil, fn)
	}
}

// AroundErr1 decorates a one-argument function that only reports an error.
func AroundErr1[A any](s *Selector, sig Signature, fn func(context.Context, A) error, renderA func(A) Arg) func(context.Context, A) error {
	if !s.Marked(sig) {
		return fn
	}
	op := sig.String()
	return func(ctx context.Context, a A) error {
		return s.tracer.Run(ctx, op, []Arg{renderA(a)}, func(ctx context.Context) error {
			return fn(ctx, a)
		})
	}
}
