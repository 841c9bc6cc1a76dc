// Package execlog logs method-level executions.
//
// A Tracer wraps one invocation: it logs the operation and its rendered
// arguments, runs the operation, then logs the returned value and the elapsed
// time, or the failure. Failures are returned (or re-panicked) unchanged.
//
// A Selector holds the static set of operations marked for tracing. The
// Around helpers decorate a function at composition time and return a
// function of the same type, so callers never see the tracing:
//
//	sel := execlog.NewSelector(tracer, sayHello)
//	svc.sayHello = execlog.Around0(sel, sayHello, svc.sayHello)
package execlog
