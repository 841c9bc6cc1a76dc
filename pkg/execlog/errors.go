package execlog

import (
	"errors"
	"fmt"
)

var ErrEmptyOperation = errors.New("execlog: operation name must not be empty")

// PanicError records a recovered panic in a Record. The panic itself is re-raised
// with the original value; PanicError never reaches the caller.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
