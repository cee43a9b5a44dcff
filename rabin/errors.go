package rabin

import (
	"fmt"

	"github.com/pkg/errors"
)

// CapacityError is the one hard, non-recoverable cap failure in this
// package: ExpandToControlPatterns refuses to materialise an alphabet
// of size |Σ|·2^|C| once |C| exceeds Limits.MaxControlPatternEvents
// (spec.md §4.2). Every other cap degrades to a Warning plus a partial
// result instead.
type CapacityError struct {
	Cap   Cap
	cause error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exhausted (%s): %v", e.Cap, e.cause)
}

func (e *CapacityError) Unwrap() error {
	return e.cause
}

func newCapacityError(cap Cap, format string, args ...interface{}) *CapacityError {
	return &CapacityError{Cap: cap, cause: errors.Errorf(format, args...)}
}
