package dynarray

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrAllocation is returned when a buffer for the array could not be obtained.
	ErrAllocation = errors.New("dynarray: allocation failed")

	// ErrBudgetExceeded is returned when an allocation would exceed the array's byte budget.
	ErrBudgetExceeded = errors.New("dynarray: memory budget exceeded")

	// ErrCapacityOverflow is returned when the requested capacity cannot be represented.
	ErrCapacityOverflow = errors.New("dynarray: capacity overflow")

	// ErrNegativeSize is returned when a negative size is requested.
	ErrNegativeSize = errors.New("dynarray: negative size")

	// ErrInvalidConfig is returned by New when the configuration fails validation.
	ErrInvalidConfig = errors.New("dynarray: invalid config")

	// ErrElementCopy is matched by every *CopyError.
	ErrElementCopy = errors.New("dynarray: element copy failed")
)

// allocError ties an allocation failure to both ErrAllocation and its cause,
// so errors.Is matches either.
type allocError struct {
	cause error
	msg   string
}

func (e *allocError) Error() string { return e.msg + ": " + e.cause.Error() }

func (e *allocError) Unwrap() []error { return []error{ErrAllocation, e.cause} }

// Cause lets errors.Cause reach the underlying reason.
func (e *allocError) Cause() error { return e.cause }

func newAllocError(cause error, format string, args ...any) error {
	return &allocError{cause: cause, msg: fmt.Sprintf(format, args...)}
}

// CopyError reports a CopyFunc failure while duplicating the element at Index.
type CopyError struct {
	Index int
	Err   error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("dynarray: copying element %d: %v", e.Index, e.Err)
}

// Unwrap returns the CopyFunc's error unchanged.
func (e *CopyError) Unwrap() error { return e.Err }

// Is reports ErrElementCopy as a match.
func (e *CopyError) Is(target error) bool { return target == ErrElementCopy }

// RangeError is the panic value for a position outside the live range.
type RangeError struct {
	Op    string
	Index int
	Size  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("dynarray: %s: index %d out of range [0:%d]", e.Op, e.Index, e.Size)
}

func panicRange(op string, index, size int) {
	panic(&RangeError{Op: op, Index: index, Size: size})
}
