package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"
)

// PanicError is a recovered panic turned into an error.
type PanicError struct {
	// PanicValue is the value passed to panic.
	PanicValue interface{}

	// StackTrace is the goroutine stack at the point of recovery.
	StackTrace string

	// Operation names the guarded operation.
	Operation string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("prepkit: panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.PanicValue.(error); ok {
		return err
	}
	return nil
}

// String includes the stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("%s\nStack trace:\n%s", e.Error(), e.StackTrace)
}

// NewPanicError creates a PanicError carrying the current stack.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover converts a panic into an error stored in *err. Use it deferred:
//
//	func render() (err error) {
//	    defer errors.Recover(&err, "render")
//	    ...
//	}
//
// An error already in *err is kept as the cause.
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	panicErr := NewPanicError(operation, r)
	if *err != nil {
		*err = errors.WithSecondaryError(panicErr, *err)
		return
	}
	*err = panicErr
}

// SafeExecute runs fn and returns its error, or a PanicError if it panics.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
