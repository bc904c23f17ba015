// Package errors provides the error taxonomy and the warning hook used across prepkit.
//
// Every input-validation failure is marked with ErrInvalidInput, so callers can
// branch on the kind without knowing the concrete type:
//
//	if errors.Is(err, errors.ErrInvalidInput) {
//	    // fix the input and retry
//	}
//
// Degenerate-but-defined situations (a constant column under per-column scaling,
// a zero-variance series under correlation) are not errors. They are reported
// through Warn as a DegenerateWarning and the documented fallback value is used.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.RWMutex
	warningHandler = func(w error) {
		log.Printf("prepkit-warning: %v\n", w)
	}
	// set by pkg/log to avoid an import cycle
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the handler used when no zerolog sink is installed.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. Passing nil removes it.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. The zerolog sink wins over the plain handler when both are set.
// Handlers run outside the lock and may call Warn themselves.
func Warn(w error) {
	warningMutex.RLock()
	zl, handler := zerologWarnFunc, warningHandler
	warningMutex.RUnlock()

	if zl != nil {
		zl(w)
		return
	}
	if handler != nil {
		handler(w)
	}
}

// ===========================================================================
//
//	Warnings
//
// ===========================================================================

// DegenerateWarning reports that a zero-range or zero-variance input was
// replaced by a documented fallback value instead of failing.
type DegenerateWarning struct {
	Op       string
	Column   int // -1 when the whole table or series is affected
	Fallback float64
	Reason   string
}

func (w *DegenerateWarning) Error() string {
	if w.Column < 0 {
		return fmt.Sprintf("%s: %s; using fallback %g", w.Op, w.Reason, w.Fallback)
	}
	return fmt.Sprintf("%s: column %d: %s; using fallback %g", w.Op, w.Column, w.Reason, w.Fallback)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *DegenerateWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("column", w.Column).
		Float64("fallback", w.Fallback).
		Str("reason", w.Reason).
		Str("type", "DegenerateWarning")
}

// NewDegenerateWarning creates a DegenerateWarning.
func NewDegenerateWarning(op string, column int, fallback float64, reason string) *DegenerateWarning {
	return &DegenerateWarning{Op: op, Column: column, Fallback: fallback, Reason: reason}
}

// ===========================================================================
//
//	Structured errors
//
// ===========================================================================

// NotFittedError is returned when an estimator is used before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("prepkit: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports a shape mismatch: ragged rows, paired sequences of
// different length, or a matrix with the wrong number of features.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("prepkit: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, axisName(e.Axis), e.Expected, e.Got)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName(e.Axis)).
		Str("type", "DimensionError")
}

func axisName(axis int) string {
	if axis == 0 {
		return "rows"
	}
	return "features"
}

// NewDimensionError creates a DimensionError marked as invalid input.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.Mark(errors.WithStack(err), ErrInvalidInput)
}

// ValidationError reports a configuration parameter outside its allowed range.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("prepkit: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError marked as invalid input.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.Mark(errors.WithStack(err), ErrInvalidInput)
}

// ValueError reports data that cannot be processed: an empty sequence, an
// all-missing column, a table whose range or spread is zero.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("prepkit: %s: %s", e.Op, e.Message)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("message", e.Message).
		Str("type", "ValueError")
}

// NewValueError creates a ValueError marked as invalid input.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.Mark(errors.WithStack(err), ErrInvalidInput)
}

// NewEmptyDataError reports an empty input where at least one element is required.
// The result matches both ErrEmptyData and ErrInvalidInput.
func NewEmptyDataError(op string) error {
	return errors.Mark(errors.Wrap(ErrEmptyData, "prepkit: "+op), ErrInvalidInput)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Sentinels
//
// ===========================================================================

var (
	// ErrInvalidInput marks every error caused by bad input or configuration.
	ErrInvalidInput = New("invalid input")

	// ErrEmptyData is returned when an operation needs at least one element.
	ErrEmptyData = New("empty data")
)
