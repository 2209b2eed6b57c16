// Package calcerr defines the typed failures returned by the BMI and
// percentile computations.
package calcerr

import (
	"errors"
	"fmt"
)

// Kind classifies a computation failure.
type Kind string

const (
	InvalidFormat    Kind = "invalid_format"
	NonPositive      Kind = "non_positive"
	OutOfRange       Kind = "out_of_range"
	AgeOutOfRange    Kind = "age_out_of_range"
	FutureDate       Kind = "future_date"
	TableUnavailable Kind = "table_unavailable"
	ComputationError Kind = "computation_error"
)

// Error is the single error type surfaced by the public entry points.
type Error struct {
	Kind  Kind
	Field string // "weight", "height", "age", "sex", "birthdate" or empty
	Msg   string

	// AgeYears is set for AgeOutOfRange so callers can render the age.
	AgeYears float64

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with a formatted message.
func New(kind Kind, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error that carries an underlying cause.
func Wrap(kind Kind, field string, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// As converts any error into an *Error. Untyped errors become ComputationError.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(ComputationError, "", err, "unexpected computation failure")
}
