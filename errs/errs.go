// Package errs provides structured error types and helpers for xnumber.
package errs

import (
	"errors"
	"strconv"
	"strings"
)

// Code identifies a numeric validation or configuration error category.
type Code string

const (
	// CodeInvalid indicates invalid input provided by the caller.
	CodeInvalid Code = "invalid_request"
	// CodeNotNumeric indicates the value is not a number.
	CodeNotNumeric Code = "not_numeric"
	// CodeBelowMin indicates the value is lower than the configured minimum.
	CodeBelowMin Code = "below_min"
	// CodeAboveMax indicates the value is greater than the configured maximum.
	CodeAboveMax Code = "above_max"
	// CodeStepMismatch indicates the value is not aligned to the configured step.
	CodeStepMismatch Code = "step_mismatch"
	// CodePattern indicates the value does not match the format of its field kind.
	CodePattern Code = "pattern"
	// CodeOutOfRange indicates the value does not fit the storage column.
	CodeOutOfRange Code = "out_of_range"
	// CodeNotFound indicates a missing field or setting.
	CodeNotFound Code = "not_found"
)

// E captures structured error information produced across the xnumber stack.
type E struct {
	Field   string
	Code    Code
	Value   string
	Limit   string
	Message string

	cause error
}

// Option configures an error envelope.
type Option func(*E)

// New constructs an error envelope for the field and error code.
func New(field string, code Code, opts ...Option) *E {
	e := &E{
		Field:   strings.TrimSpace(field),
		Code:    code,
		Value:   "",
		Limit:   "",
		Message: "",
		cause:   nil,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// WithMessage attaches a human-readable message to the error.
func WithMessage(message string) Option {
	trimmed := strings.TrimSpace(message)
	return func(e *E) {
		e.Message = trimmed
	}
}

// WithValue records the offending value.
func WithValue(value string) Option {
	return func(e *E) {
		e.Value = value
	}
}

// WithLimit records the bound or step the value was checked against.
func WithLimit(limit string) Option {
	trimmed := strings.TrimSpace(limit)
	return func(e *E) {
		e.Limit = trimmed
	}
}

// WithCause sets the underlying cause error.
func WithCause(err error) Option {
	return func(e *E) {
		e.cause = err
	}
}

func (e *E) Error() string {
	if e == nil {
		return "<nil>"
	}
	var parts []string

	field := strings.TrimSpace(e.Field)
	if field == "" {
		field = "unknown"
	}
	parts = append(parts, "field="+field)

	code := strings.TrimSpace(string(e.Code))
	if code == "" {
		code = "unknown"
	}
	parts = append(parts, "code="+code)

	if e.Message != "" {
		parts = append(parts, "message="+strconv.Quote(e.Message))
	}
	if e.Value != "" {
		parts = append(parts, "value="+strconv.Quote(e.Value))
	}
	if e.Limit != "" {
		parts = append(parts, "limit="+strconv.Quote(e.Limit))
	}
	if e.cause != nil {
		parts = append(parts, "cause="+strconv.Quote(e.cause.Error()))
	}

	return strings.Join(parts, " ")
}

func (e *E) Unwrap() error { return e.cause }

// Is reports whether target is an *E carrying the same code.
func (e *E) Is(target error) bool {
	var other *E
	if !errors.As(target, &other) || other == nil || e == nil {
		return false
	}
	return other.Code == e.Code && (other.Field == "" || other.Field == e.Field)
}

// HasCode reports whether err, or any error it wraps or joins, is an *E with the code.
func HasCode(err error, code Code) bool {
	return errors.Is(err, &E{Code: code})
}

// Codes flattens err into the ordered list of envelope codes it carries.
func Codes(err error) []Code {
	if err == nil {
		return nil
	}
	var out []Code
	var walk func(error)
	walk = func(err error) {
		if e, ok := err.(*E); ok {
			out = append(out, e.Code)
			return
		}
		switch wrapped := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range wrapped.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(wrapped.Unwrap())
		}
	}
	walk(err)
	return out
}
