package calc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why an evaluation was rejected.
type ErrorKind int

const (
	MissingField ErrorKind = iota + 1
	TypeError
	RangeViolation
	OrderingViolation
	ComputeError
)

func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing_field"
	case TypeError:
		return "type_error"
	case RangeViolation:
		return "range_violation"
	case OrderingViolation:
		return "ordering_violation"
	case ComputeError:
		return "compute_error"
	default:
		return "unknown"
	}
}

// FieldError is the single error type returned by Calculator.Run.
// Fields names the offending inputs; Msg is the client-facing message.
type FieldError struct {
	Kind   ErrorKind
	Fields []string
	Msg    string
	Err    error
}

func (e *FieldError) Error() string {
	return e.Msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind carried by err, or 0 when err is not a
// *FieldError.
func KindOf(err error) ErrorKind {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

func missingFields(names []string) *FieldError {
	return &FieldError{
		Kind:   MissingField,
		Fields: names,
		Msg:    "Missing required fields: " + strings.Join(names, ", "),
	}
}

func typeError(field string, err error) *FieldError {
	return &FieldError{
		Kind:   TypeError,
		Fields: []string{field},
		Msg:    fmt.Sprintf("Calculation error: %v", err),
		Err:    err,
	}
}

func rangeError(msg string, fields ...string) *FieldError {
	return &FieldError{Kind: RangeViolation, Fields: fields, Msg: msg}
}

func orderingError(msg string, fields ...string) *FieldError {
	return &FieldError{Kind: OrderingViolation, Fields: fields, Msg: msg}
}

func computeError(field string, err error) *FieldError {
	return &FieldError{
		Kind:   ComputeError,
		Fields: []string{field},
		Msg:    fmt.Sprintf("Calculation error: %v", err),
		Err:    err,
	}
}
