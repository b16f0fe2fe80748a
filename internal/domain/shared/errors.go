package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures for callers that serialise errors
type ErrorKind string

const (
	KindInputRange   ErrorKind = "InputRangeError"
	KindGeometry     ErrorKind = "GeometryError"
	KindComputation  ErrorKind = "ComputationError"
	KindPlannerInput ErrorKind = "PlannerInputError"
	KindUnknown      ErrorKind = "UnknownError"
)

// EngineError is the base error type for all calculation errors
type EngineError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *EngineError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorKind exposes the kind through every embedding error type
func (e *EngineError) ErrorKind() ErrorKind {
	return e.Kind
}

func newEngineError(kind ErrorKind, field, message string) *EngineError {
	return &EngineError{Kind: kind, Field: field, Message: message}
}

// InputRangeError reports a value outside its domain bounds
type InputRangeError struct {
	*EngineError
	Value float64
}

func NewInputRangeError(field string, value float64, message string) *InputRangeError {
	return &InputRangeError{
		EngineError: newEngineError(KindInputRange, field, message),
		Value:       value,
	}
}

// GeometryError reports an undefined slant-range geometry
type GeometryError struct {
	*EngineError
	HalfAngleDeg float64
}

func NewGeometryError(halfAngleDeg float64) *GeometryError {
	return &GeometryError{
		EngineError: newEngineError(KindGeometry, "swath_angle",
			fmt.Sprintf("half-angle %.3f° leaves no slant range to the outer beam (must be below 90°)", halfAngleDeg)),
		HalfAngleDeg: halfAngleDeg,
	}
}

// ComputationError reports a derived value that cannot be used
type ComputationError struct {
	*EngineError
}

func NewComputationError(field, message string) *ComputationError {
	return &ComputationError{EngineError: newEngineError(KindComputation, field, message)}
}

// PlannerInputError reports missing or non-positive survey planner inputs
type PlannerInputError struct {
	*EngineError
}

func NewPlannerInputError(field, message string) *PlannerInputError {
	return &PlannerInputError{EngineError: newEngineError(KindPlannerInput, field, message)}
}

type kinded interface {
	ErrorKind() ErrorKind
}

// KindOf returns the engine error kind carried by err, or KindUnknown
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindUnknown
}

// IsEngineError reports whether err (or anything it wraps) is an engine error
func IsEngineError(err error) bool {
	k := KindOf(err)
	return k != "" && k != KindUnknown
}
