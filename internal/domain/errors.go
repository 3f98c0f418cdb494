package domain

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownCalculator = errors.New("unknown calculator")
)

// Error codes reported in evaluation responses.
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnknownCalculator = "UNKNOWN_CALCULATOR"
	ErrCodeDecode            = "DECODE_ERROR"
	ErrCodeCanceled          = "CANCELED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// InvalidInputError reports a domain violation: an input for which a formula
// is undefined (a logarithm of a non-positive number, a zero divisor) or a
// value that is not a finite number.
type InvalidInputError struct {
	Field  string  `json:"field"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

// Error implements the error interface
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for field '%s' (%v): %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInputError creates a new InvalidInputError
func NewInvalidInputError(field string, value float64, reason string) *InvalidInputError {
	return &InvalidInputError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// EvaluationError is the error payload attached to a failed evaluation
// response.
type EvaluationError struct {
	Code         string `json:"code" yaml:"code"`
	Message      string `json:"message" yaml:"message"`
	Details      string `json:"details,omitempty" yaml:"details,omitempty"`
	EvaluationID string `json:"evaluation_id" yaml:"evaluationId"`
}

// Error implements the error interface
func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewEvaluationError creates a new EvaluationError
func NewEvaluationError(code, message, details, evaluationID string) *EvaluationError {
	return &EvaluationError{
		Code:         code,
		Message:      message,
		Details:      details,
		EvaluationID: evaluationID,
	}
}

// ValidateFinite rejects NaN and infinite values. Fields are checked in order
// so the reported field is deterministic.
func ValidateFinite(fields []NamedValue) error {
	for _, f := range fields {
		if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			return NewInvalidInputError(f.Name, f.Value, "value must be a finite number")
		}
	}
	return nil
}

// ValidateGender rejects anything but male or female.
func ValidateGender(g Gender) error {
	if !g.IsValid() {
		return fmt.Errorf("%w: gender must be %q or %q, got %q", ErrInvalidInput, Male, Female, g)
	}
	return nil
}
