// File: result.go
// Title: Validation Results
// Description: Defines the Validator interface, validation results and
//              errors, and the conversion of a failed result into a single
//              structured cmdkit error that lists every failure.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial validation interfaces implementation
// - 2025-10-19 v0.2.0: Aggregated Err(), trimmed codes to the CLI runtime

package validation

import (
	"fmt"
	"strings"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
)

// Validation error codes
const (
	CodeRequired = "VALIDATION_REQUIRED" // value is required but missing
	CodeType     = "VALIDATION_TYPE"     // value cannot be coerced to the declared type
	CodeChoice   = "VALIDATION_CHOICE"   // value is not one of the allowed choices
	CodeFormat   = "VALIDATION_FORMAT"   // value has an invalid format
	CodeCustom   = "VALIDATION_CUSTOM"   // a user supplied validator rejected the value
)

// Validator validates a single value
type Validator interface {
	Validate(value interface{}) ValidationResult
}

// ValidatorFunc adapts a function to the Validator interface
type ValidatorFunc func(value interface{}) ValidationResult

// Validate implements Validator
func (f ValidatorFunc) Validate(value interface{}) ValidationResult {
	return f(value)
}

// ValidationResult represents the result of a validation operation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation failure
type ValidationError struct {
	Code    string      `json:"code"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// NewValidationResult creates a successful validation result
func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// NewValidationError creates a failed validation result with a single error
func NewValidationError(code, message string) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: []ValidationError{{Code: code, Message: message}},
	}
}

// NewValidationErrorWithField creates a validation error for a specific field
func NewValidationErrorWithField(code, field, message string, value interface{}) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: []ValidationError{{Code: code, Field: field, Message: message, Value: value}},
	}
}

// AddFieldError adds a field-specific error to the validation result
func (r *ValidationResult) AddFieldError(code, field, message string, value interface{}) *ValidationResult {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{
		Code:    code,
		Field:   field,
		Message: message,
		Value:   value,
	})
	return r
}

// Merge appends the failures of other to r
func (r *ValidationResult) Merge(other ValidationResult) *ValidationResult {
	if !other.Valid {
		r.Valid = false
		r.Errors = append(r.Errors, other.Errors...)
	}
	return r
}

// WithField sets the field name on every error that has none
func (r ValidationResult) WithField(field string) ValidationResult {
	for i := range r.Errors {
		if r.Errors[i].Field == "" {
			r.Errors[i].Field = field
		}
	}
	return r
}

// FirstError returns the first validation error, or nil if validation passed
func (r ValidationResult) FirstError() *ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// ErrorMessages returns all error messages in order
func (r ValidationResult) ErrorMessages() []string {
	messages := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		messages[i] = err.Message
	}
	return messages
}

// HasError checks if the result contains a specific error code
func (r ValidationResult) HasError(code string) bool {
	for _, err := range r.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}

// Err converts a failed result into one validation error whose message has
// one line per failure. It returns nil when the result is valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}

	err := kiterror.ValidationFailures(r.ErrorMessages())
	fields := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Field != "" {
			fields = append(fields, e.Field)
		}
	}
	if len(fields) > 0 {
		err = err.WithDetail("fields", fields)
	}
	return err
}

// String returns a human-readable representation of the validation result
func (r ValidationResult) String() string {
	if r.Valid {
		return "ValidationResult{valid: true}"
	}
	parts := []string{"ValidationResult{valid: false", fmt.Sprintf("errors: %d", len(r.Errors))}
	if first := r.FirstError(); first != nil {
		parts = append(parts, fmt.Sprintf("first: %s", first.Message))
	}
	return strings.Join(parts, ", ") + "}"
}

// Combine merges multiple validation results into a single result
func Combine(results ...ValidationResult) ValidationResult {
	combined := NewValidationResult()
	for _, result := range results {
		combined.Merge(result)
	}
	return combined
}
