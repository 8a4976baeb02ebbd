// File: chain.go
// Title: Validator Chains
// Description: Sequential composition of validators. A chain collects every
//              failure by default or stops at the first one when configured.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial chain implementation
// - 2025-10-19 v0.2.0: Field-qualified chains, dropped parallel validation

package validation

import "fmt"

// ValidatorChain represents a chain of validators executed sequentially
type ValidatorChain struct {
	validators       []Validator
	field            string
	stopOnFirstError bool
}

// NewValidatorChain creates a chain for the named field
func NewValidatorChain(field string) *ValidatorChain {
	return &ValidatorChain{field: field}
}

// Add adds a validator to the chain
func (c *ValidatorChain) Add(validator Validator) *ValidatorChain {
	c.validators = append(c.validators, validator)
	return c
}

// StopOnFirstError configures the chain to stop on the first failure
func (c *ValidatorChain) StopOnFirstError(stop bool) *ValidatorChain {
	c.stopOnFirstError = stop
	return c
}

// Validate runs the validators in order and returns the combined result.
// Errors without a field are attributed to the chain's field.
func (c *ValidatorChain) Validate(value interface{}) ValidationResult {
	combined := NewValidationResult()
	for _, validator := range c.validators {
		result := validator.Validate(value).WithField(c.field)
		combined.Merge(result)
		if c.stopOnFirstError && !result.Valid {
			break
		}
	}
	return combined
}

// Length returns the number of validators in the chain
func (c *ValidatorChain) Length() int {
	return len(c.validators)
}

// String returns a readable representation of the chain
func (c *ValidatorChain) String() string {
	return fmt.Sprintf("ValidatorChain{field: %s, validators: %d}", c.field, len(c.validators))
}
