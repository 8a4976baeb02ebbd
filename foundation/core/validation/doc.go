// Package validation provides the validation framework used by cmdkit.
//
// Package: validation
// Title: cmdkit Validation Framework
// Description: Validator interface, results that collect every failure,
//              sequential chains and stock validators. Argument and option
//              validation in the command builder is built on it, as are the
//              configuration checks of the orchestrator.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Usage:
//
//	chain := validation.NewValidatorChain("--env").
//		Add(validation.OneOf("--env", []string{"dev", "prod"})).
//		Add(validation.Predicate("--env", check))
//
//	result := validation.Combine(chain.Validate(value), other)
//	if err := result.Err(); err != nil {
//		return err // one line per failure
//	}
package validation
