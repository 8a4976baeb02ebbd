// File: validation.go
// Title: Configuration Validation Implementation
// Description: Checks configuration values against declared rules: required
//              keys, value types and allowed choices. All failures are
//              reported together.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of validation
// - 2025-10-19 v0.2.0: Built on foundation/core/validation, added choices

package config

import (
	"fmt"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	kitvalidation "github.com/msto63/cmdkit/foundation/core/validation"
	"github.com/msto63/cmdkit/foundation/utils/mapx"
)

// ValidationRule defines validation criteria for a configuration value
type ValidationRule struct {
	Required bool     // Whether the key must be present
	Type     string   // "string", "bool", "int", "[]string" or empty for any
	Choices  []string // Allowed values for string keys
}

// ValidationRules maps configuration keys to their validation rules
type ValidationRules map[string]ValidationRule

// Validate checks the configuration against rules and returns a single
// configuration error listing every failure, or nil.
func (c *Config) Validate(rules ValidationRules) error {
	keys := mapx.SortedKeys(rules)

	results := make([]kitvalidation.ValidationResult, 0, len(keys))
	for _, key := range keys {
		results = append(results, c.validateKey(key, rules[key]))
	}

	combined := kitvalidation.Combine(results...)
	if combined.Valid {
		return nil
	}
	return kiterror.Wrap(combined.Err(), "invalid configuration").
		WithCode(kiterror.CodeInvalidConfig).
		WithExitCode(kiterror.CodeInvalidConfig.ExitCode()).
		WithOperation("config.Validate").
		WithDetail("path", c.FilePath())
}

func (c *Config) validateKey(key string, rule ValidationRule) kitvalidation.ValidationResult {
	if !c.Has(key) {
		if rule.Required {
			return kitvalidation.Required(key).Validate(nil)
		}
		return kitvalidation.NewValidationResult()
	}

	c.mu.RLock()
	raw := c.getValue(key)
	c.mu.RUnlock()

	if raw != nil && !matchesType(raw, rule.Type) {
		return kitvalidation.NewValidationErrorWithField(kitvalidation.CodeType, key,
			fmt.Sprintf("key '%s' must be of type %s, got %T", key, rule.Type, raw), raw)
	}

	if len(rule.Choices) > 0 {
		return kitvalidation.OneOf(key, rule.Choices).Validate(c.GetString(key))
	}
	return kitvalidation.NewValidationResult()
}

func matchesType(value interface{}, expected string) bool {
	switch expected {
	case "":
		return true
	case "string":
		_, ok := value.(string)
		return ok
	case "bool":
		_, ok := value.(bool)
		return ok
	case "int":
		switch value.(type) {
		case int, int64:
			return true
		}
		return false
	case "[]string":
		switch list := value.(type) {
		case []string:
			return true
		case []interface{}:
			for _, item := range list {
				if _, ok := item.(string); !ok {
					return false
				}
			}
			return true
		}
		return false
	default:
		return false
	}
}
