// File: common.go
// Title: Common Validators and Helpers
// Description: Conversion helpers and the stock validators used by the
//              command builder and the configuration checks.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19

package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ConvertToFloat64 converts numeric types and numeric strings to float64
func ConvertToFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", value)
	}
}

// IsNilOrEmpty checks if a value is nil or empty for its type
func IsNilOrEmpty(value interface{}) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Required fails for nil or empty values
func Required(field string) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		if IsNilOrEmpty(value) {
			return NewValidationErrorWithField(CodeRequired, field,
				fmt.Sprintf("missing required %s", field), value)
		}
		return NewValidationResult()
	})
}

// OneOf fails unless the value, formatted with %v, is one of choices.
// Slice values are checked element by element.
func OneOf(field string, choices []string) Validator {
	allowed := make(map[string]bool, len(choices))
	for _, c := range choices {
		allowed[c] = true
	}
	return ValidatorFunc(func(value interface{}) ValidationResult {
		if len(choices) == 0 || value == nil {
			return NewValidationResult()
		}
		values := []interface{}{value}
		if list, ok := value.([]string); ok {
			values = values[:0]
			for _, s := range list {
				values = append(values, s)
			}
		}
		result := NewValidationResult()
		for _, v := range values {
			s := fmt.Sprintf("%v", v)
			if !allowed[s] {
				result.AddFieldError(CodeChoice, field,
					fmt.Sprintf("invalid value %q for %s, expected one of: %s", s, field, strings.Join(choices, ", ")), v)
			}
		}
		return result
	})
}

// Predicate adapts a (ok, message) style check. A rejection without a
// message produces a generic "invalid value for <field>" failure.
func Predicate(field string, check func(value interface{}) (bool, string)) Validator {
	return ValidatorFunc(func(value interface{}) ValidationResult {
		ok, msg := check(value)
		if ok {
			return NewValidationResult()
		}
		if strings.TrimSpace(msg) == "" {
			msg = fmt.Sprintf("invalid value for %s", field)
		}
		return NewValidationErrorWithField(CodeCustom, field, msg, value)
	})
}
