// File: stringx.go
// Title: Core String Utility Functions
// Description: String operations used across cmdkit: blank checks,
//              truthiness, comma lists and rune-aware padding.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2025-10-19 v0.3.0: Reduced to the helpers the CLI runtime uses, added IsTruthy

package stringx

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank reports whether s is empty or contains only whitespace
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank is the negation of IsBlank
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// FirstNonBlank returns the first argument that is not blank
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if IsNotBlank(v) {
			return v
		}
	}
	return ""
}

// IsTruthy interprets switch-like values. Empty, "0", "false", "no" and
// "off" are false; everything else is true.
func IsTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// TruthyValue interprets a decoded manifest value: booleans as is, strings
// through IsTruthy (a string that does not parse as a switch still counts),
// numbers when non-zero.
func TruthyValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
		return IsTruthy(val)
	case int:
		return val != 0
	case int64:
		return val != 0
	case uint64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}

// SplitAndTrim splits s on sep, trims each part and drops empty parts
func SplitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Truncate shortens s to maxLen runes, ending in ellipsis when cut
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	keep := maxLen - utf8.RuneCountInString(ellipsis)
	if keep <= 0 {
		return string(runes[:maxLen])
	}
	return string(runes[:keep]) + ellipsis
}

// PadRight pads s with pad until it is width runes wide
func PadRight(s string, width int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-n)
}
