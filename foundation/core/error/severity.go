// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so the logger can pick an
//              appropriate level when an error escapes a command.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2025-10-19 v0.2.0: Mapping for CLI runtime codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates user-caused problems such as bad input
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error, e.g. a broken plugin or factory
	SeverityHigh

	// SeverityCritical indicates the runtime cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should be surfaced loudly
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeServiceFactory, CodeServiceTypeMismatch, CodePluginLoad, CodePluginInvalid,
		CodePluginHook, CodeCommandLoad, CodeUnauthorized, CodePermissionDenied:
		return SeverityHigh

	case CodeNetworkError, CodeFileSystem, CodeTimeout, CodeConfigError, CodeInvalidConfig,
		CodeServiceNotFound, CodeNoHandler:
		return SeverityMedium

	case CodeInvalidInput, CodeNotFound, CodeValidationFailed, CodeRequiredField,
		CodeInvalidFormat, CodeCommandNotFound, CodeSubcommandNotFound, CodeNonInteractive,
		CodeCanceled:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
