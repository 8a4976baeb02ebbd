// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error
//              classification across cmdkit. Codes drive severity, exit codes
//              and the category shown in diagnostics.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-10-19 v0.2.0: CLI runtime codes, exit code mapping

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"
	CodeCanceled     Code = "CANCELED"

	// Authentication and authorization
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodePermissionDenied Code = "PERMISSION_DENIED"

	// Environment
	CodeNetworkError   Code = "NETWORK_ERROR"
	CodeFileSystem     Code = "FILESYSTEM_ERROR"
	CodeNonInteractive Code = "NON_INTERACTIVE"

	// Command runtime
	CodeCommandNotFound    Code = "COMMAND_NOT_FOUND"
	CodeSubcommandNotFound Code = "SUBCOMMAND_NOT_FOUND"
	CodeNoHandler          Code = "NO_HANDLER"
	CodeCommandLoad        Code = "COMMAND_LOAD"

	// Registry
	CodeServiceNotFound     Code = "SERVICE_NOT_FOUND"
	CodeServiceTypeMismatch Code = "SERVICE_TYPE_MISMATCH"
	CodeServiceFactory      Code = "SERVICE_FACTORY"

	// Plugins
	CodePluginLoad    Code = "PLUGIN_LOAD"
	CodePluginInvalid Code = "PLUGIN_INVALID"
	CodePluginHook    Code = "PLUGIN_HOOK"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRequiredField    Code = "REQUIRED_FIELD"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeUnauthorized:
		return "authentication"
	case CodePermissionDenied:
		return "permission"
	case CodeNetworkError:
		return "network"
	case CodeFileSystem:
		return "filesystem"
	case CodeCommandNotFound, CodeSubcommandNotFound, CodeNoHandler, CodeCommandLoad:
		return "command"
	case CodeServiceNotFound, CodeServiceTypeMismatch, CodeServiceFactory:
		return "service"
	case CodePluginLoad, CodePluginInvalid, CodePluginHook:
		return "plugin"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeInvalidInput:
		return "validation"
	default:
		return "generic"
	}
}

// ExitCode returns the conventional process exit code for the error code
func (c Code) ExitCode() int {
	switch c {
	case CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeInvalidInput:
		return 2
	case CodeConfigError, CodeInvalidConfig:
		return 78
	case CodePermissionDenied:
		return 126
	case CodeCommandNotFound, CodeSubcommandNotFound:
		return 127
	case CodeCanceled:
		return 130
	default:
		return 1
	}
}
