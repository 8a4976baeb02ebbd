// File: kinds.go
// Title: CLI Error Taxonomy
// Description: Constructors for the error kinds the CLI runtime raises:
//              validation, configuration, command/service lookup failures,
//              network, filesystem, authentication, permission and
//              non-interactive environment errors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial taxonomy

package error

import (
	"fmt"
	"strings"
)

// Validation creates a field-qualified validation error
func Validation(field, message string) *Error {
	return New(message).
		WithCode(CodeValidationFailed).
		WithDetail("field", field)
}

// ValidationFailures combines several validation messages into one error.
// The message lists every failure on its own line.
func ValidationFailures(failures []string) *Error {
	msg := "validation failed"
	if len(failures) > 0 {
		msg = strings.Join(failures, "\n")
	}
	return New(msg).
		WithCode(CodeValidationFailed).
		WithDetail("failures", append([]string(nil), failures...))
}

// Configuration creates an error for a bad or unreadable config path
func Configuration(path, message string) *Error {
	return New(message).
		WithCode(CodeConfigError).
		WithDetail("path", path)
}

// CommandNotFound creates the error returned when routing finds no command.
// The known command names are included in message and details.
func CommandNotFound(name string, known []string) *Error {
	msg := fmt.Sprintf("unknown command %q", name)
	if len(known) > 0 {
		msg = fmt.Sprintf("%s, available commands: %s", msg, strings.Join(known, ", "))
	}
	return New(msg).
		WithCode(CodeCommandNotFound).
		WithDetail("command", name).
		WithDetail("available", append([]string(nil), known...))
}

// SubcommandNotFound creates the error for an unknown subcommand of parent
func SubcommandNotFound(parent, name string, known []string) *Error {
	msg := fmt.Sprintf("unknown subcommand %q for %q", name, parent)
	if len(known) > 0 {
		msg = fmt.Sprintf("%s, available subcommands: %s", msg, strings.Join(known, ", "))
	}
	return New(msg).
		WithCode(CodeSubcommandNotFound).
		WithDetail("command", parent).
		WithDetail("subcommand", name).
		WithDetail("available", append([]string(nil), known...))
}

// ServiceNotFound creates the error for a registry lookup of an unknown token
func ServiceNotFound(key string) *Error {
	return New(fmt.Sprintf("service %q is not registered", key)).
		WithCode(CodeServiceNotFound).
		WithDetail("token", key)
}

// Network creates a network error
func Network(message string) *Error {
	return New(message).WithCode(CodeNetworkError)
}

// FileSystem creates a path-qualified filesystem error
func FileSystem(path, message string) *Error {
	return New(fmt.Sprintf("%s: %s", path, message)).
		WithCode(CodeFileSystem).
		WithDetail("path", path)
}

// Authentication creates an authentication error
func Authentication(message string) *Error {
	return New(message).WithCode(CodeUnauthorized)
}

// Permission creates a permission error
func Permission(message string) *Error {
	return New(message).WithCode(CodePermissionDenied)
}

// NonInteractive creates the error returned by interactive operations when
// prompting is disabled by CI or the no-interaction switch.
func NonInteractive(operation string) *Error {
	return New(fmt.Sprintf("%s requires an interactive terminal", operation)).
		WithCode(CodeNonInteractive).
		WithOperation(operation)
}
