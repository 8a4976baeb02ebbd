// Package error provides structured error handling for cmdkit.
//
// Package: error
// Title: cmdkit Error Handling
// Description: Structured errors with codes, severity, exit codes, details
//              and stack traces, plus constructors for every error kind the
//              CLI runtime raises.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Usage:
//
//	import kiterror "github.com/msto63/cmdkit/foundation/core/error"
//
//	err := kiterror.CommandNotFound("deploy", []string{"help", "version"})
//	if kiterror.HasCode(err, kiterror.CodeCommandNotFound) {
//		// ...
//	}
//
//	msg, code := kiterror.FormatForExit(err)
package error
