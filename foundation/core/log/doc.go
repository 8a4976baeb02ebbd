// Package log provides structured logging for cmdkit.
//
// Package: log
// Title: cmdkit Structured Logging
// Description: Structured logger with levels, persistent context fields,
//              correlation ids and JSON/text/console/logfmt output. The CLI
//              runtime logs through it on stderr so command output on stdout
//              stays clean.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Usage:
//
//	import kitlog "github.com/msto63/cmdkit/foundation/core/log"
//
//	logger := kitlog.New().
//		WithLevel(kitlog.LevelDebug).
//		WithField("component", "router")
//
//	logger.Debug("resolved command", kitlog.Fields{"command": "deploy"})
//
//	timer := logger.StartTimer("plugin load")
//	// ...
//	timer.Stop()
package log
