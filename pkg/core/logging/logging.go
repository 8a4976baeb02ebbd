// ============================================================================
// cmdkit - declarative CLI runtime
// ============================================================================
//
// Package:     logging
// Description: Factory for the process logger of a cmdkit CLI
// Author:      Mike Stoffels
// Created:     2025-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	kitconfig "github.com/msto63/cmdkit/foundation/core/config"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Program name
	Name string

	// Log level (trace, debug, info, warn, error, fatal, audit)
	Level string

	// Output format (console, text, logfmt, json; default: console)
	Format string

	// Output writer (default: stderr)
	Output io.Writer

	// Additional outputs, e.g. a log file
	AdditionalOutputs []io.Writer

	// Add file:line of the call site
	EnableCaller bool
}

// DefaultLoggerConfig returns the configuration for an interactive CLI:
// warnings and errors on stderr in console format
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "console",
	}
}

// FromConfig reads log.level and log.format from cfg on top of the defaults
func FromConfig(name string, cfg *kitconfig.Config) LoggerConfig {
	lc := DefaultLoggerConfig(name)
	if cfg == nil {
		return lc
	}
	lc.Level = cfg.GetString("log.level", lc.Level)
	lc.Format = cfg.GetString("log.format", lc.Format)
	lc.EnableCaller = cfg.GetBool("log.caller", false)
	return lc
}

// NewLogger creates a logger from cfg. Unknown levels and formats fall back
// to warn and console.
func NewLogger(cfg LoggerConfig) *kitlog.Logger {
	level, err := kitlog.ParseLevel(cfg.Level)
	if err != nil {
		level = kitlog.LevelWarn
	}

	format, err := kitlog.ParseFormat(cfg.Format)
	if err != nil {
		format = kitlog.FormatConsole
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return kitlog.NewWithConfig(kitlog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.Name,
		EnableCaller: cfg.EnableCaller,
	})
}
