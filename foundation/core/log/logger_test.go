// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, context fields, correlation ids,
//              error logging and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: level, Format: format, Output: &buf})
	return logger, &buf
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		min     Level
		logFn   func(*Logger)
		wantOut bool
	}{
		{"debug below info", LevelInfo, func(l *Logger) { l.Debug("x") }, false},
		{"info at info", LevelInfo, func(l *Logger) { l.Info("x") }, true},
		{"warn above info", LevelInfo, func(l *Logger) { l.Warn("x") }, true},
		{"debug at debug", LevelDebug, func(l *Logger) { l.Debug("x") }, true},
		{"trace below debug", LevelDebug, func(l *Logger) { l.Trace("x") }, false},
		{"audit always", LevelFatal, func(l *Logger) { l.Audit("x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(tt.min, FormatText)
			tt.logFn(logger)
			if got := buf.Len() > 0; got != tt.wantOut {
				t.Errorf("output written = %v, want %v (%q)", got, tt.wantOut, buf.String())
			}
		})
	}
}

func TestWithFieldsAreCopied(t *testing.T) {
	base, buf := newBufferLogger(LevelInfo, FormatLogfmt)
	child := base.WithField("component", "router")

	base.Info("from base")
	if strings.Contains(buf.String(), "component=") {
		t.Errorf("base logger picked up child field: %q", buf.String())
	}

	buf.Reset()
	child.Info("from child", Fields{"command": "deploy"})
	out := buf.String()
	for _, want := range []string{`component="router"`, `command="deploy"`, `message="from child"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestCorrelationIDInJSON(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger.WithCorrelationID("abc-123").WithName("cli").Info("started")

	var data map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if data["correlation_id"] != "abc-123" {
		t.Errorf("correlation_id = %v", data["correlation_id"])
	}
	if data["logger"] != "cli" {
		t.Errorf("logger = %v", data["logger"])
	}
	if data["level"] != "info" {
		t.Errorf("level = %v", data["level"])
	}
}

func TestErrorWithErr(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)
	logger.ErrorWithErr("load failed", errors.New("boom"))

	if !strings.Contains(buf.String(), `error="boom"`) {
		t.Errorf("output %q missing error", buf.String())
	}
}

func TestLogError(t *testing.T) {
	t.Run("validation logs as warning", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelDebug, FormatLogfmt)
		logger.LogError(kiterror.Validation("name", "is required"))

		out := buf.String()
		if !strings.Contains(out, "level=warn") {
			t.Errorf("want warn level, got %q", out)
		}
		if !strings.Contains(out, "error_code=VALIDATION_FAILED") {
			t.Errorf("missing error code in %q", out)
		}
	})

	t.Run("plain error logs as error", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelDebug, FormatLogfmt)
		logger.LogError(errors.New("plain"))
		if !strings.Contains(buf.String(), "level=error") {
			t.Errorf("want error level, got %q", buf.String())
		}
	})

	t.Run("nil is ignored", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelDebug, FormatLogfmt)
		logger.LogError(nil)
		if buf.Len() != 0 {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestSetLevel(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)
	if logger.IsLevelEnabled(LevelDebug) {
		t.Fatal("debug should be disabled")
	}
	logger.SetLevel(LevelDebug)
	logger.Debug("now visible")
	if buf.Len() == 0 {
		t.Error("debug message not written after SetLevel")
	}
	if logger.GetLevel() != LevelDebug {
		t.Errorf("GetLevel() = %v", logger.GetLevel())
	}
}

func TestCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatLogfmt, Output: &buf, EnableCaller: true})
	logger.Info("where")
	if !strings.Contains(buf.String(), `caller="logger_test.go:`) {
		t.Errorf("caller not reported: %q", buf.String())
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatLogfmt)

	timer := logger.StartTimer("plugin load").WithField("plugin", "dns")
	timer.Stop()

	out := buf.String()
	for _, want := range []string{`message="plugin load completed"`, `plugin="dns"`, "duration_ms="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	buf.Reset()
	if d := timer.Stop(); d != 0 {
		t.Errorf("second Stop() = %v, want 0", d)
	}
	if buf.Len() != 0 {
		t.Errorf("second Stop() logged %q", buf.String())
	}
}

func TestTimerStopWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)
	logger.StartTimer("exec").StopWithError(errors.New("bad"))
	if !strings.Contains(buf.String(), "exec failed") {
		t.Errorf("output %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	logger := NewNop()
	logger.Error("dropped")
	if logger.IsLevelEnabled(LevelError) {
		t.Error("nop logger should not enable error level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARNING ", LevelWarn, false},
		{"err", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
