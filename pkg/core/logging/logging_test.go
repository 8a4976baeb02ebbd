package logging

import (
	"bytes"
	"io"
	"strings"
	"testing"

	kitconfig "github.com/msto63/cmdkit/foundation/core/config"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("tool")
	if cfg.Name != "tool" || cfg.Level != "warn" || cfg.Format != "console" {
		t.Errorf("DefaultLoggerConfig() = %+v", cfg)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		want   kitlog.Level
	}{
		{"debug", "debug", "logfmt", kitlog.LevelDebug},
		{"error", "error", "json", kitlog.LevelError},
		{"invalid level falls back to warn", "loud", "text", kitlog.LevelWarn},
		{"empty", "", "", kitlog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(LoggerConfig{Name: "tool", Level: tt.level, Format: tt.format, Output: &bytes.Buffer{}})
			if logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestAdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:             "info",
		Format:            "logfmt",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})
	logger.Info("loaded", kitlog.Fields{"plugins": 2})

	for name, buf := range map[string]*bytes.Buffer{"primary": &primary, "extra": &extra} {
		if !strings.Contains(buf.String(), `message="loaded"`) || !strings.Contains(buf.String(), "plugins=2") {
			t.Errorf("%s output = %q", name, buf.String())
		}
	}
}

func TestFromConfig(t *testing.T) {
	cfg, err := kitconfig.LoadFromString("[log]\nlevel = \"debug\"\nformat = \"json\"\n", kitconfig.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	lc := FromConfig("tool", cfg)
	if lc.Level != "debug" || lc.Format != "json" {
		t.Errorf("FromConfig() = %+v", lc)
	}

	lc = FromConfig("tool", nil)
	if lc.Level != "warn" {
		t.Errorf("FromConfig(nil) = %+v", lc)
	}

	var out bytes.Buffer
	lc = FromConfig("tool", kitconfig.Empty(""))
	lc.Output = &out
	NewLogger(lc).Warn("plugin skipped")
	if !strings.Contains(out.String(), "plugin skipped") {
		t.Errorf("output = %q", out.String())
	}
}
