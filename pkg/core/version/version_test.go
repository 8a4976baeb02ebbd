package version

import (
	"regexp"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestFrameworkVersion(t *testing.T) {
	if !semverRegex.MatchString(Framework) {
		t.Errorf("Framework version %q does not match semver format (x.y.z)", Framework)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{"explicit version", "2.3.4", "2.3.4"},
		{"empty falls back to framework", "", Framework},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Get("tool", tt.version)
			if info.Version != tt.expected {
				t.Errorf("Version = %q, want %q", info.Version, tt.expected)
			}
			if info.Short() != "tool "+tt.expected {
				t.Errorf("Short() = %q", info.Short())
			}
			if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
				t.Errorf("runtime info missing: %+v", info)
			}
		})
	}
}

func TestString(t *testing.T) {
	s := Get("tool", "1.0.0").String()
	for _, want := range []string{"tool 1.0.0", "cmdkit:  " + Framework, "commit:"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}
