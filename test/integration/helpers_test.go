package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msto63/cmdkit/foundation/cli"
	"github.com/msto63/cmdkit/foundation/cli/plugin"
	"github.com/msto63/cmdkit/foundation/cli/ui"
	kitconfig "github.com/msto63/cmdkit/foundation/core/config"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
)

// program is a CLI under test with captured output and log
type program struct {
	cli *cli.CLI
	out *bytes.Buffer
	log *bytes.Buffer
}

// newProgram builds a CLI that writes into buffers and never prompts
func newProgram(t *testing.T, opts cli.Options) *program {
	t.Helper()
	p := &program{out: &bytes.Buffer{}, log: &bytes.Buffer{}}

	if opts.Name == "" {
		opts.Name = "acme"
	}
	if opts.Config == nil {
		opts.Config = kitconfig.Empty("")
	}
	if opts.Catalog == nil {
		opts.Catalog = plugin.NewCatalog()
	}
	opts.Environment = &ui.Environment{CI: true}
	opts.Logger = kitlog.NewWithConfig(kitlog.Config{
		Level:  kitlog.LevelInfo,
		Format: kitlog.FormatLogfmt,
		Output: p.log,
		Name:   opts.Name,
	})
	opts.Stdin = strings.NewReader("")
	opts.Stdout = p.out
	opts.Stderr = p.out

	c, err := cli.New(opts)
	requireNoError(t, err, "cli.New failed")
	p.cli = c
	return p
}

func (p *program) run(args ...string) int {
	p.out.Reset()
	return p.cli.Run(context.Background(), args)
}

// writeFile creates path below dir with content
func writeFile(t *testing.T, dir, path, content string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(path))
	requireNoError(t, os.MkdirAll(filepath.Dir(full), 0o755), "mkdir failed")
	requireNoError(t, os.WriteFile(full, []byte(content), 0o644), "write failed")
	return full
}

// requireNoError fails the test if err is not nil
func requireNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

// requireEqual fails the test if expected != actual
func requireEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// requireContains fails the test if s lacks any of the parts
func requireContains(t *testing.T, s string, parts ...string) {
	t.Helper()
	for _, part := range parts {
		if !strings.Contains(s, part) {
			t.Fatalf("expected %q to contain %q", s, part)
		}
	}
}

// logTestStart logs the start of a test
func logTestStart(t *testing.T, area, testName string) {
	t.Helper()
	t.Logf("=== %s: %s ===", area, testName)
}
