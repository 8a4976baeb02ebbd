// File: cli_test.go
// Title: CLI Runtime Tests
// Description: Tests for bootstrap, global switches, exit codes, built-in
//              commands and plugin integration through the runtime.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/cmdkit/foundation/cli/command"
	"github.com/msto63/cmdkit/foundation/cli/plugin"
	"github.com/msto63/cmdkit/foundation/cli/registry"
	"github.com/msto63/cmdkit/foundation/cli/router"
	"github.com/msto63/cmdkit/foundation/cli/ui"
	kitconfig "github.com/msto63/cmdkit/foundation/core/config"
	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
)

type harness struct {
	cli *CLI
	out *bytes.Buffer
	log *bytes.Buffer
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{out: &bytes.Buffer{}, log: &bytes.Buffer{}}

	if opts.Name == "" {
		opts.Name = "tool"
	}
	if opts.Config == nil {
		opts.Config = kitconfig.Empty("")
	}
	if opts.Environment == nil {
		opts.Environment = &ui.Environment{CI: true}
	}
	if opts.Logger == nil {
		opts.Logger = kitlog.NewWithConfig(kitlog.Config{
			Level:  kitlog.LevelWarn,
			Format: kitlog.FormatLogfmt,
			Output: h.log,
			Name:   opts.Name,
		})
	}
	if opts.Catalog == nil {
		opts.Catalog = plugin.NewCatalog()
	}
	opts.Stdout = h.out
	opts.Stderr = h.out
	opts.Stdin = strings.NewReader("")

	c, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.notify = func(chan<- os.Signal, ...os.Signal) {}
	c.exit = func(int) {}
	h.cli = c
	return h
}

func (h *harness) run(args ...string) int {
	return h.cli.Run(context.Background(), args)
}

func echoCommand(name string) *command.Command {
	return command.Build(command.Spec{
		Name: name,
		Handler: func(ctx *command.Context) error {
			ctx.Printf("%s %s\n", name, strings.Join(ctx.Args, " "))
			return nil
		},
	})
}

func TestBootstrapInstallsSignalHandlingOnce(t *testing.T) {
	h := newHarness(t, Options{Commands: []*command.Command{echoCommand("noop")}})

	installs := 0
	h.cli.notify = func(chan<- os.Signal, ...os.Signal) { installs++ }

	for i := 0; i < 3; i++ {
		if code := h.run("noop"); code != 0 {
			t.Fatalf("run %d exit code = %d", i, code)
		}
	}
	if installs != 1 {
		t.Errorf("signal handling installed %d times, want 1", installs)
	}
}

func TestTerminationSignal(t *testing.T) {
	h := newHarness(t, Options{})

	var (
		mu      sync.Mutex
		signals chan<- os.Signal
	)
	h.cli.notify = func(c chan<- os.Signal, _ ...os.Signal) {
		mu.Lock()
		signals = c
		mu.Unlock()
	}
	exited := make(chan int, 1)
	h.cli.exit = func(code int) { exited <- code }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.cli.bootstrap(cancel)

	mu.Lock()
	signals <- syscall.SIGTERM
	mu.Unlock()

	select {
	case code := <-exited:
		if want := 128 + int(syscall.SIGTERM); code != want {
			t.Errorf("exit code = %d, want %d", code, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("signal did not terminate the run")
	}
	if ctx.Err() == nil {
		t.Error("run context was not cancelled")
	}
	if !strings.Contains(h.log.String(), "received termination signal") {
		t.Errorf("log = %q", h.log.String())
	}
}

func TestExitCodes(t *testing.T) {
	validated := command.Build(command.Spec{
		Name:    "greet",
		Args:    []command.ArgSpec{{Name: "name", Required: true}},
		Handler: func(*command.Context) error { return nil },
	})
	failing := command.Build(command.Spec{
		Name: "fail",
		Handler: func(*command.Context) error {
			return kiterror.Permission("not allowed")
		},
	})
	panicking := command.Build(command.Spec{
		Name:    "panic",
		Handler: func(*command.Context) error { panic("boom") },
	})

	tests := []struct {
		name       string
		args       []string
		errorCodes bool
		want       int
	}{
		{"success", []string{"greet", "Alice"}, false, 0},
		{"unknown command", []string{"nope"}, false, 1},
		{"unknown command with error codes", []string{"nope"}, true, 127},
		{"validation", []string{"greet"}, false, 1},
		{"validation with error codes", []string{"greet"}, true, 2},
		{"structured error", []string{"fail"}, false, 1},
		{"structured error with error codes", []string{"fail"}, true, 126},
		{"panic", []string{"panic"}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{
				Commands:          []*command.Command{validated, failing, panicking},
				UseErrorExitCodes: tt.errorCodes,
			})
			if got := h.run(tt.args...); got != tt.want {
				t.Errorf("exit code = %d, want %d (log %q)", got, tt.want, h.log.String())
			}
		})
	}
}

func TestPanicIsLogged(t *testing.T) {
	h := newHarness(t, Options{Commands: []*command.Command{
		command.Build(command.Spec{
			Name:    "panic",
			Handler: func(*command.Context) error { panic("boom") },
		}),
	}})

	if code := h.run("panic"); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(h.log.String(), "unexpected panic") || !strings.Contains(h.log.String(), "boom") {
		t.Errorf("log = %q", h.log.String())
	}
}

func TestGlobalSwitches(t *testing.T) {
	var (
		env       ui.Environment
		promptErr error
	)
	inspect := command.Build(command.Spec{
		Name: "inspect",
		Handler: func(ctx *command.Context) error {
			env = registry.MustGet(ctx.Registry, ui.EnvironmentToken)
			prompter := registry.MustGet(ctx.Registry, ui.PrompterToken)
			_, promptErr = prompter.Input(ctx.Context(), "Name", "")
			ctx.Printf("%s\n", strings.Join(ctx.Args, ","))
			return nil
		},
	})

	h := newHarness(t, Options{
		Commands:    []*command.Command{inspect},
		Environment: &ui.Environment{},
	})
	if code := h.run("--verbose", "--no-interaction", "inspect", "--debug"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	if diff := cmp.Diff(ui.Environment{Verbose: true, NoInteraction: true}, env); diff != "" {
		t.Errorf("environment mismatch (-want +got):\n%s", diff)
	}
	if h.cli.Logger().GetLevel() != kitlog.LevelDebug {
		t.Errorf("log level = %v, want debug", h.cli.Logger().GetLevel())
	}
	if !kiterror.HasCode(promptErr, kiterror.CodeNonInteractive) {
		t.Errorf("prompt error = %v, want non-interactive", promptErr)
	}
}

func TestScanGlobalFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		rest []string
		env  ui.Environment
	}{
		{"none", []string{"run", "x"}, []string{"run", "x"}, ui.Environment{}},
		{"debug", []string{"--debug", "run"}, []string{"run"}, ui.Environment{Debug: true}},
		{"all", []string{"--debug", "--verbose", "--no-interaction"}, []string{}, ui.Environment{Debug: true, Verbose: true, NoInteraction: true}},
		{"after command", []string{"run", "--verbose"}, []string{"run", "--verbose"}, ui.Environment{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{Environment: &ui.Environment{}})
			rest := h.cli.scanGlobalFlags(tt.args)
			if diff := cmp.Diff(tt.rest, rest); diff != "" {
				t.Errorf("rest mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.env, h.cli.Environment()); diff != "" {
				t.Errorf("environment mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuiltinCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"version", []string{"version"}, []string{"tool 1.2.3\n"}},
		{"version alias", []string{"--version"}, []string{"tool 1.2.3\n"}},
		{"short version alias", []string{"-V"}, []string{"tool 1.2.3\n"}},
		{"full version", []string{"version", "--full"}, []string{"tool 1.2.3", "cmdkit:", "go:"}},
		{"empty args show help", nil, []string{"Says hello", "Commands:", "version", "help", "hello"}},
		{"help alias", []string{"-h"}, []string{"Commands:"}},
		{"command help", []string{"help", "hello"}, []string{"hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{
				Version:     "1.2.3",
				Description: "Says hello",
				Commands:    []*command.Command{echoCommand("hello")},
			})
			if code := h.run(tt.args...); code != 0 {
				t.Fatalf("exit code = %d (log %q)", code, h.log.String())
			}
			for _, want := range tt.want {
				if !strings.Contains(h.out.String(), want) {
					t.Errorf("output %q does not contain %q", h.out.String(), want)
				}
			}
		})
	}
}

func TestDefaultCommandFromConfig(t *testing.T) {
	cfg, err := kitconfig.LoadFromString("[cli]\ndefault_command = \"hello\"\n", kitconfig.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	h := newHarness(t, Options{Config: cfg, Commands: []*command.Command{echoCommand("hello")}})
	if code := h.run("world"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if got := h.out.String(); got != "hello world\n" {
		t.Errorf("output = %q", got)
	}
}

func TestLazyEntriesAndMiddleware(t *testing.T) {
	var order []string
	mw := func(label string) command.Middleware {
		return func(ctx *command.Context, cmd *command.Command, next command.Next) error {
			order = append(order, label)
			return next()
		}
	}

	loads := 0
	h := newHarness(t, Options{
		Middleware: []command.Middleware{mw("first"), mw("second")},
		Lazy: map[string]router.Entry{
			"deploy": router.Deferred(func() (*command.Command, error) {
				loads++
				return echoCommand("deploy"), nil
			}, "d"),
		},
	})

	for _, args := range [][]string{{"deploy", "prod"}, {"d", "stage"}} {
		if code := h.run(args...); code != 0 {
			t.Fatalf("%v exit code = %d", args, code)
		}
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
	if diff := cmp.Diff([]string{"first", "second", "first", "second"}, order); diff != "" {
		t.Errorf("middleware order mismatch (-want +got):\n%s", diff)
	}
	if got := h.out.String(); got != "deploy prod\ndeploy stage\n" {
		t.Errorf("output = %q", got)
	}
}

var greetingToken = registry.NewToken[string]("greeting")

func TestPluginIntegration(t *testing.T) {
	counts := map[string]int{}
	hooks := func(name string) plugin.Hooks {
		return plugin.Hooks{
			BeforeCommand: func(*command.Context, *command.Command) error {
				counts[name+".before"]++
				return nil
			},
			AfterCommand: func(*command.Context, *command.Command, error) {
				counts[name+".after"]++
			},
		}
	}

	greeter := &plugin.Plugin{
		Name: "greeter",
		Services: []plugin.Service{{
			Token:   greetingToken,
			Factory: func(*registry.Registry) (any, error) { return "hello", nil },
		}},
		Commands: map[string]*command.Command{
			"c": command.Build(command.Spec{
				Name: "c",
				Handler: func(ctx *command.Context) error {
					ctx.Printf("%s\n", registry.MustGet(ctx.Registry, greetingToken))
					return nil
				},
			}),
		},
		Hooks: hooks("greeter"),
	}
	observer := &plugin.Plugin{Name: "observer", Hooks: hooks("observer")}

	h := newHarness(t, Options{
		Plugins:  []*plugin.Plugin{greeter, observer},
		Commands: []*command.Command{echoCommand("own")},
	})

	if code := h.run("c"); code != 0 {
		t.Fatalf("exit code = %d (log %q)", code, h.log.String())
	}
	if code := h.run("own"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	if got := h.out.String(); got != "hello\nown \n" {
		t.Errorf("output = %q", got)
	}
	want := map[string]int{"greeter.before": 2, "greeter.after": 2, "observer.before": 2, "observer.after": 2}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("hook counts mismatch (-want +got):\n%s", diff)
	}

	loaded := h.cli.Plugins()
	if len(loaded) != 2 || loaded[0].Name != "greeter" || loaded[1].Name != "observer" {
		t.Errorf("Plugins() = %v", loaded)
	}
}

func TestPluginHookFailureFailsRun(t *testing.T) {
	broken := &plugin.Plugin{
		Name: "broken",
		Hooks: plugin.Hooks{
			BeforeInit: func(context.Context, *registry.Registry) error { return errors.New("no backend") },
		},
	}

	h := newHarness(t, Options{Plugins: []*plugin.Plugin{broken}, UseErrorExitCodes: true})
	err := h.cli.Execute(context.Background(), []string{"help"})
	if !kiterror.HasCode(err, kiterror.CodePluginHook) {
		t.Fatalf("Execute() error = %v, want plugin hook error", err)
	}
}

func writeManifest(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func dnsCatalog() *plugin.Catalog {
	catalog := plugin.NewCatalog()
	catalog.Register(plugin.Entry{
		Name: "dns",
		Factory: func() (*plugin.Plugin, error) {
			return &plugin.Plugin{
				Name:     "dns",
				Commands: map[string]*command.Command{"dns": echoCommand("dns")},
			}, nil
		},
	})
	return catalog
}

func TestPluginDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, filepath.Join(dir, "dns", "plugin.yaml"), "name: dns\nversion: 2.0.0\ncmdkit-plugin: true\n")
	writeManifest(t, filepath.Join(dir, "ghost", "plugin.toml"), "name = \"ghost\"\nplugin = true\n")

	h := newHarness(t, Options{
		Catalog:    dnsCatalog(),
		ProjectDir: t.TempDir(),
		PluginDirs: []string{dir},
	})

	if code := h.run("dns", "zone"); code != 0 {
		t.Fatalf("exit code = %d (log %q)", code, h.log.String())
	}
	if got := h.out.String(); got != "dns zone\n" {
		t.Errorf("output = %q", got)
	}

	loaded := h.cli.Plugins()
	if len(loaded) != 1 || loaded[0].Version != "2.0.0" {
		t.Errorf("Plugins() = %+v", loaded)
	}
	if errs := h.cli.LoadErrors(); len(errs) != 1 || !strings.Contains(errs[0].Error(), "ghost") {
		t.Errorf("LoadErrors() = %v", errs)
	}
}

func TestPluginSettingsFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, filepath.Join(dir, "dns", "plugin.yaml"), "name: dns\ncmdkit-plugin: true\n")
	writeManifest(t, filepath.Join(dir, "ghost", "plugin.yaml"), "name: ghost\ncmdkit-plugin: true\n")

	cfg, err := kitconfig.LoadFromString("[plugins]\nenabled = [\"dns\"]\ndirs = [\""+filepath.ToSlash(dir)+"\"]\n", kitconfig.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	h := newHarness(t, Options{Config: cfg, Catalog: dnsCatalog(), ProjectDir: t.TempDir()})
	if code := h.run("dns"); code != 0 {
		t.Fatalf("exit code = %d (log %q)", code, h.log.String())
	}
	if errs := h.cli.LoadErrors(); len(errs) != 0 {
		t.Errorf("LoadErrors() = %v", errs)
	}
}

func TestDeclaredAndDirectoryPluginsLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, filepath.Join(dir, "cmdkit.yaml"), "plugins: [dns]\nplugin_dirs: [plugins]\n")
	writeManifest(t, filepath.Join(dir, "plugins", "local", "plugin.yaml"), "cmdkit-plugin: true\n")

	cfg, err := kitconfig.Load(filepath.Join(dir, "cmdkit.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	catalog := dnsCatalog()
	catalog.Register(plugin.Entry{
		Name: "local",
		Factory: func() (*plugin.Plugin, error) {
			return &plugin.Plugin{
				Name:     "local",
				Commands: map[string]*command.Command{"local": echoCommand("local")},
			}, nil
		},
	})

	h := newHarness(t, Options{Config: cfg, Catalog: catalog, ProjectDir: dir})
	if code := h.run("local", "x"); code != 0 {
		t.Fatalf("exit code = %d (log %q)", code, h.log.String())
	}
	if code := h.run("dns"); code != 0 {
		t.Fatalf("exit code = %d (log %q)", code, h.log.String())
	}

	var names []string
	for _, p := range h.cli.Plugins() {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"dns", "local"}, names); diff != "" {
		t.Errorf("Plugins() (-want +got):\n%s", diff)
	}
	if errs := h.cli.LoadErrors(); len(errs) != 0 {
		t.Errorf("LoadErrors() = %v", errs)
	}
}

func TestDeclaredPluginWithIneligibleManifestIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, filepath.Join(dir, "cmdkit.yaml"), "plugins: [dns]\nplugin_dirs: [plugins]\n")
	writeManifest(t, filepath.Join(dir, "plugins", "dns", "plugin.yaml"), "plugin: false\nversion: 2.0.0\n")

	h := newHarness(t, Options{Catalog: dnsCatalog(), ProjectDir: dir, DiscoverPlugins: true})
	if code := h.run("dns"); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if errs := h.cli.LoadErrors(); len(errs) != 1 || !strings.Contains(errs[0].Error(), "not eligible") {
		t.Errorf("LoadErrors() = %v", errs)
	}
}

func TestDebugLogsAuthoringWarnings(t *testing.T) {
	sloppy := command.Build(command.Spec{
		Name: "sloppy",
		Args: []command.ArgSpec{
			{Name: "first"},
			{Name: "second", Required: true},
		},
		Handler: func(*command.Context) error { return nil },
	})

	h := newHarness(t, Options{Commands: []*command.Command{sloppy}, Environment: &ui.Environment{}})
	if code := h.run("--debug", "sloppy", "a", "b"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(h.log.String(), "command definition") || !strings.Contains(h.log.String(), "sloppy") {
		t.Errorf("log = %q", h.log.String())
	}
}

func TestNewWithMissingConfigFile(t *testing.T) {
	_, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")})
	if !kiterror.HasCode(err, kiterror.CodeConfigError) {
		t.Errorf("New() error = %v, want config error", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg, err := kitconfig.LoadFromString("[log]\nformat = \"xml\"\n\n[plugins]\ndebug = \"often\"\ndirs = \"plugins\"\n", kitconfig.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	_, err = New(Options{Config: cfg, Logger: kitlog.NewNop()})
	if !kiterror.HasCode(err, kiterror.CodeInvalidConfig) {
		t.Fatalf("New() error = %v, want invalid configuration", err)
	}
	for _, key := range []string{"log.format", "plugins.debug", "plugins.dirs"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not name %s", err.Error(), key)
		}
	}
}
