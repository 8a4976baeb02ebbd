// File: plugin_test.go
// Title: Plugin Layer Tests
// Description: Tests for manifest parsing, discovery, loading through the
//              catalog and integration into registry and router.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package plugin

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/cmdkit/foundation/cli/command"
	"github.com/msto63/cmdkit/foundation/cli/registry"
	"github.com/msto63/cmdkit/foundation/cli/router"
	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		want     string
		version  string
		eligible bool
	}{
		{
			name:     "yaml tool marker",
			file:     "plugin.yaml",
			content:  "name: dns\nversion: 1.2.0\ncmdkit-plugin: true\n",
			want:     "dns",
			version:  "1.2.0",
			eligible: true,
		},
		{
			name:     "yaml generic marker as string",
			file:     "plugin.yml",
			content:  "name: dns\nplugin: \"yes\"\n",
			want:     "dns",
			eligible: true,
		},
		{
			name:    "yaml marker false",
			file:    "plugin.yaml",
			content: "name: dns\ncmdkit-plugin: false\n",
			want:    "dns",
		},
		{
			name:    "yaml without marker",
			file:    "plugin.yaml",
			content: "name: dns\n",
			want:    "dns",
		},
		{
			name:     "toml",
			file:     "plugin.toml",
			content:  "name = \"deploy\"\nversion = \"0.3.1\"\ncmdkit-plugin = 1\n",
			want:     "deploy",
			version:  "0.3.1",
			eligible: true,
		},
		{
			name:     "hcl",
			file:     "plugin.hcl",
			content:  "name = \"cache\"\nversion = \"2.0.0\"\nplugin = true\n",
			want:     "cache",
			version:  "2.0.0",
			eligible: true,
		},
		{
			name:    "hcl zero marker",
			file:    "plugin.hcl",
			content: "name = \"cache\"\ncmdkit-plugin = 0\n",
			want:    "cache",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.content), tt.file)
			if err != nil {
				t.Fatalf("ParseManifest() error = %v", err)
			}
			if m.Name != tt.want || m.Version != tt.version || m.Eligible != tt.eligible {
				t.Errorf("got name=%q version=%q eligible=%v", m.Name, m.Version, m.Eligible)
			}
		})
	}
}

func TestParseManifestErrors(t *testing.T) {
	for _, tc := range []struct{ file, content string }{
		{"plugin.json", "{}"},
		{"plugin.toml", "name = "},
		{"plugin.hcl", "name = \n"},
		{"plugin.yaml", "name: [unclosed\n"},
	} {
		_, err := ParseManifest([]byte(tc.content), tc.file)
		if !kiterror.HasCode(err, kiterror.CodePluginInvalid) {
			t.Errorf("%s: error = %v", tc.file, err)
		}
	}
}

func TestProjectManifest(t *testing.T) {
	dir := t.TempDir()

	t.Run("none", func(t *testing.T) {
		pm, err := FindProjectManifest(dir)
		if err != nil || pm != nil {
			t.Errorf("FindProjectManifest() = %v, %v", pm, err)
		}
	})

	t.Run("list form", func(t *testing.T) {
		sub := filepath.Join(dir, "list")
		writeFile(t, filepath.Join(sub, "cmdkit.yaml"), "plugins: [dns, deploy]\nplugin_dirs: [plugins]\n")
		pm, err := FindProjectManifest(sub)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"dns", "deploy"}, pm.Plugins); diff != "" {
			t.Errorf("Plugins (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{filepath.Join(sub, "plugins")}, pm.PluginDirs); diff != "" {
			t.Errorf("PluginDirs (-want +got):\n%s", diff)
		}
	})

	t.Run("table form shared with config", func(t *testing.T) {
		sub := filepath.Join(dir, "table")
		writeFile(t, filepath.Join(sub, "cmdkit.toml"), `
[log]
level = "debug"

[plugins]
enabled = ["dns"]
dirs = ["/opt/plugins"]
`)
		pm, err := FindProjectManifest(sub)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"dns"}, pm.Plugins); diff != "" {
			t.Errorf("Plugins (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"/opt/plugins"}, pm.PluginDirs); diff != "" {
			t.Errorf("PluginDirs (-want +got):\n%s", diff)
		}
	})

	t.Run("hcl", func(t *testing.T) {
		sub := filepath.Join(dir, "hcl")
		writeFile(t, filepath.Join(sub, "cmdkit.hcl"), "plugins = [\"cache\"]\n")
		pm, err := FindProjectManifest(sub)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"cache"}, pm.Plugins); diff != "" {
			t.Errorf("Plugins (-want +got):\n%s", diff)
		}
	})
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cmdkit.yaml"), "plugins: [dns]\nplugin_dirs: [plugins]\n")
	writeFile(t, filepath.Join(dir, "plugins", "a", "plugin.yaml"), "name: alpha\nversion: 1.0.0\ncmdkit-plugin: true\n")
	writeFile(t, filepath.Join(dir, "plugins", "c", "plugin.toml"), "name = ")
	writeFile(t, filepath.Join(dir, "plugins", "nested", "beta", "plugin.hcl"), "plugin = false\n")
	writeFile(t, filepath.Join(dir, "plugins", "d", "plugin.yaml"), "name: dns\nversion: 9.9.9\nplugin: true\n")
	writeFile(t, filepath.Join(dir, "plugins", "e", "README.md"), "not a manifest")

	candidates, errs := Discover(DiscoverOptions{
		ProjectDir: dir,
		Dirs:       []string{filepath.Join(dir, "missing")},
	})

	var names []string
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"dns", "alpha", "beta"}, names); diff != "" {
		t.Errorf("candidates (-want +got):\n%s", diff)
	}
	wantDNS := Candidate{Name: "dns", Source: "project", Path: filepath.Join(dir, "plugins", "d"), Version: "9.9.9", Eligible: true}
	if diff := cmp.Diff(wantDNS, candidates[0]); diff != "" {
		t.Errorf("project candidate (-want +got):\n%s", diff)
	}
	if candidates[1].Version != "1.0.0" || !candidates[1].Eligible {
		t.Errorf("alpha = %+v", candidates[1])
	}
	if candidates[2].Eligible {
		t.Errorf("beta should not be eligible: %+v", candidates[2])
	}
	if len(errs) != 2 {
		t.Errorf("errors = %v, want missing dir and broken manifest", errs)
	}

	filtered, _ := Discover(DiscoverOptions{ProjectDir: dir, Enabled: []string{"alpha"}})
	names = names[:0]
	for _, c := range filtered {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"dns", "alpha"}, names); diff != "" {
		t.Errorf("filtered candidates (-want +got):\n%s", diff)
	}
}

func TestDiscoverDeclaredNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cmdkit.yaml"), "plugins: [dns]\nplugin_dirs: [plugins]\n")
	writeFile(t, filepath.Join(dir, "plugins", "dns", "plugin.yaml"), "plugin: false\nversion: 2.0.0\n")
	writeFile(t, filepath.Join(dir, "plugins", "local", "plugin.yaml"), "cmdkit-plugin: true\n")

	candidates, errs := Discover(DiscoverOptions{ProjectDir: dir, Plugins: []string{"dns", "cache"}})
	if len(errs) != 0 {
		t.Fatalf("errors = %v", errs)
	}

	want := []Candidate{
		{Name: "dns", Source: "project", Path: filepath.Join(dir, "plugins", "dns"), Version: "2.0.0", Eligible: false},
		{Name: "cache", Source: "config", Eligible: true},
		{Name: "local", Source: filepath.Join(dir, "plugins", "local", "plugin.yaml"), Path: filepath.Join(dir, "plugins", "local"), Eligible: true},
	}
	if diff := cmp.Diff(want, candidates); diff != "" {
		t.Errorf("candidates (-want +got):\n%s", diff)
	}
}

func TestLoader(t *testing.T) {
	catalog := NewCatalog()
	catalog.Register(Entry{Name: "dns", Version: "1.0.0", Factory: func() (*Plugin, error) {
		return &Plugin{Name: "dns"}, nil
	}})
	catalog.Register(Entry{Name: "broken", Factory: func() (*Plugin, error) {
		return nil, errors.New("missing dependency")
	}})
	catalog.Register(Entry{Name: "anonymous", Factory: func() (*Plugin, error) {
		return &Plugin{}, nil
	}})
	catalog.Register(Entry{Name: "panics", Factory: func() (*Plugin, error) {
		panic("boom")
	}})

	candidates := []Candidate{
		{Name: "dns", Source: "project", Eligible: true},
		{Name: "broken", Eligible: true},
		{Name: "anonymous", Eligible: true},
		{Name: "panics", Eligible: true},
		{Name: "unknown", Eligible: true},
		{Name: "dns-ineligible", Eligible: false},
	}

	t.Run("errors are swallowed", func(t *testing.T) {
		var logs bytes.Buffer
		logger := kitlog.NewWithConfig(kitlog.Config{Level: kitlog.LevelDebug, Format: kitlog.FormatLogfmt, Output: &logs})
		l := NewLoader(LoaderOptions{Catalog: catalog, Logger: logger})

		loaded := l.Load(context.Background(), candidates)
		if len(loaded) != 1 || loaded[0].Name != "dns" {
			t.Fatalf("loaded = %+v", loaded)
		}
		if loaded[0].Version != "1.0.0" || loaded[0].Source != "project" {
			t.Errorf("loaded[0] = %+v", loaded[0])
		}
		if got := len(l.LoadErrors()); got != 5 {
			t.Errorf("LoadErrors() = %d", got)
		}
		if strings.Contains(logs.String(), "plugin skipped") {
			t.Errorf("skips logged without debug:\n%s", logs.String())
		}
	})

	t.Run("debug logs detail", func(t *testing.T) {
		var logs bytes.Buffer
		logger := kitlog.NewWithConfig(kitlog.Config{Level: kitlog.LevelDebug, Format: kitlog.FormatLogfmt, Output: &logs})
		l := NewLoader(LoaderOptions{Catalog: catalog, Logger: logger, Debug: true})
		l.Load(context.Background(), candidates)

		for _, want := range []string{"missing dependency", "does not declare a name", "panicked", "not linked", "not eligible"} {
			if !strings.Contains(logs.String(), want) {
				t.Errorf("logs missing %q:\n%s", want, logs.String())
			}
		}
	})
}

var (
	clockToken = registry.NewToken[*clock]("clock")
	cacheToken = registry.NewToken[*cache]("cache")
)

type clock struct{ now string }
type cache struct{ size int }

func TestManagerIntegrate(t *testing.T) {
	reg := registry.New()
	r := router.New(router.Options{Registry: reg, Logger: kitlog.NewNop(), Out: &bytes.Buffer{}})

	var trace []string
	singletonCalls, transientCalls, changed := 0, 0, 0

	hooks := func(name string) Hooks {
		return Hooks{
			BeforeInit: func(context.Context, *registry.Registry) error {
				trace = append(trace, name+":beforeInit")
				return nil
			},
			AfterInit: func(_ context.Context, reg *registry.Registry) error {
				trace = append(trace, name+":afterInit")
				return nil
			},
			BeforeCommand: func(ctx *command.Context, cmd *command.Command) error {
				trace = append(trace, name+":before:"+cmd.Name)
				return nil
			},
			AfterCommand: func(ctx *command.Context, cmd *command.Command, err error) {
				trace = append(trace, name+":after:"+cmd.Name)
			},
		}
	}

	timeP := &Plugin{
		Name: "time",
		Services: []Service{{
			Token: clockToken,
			Factory: func(*registry.Registry) (any, error) {
				singletonCalls++
				return &clock{now: "noon"}, nil
			},
		}},
		Commands: map[string]*command.Command{
			"now": command.Build(command.Spec{Handler: func(ctx *command.Context) error {
				trace = append(trace, "handler:now:"+registry.MustGet(ctx.Registry, clockToken).now)
				return nil
			}}),
		},
		Hooks: hooks("time"),
	}
	cacheP := &Plugin{
		Name: "cache",
		Services: []Service{{
			Token:     cacheToken,
			Lifecycle: Transient,
			Factory: func(*registry.Registry) (any, error) {
				transientCalls++
				return &cache{size: 8}, nil
			},
		}},
		Commands: map[string]*command.Command{
			"flush": command.Build(command.Spec{Name: "flush", Handler: func(*command.Context) error {
				trace = append(trace, "handler:flush")
				return nil
			}}),
		},
		Hooks: hooks("cache"),
	}

	m := NewManager(ManagerOptions{
		Registry:          reg,
		Target:            r,
		Logger:            kitlog.NewNop(),
		OnCommandsChanged: func() { changed++ },
	})
	r.Use(m.HookMiddleware())

	if err := m.Integrate(context.Background(), Explicit(timeP, cacheP, &Plugin{Name: "time"})...); err != nil {
		t.Fatalf("Integrate() error = %v", err)
	}

	if len(m.Loaded()) != 2 {
		t.Errorf("duplicate plugin was integrated: %d", len(m.Loaded()))
	}
	if singletonCalls != 1 || transientCalls != 0 {
		t.Errorf("factory calls singleton=%d transient=%d", singletonCalls, transientCalls)
	}
	if changed != 2 {
		t.Errorf("OnCommandsChanged calls = %d", changed)
	}
	if c, err := registry.Get(reg, cacheToken); err != nil || c.size != 8 || transientCalls != 1 {
		t.Errorf("transient service = %v, %v (calls %d)", c, err, transientCalls)
	}

	want := []string{"time:beforeInit", "time:afterInit", "cache:beforeInit", "cache:afterInit"}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Errorf("init order (-want +got):\n%s", diff)
	}

	trace = nil
	if err := r.Route(context.Background(), []string{"now"}); err != nil {
		t.Fatalf("Route(now) error = %v", err)
	}
	if err := r.Route(context.Background(), []string{"flush"}); err != nil {
		t.Fatalf("Route(flush) error = %v", err)
	}
	want = []string{
		"time:before:now", "cache:before:now", "handler:now:noon", "time:after:now", "cache:after:now",
		"time:before:flush", "cache:before:flush", "handler:flush", "time:after:flush", "cache:after:flush",
	}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Errorf("dispatch hooks (-want +got):\n%s", diff)
	}
}

func TestBeforeCommandAborts(t *testing.T) {
	r := router.New(router.Options{Logger: kitlog.NewNop(), Out: &bytes.Buffer{}})
	m := NewManager(ManagerOptions{Registry: r.Registry(), Target: r, Logger: kitlog.NewNop()})
	r.Use(m.HookMiddleware())

	ran, afterRan := false, false
	err := m.Integrate(context.Background(), Explicit(&Plugin{
		Name: "guard",
		Commands: map[string]*command.Command{
			"run": command.Build(command.Spec{Handler: func(*command.Context) error { ran = true; return nil }}),
		},
		Hooks: Hooks{
			BeforeCommand: func(*command.Context, *command.Command) error { return errors.New("denied") },
			AfterCommand:  func(*command.Context, *command.Command, error) { afterRan = true },
		},
	})...)
	if err != nil {
		t.Fatal(err)
	}

	err = r.Route(context.Background(), []string{"run"})
	if !kiterror.HasCode(err, kiterror.CodePluginHook) || !strings.Contains(err.Error(), "denied") {
		t.Errorf("Route() error = %v", err)
	}
	if ran || afterRan {
		t.Errorf("ran=%v afterRan=%v", ran, afterRan)
	}
}

func TestIntegrateFailures(t *testing.T) {
	m := NewManager(ManagerOptions{Logger: kitlog.NewNop()})

	err := m.Integrate(context.Background(), Explicit(&Plugin{
		Name:  "bad-init",
		Hooks: Hooks{BeforeInit: func(context.Context, *registry.Registry) error { return errors.New("no config") }},
	})...)
	if !kiterror.HasCode(err, kiterror.CodePluginHook) {
		t.Errorf("beforeInit error = %v", err)
	}

	err = m.Integrate(context.Background(), Explicit(&Plugin{
		Name: "bad-service",
		Services: []Service{{Token: clockToken, Factory: func(*registry.Registry) (any, error) {
			return nil, errors.New("clock unavailable")
		}}},
	})...)
	if !kiterror.HasCode(err, kiterror.CodeServiceFactory) {
		t.Errorf("service error = %v", err)
	}

	if len(m.Loaded()) != 0 {
		t.Errorf("failed plugins recorded as loaded: %v", m.Loaded())
	}
}
