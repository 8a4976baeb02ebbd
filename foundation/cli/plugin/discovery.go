// File: discovery.go
// Title: Plugin Discovery
// Description: Collects plugin candidates from the project manifest and from
//              plugin manifests found under local plugin directories.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package plugin

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
)

// DefaultManifestPattern matches plugin manifests below a plugin directory
const DefaultManifestPattern = "**/plugin.{yaml,yml,toml,hcl}"

// Candidate is a plugin that may be loaded
type Candidate struct {
	Name     string
	Source   string
	Path     string
	Version  string
	Eligible bool
}

// DiscoverOptions configures Discover
type DiscoverOptions struct {
	// ProjectDir is searched for the project manifest; empty skips it
	ProjectDir string

	// Plugins are declared names in addition to the project manifest's
	Plugins []string

	// Dirs are scanned for plugin manifests in addition to the project's
	// plugin_dirs
	Dirs []string

	// Pattern selects manifest files; defaults to DefaultManifestPattern
	Pattern string

	// Enabled restricts the plugins found in directories to these names when
	// not empty. Declared names are never filtered.
	Enabled []string
}

// Discover returns the plugin candidates in discovery order: declared names
// first, then manifests found in plugin directories in lexical order. A
// declared name takes version, path and eligibility from a directory manifest
// of the same name; without one it refers to a plugin linked into the binary.
// The first manifest of a name wins. Problems with single directories or
// manifests are returned as errors next to the candidates.
func Discover(opts DiscoverOptions) ([]Candidate, []error) {
	if opts.Pattern == "" {
		opts.Pattern = DefaultManifestPattern
	}

	var (
		errs     []error
		declared []Candidate
	)
	declare := func(name, source, path string) {
		for _, c := range declared {
			if c.Name == name {
				return
			}
		}
		declared = append(declared, Candidate{Name: name, Source: source, Path: path, Eligible: true})
	}

	dirs := append([]string(nil), opts.Dirs...)
	if opts.ProjectDir != "" {
		pm, err := FindProjectManifest(opts.ProjectDir)
		if err != nil {
			errs = append(errs, err)
		}
		if pm != nil {
			for _, name := range pm.Plugins {
				declare(name, "project", pm.Path)
			}
			dirs = append(dirs, pm.PluginDirs...)
		}
	}
	for _, name := range opts.Plugins {
		declare(name, "config", "")
	}

	var (
		found   []Candidate
		byName  = make(map[string]int)
		scanned = make(map[string]bool)
	)
	for _, dir := range dirs {
		if scanned[dir] {
			continue
		}
		scanned[dir] = true

		cs, err := scanDir(dir, opts.Pattern)
		errs = append(errs, err...)
		for _, c := range cs {
			if _, dup := byName[c.Name]; dup {
				continue
			}
			byName[c.Name] = len(found)
			found = append(found, c)
		}
	}

	candidates := make([]Candidate, 0, len(declared)+len(found))
	taken := make(map[string]bool, len(declared))
	for _, c := range declared {
		if i, ok := byName[c.Name]; ok {
			m := found[i]
			c.Path = m.Path
			c.Version = m.Version
			c.Eligible = m.Eligible
		}
		taken[c.Name] = true
		candidates = append(candidates, c)
	}

	allowed := make(map[string]bool, len(opts.Enabled))
	for _, name := range opts.Enabled {
		allowed[name] = true
	}
	for _, c := range found {
		if taken[c.Name] {
			continue
		}
		if len(allowed) > 0 && !allowed[c.Name] {
			continue
		}
		candidates = append(candidates, c)
	}

	return candidates, errs
}

func scanDir(dir, pattern string) ([]Candidate, []error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, []error{kiterror.FileSystem(dir, "plugin directory not found").
			WithCode(kiterror.CodePluginLoad).
			WithOperation("plugin.Discover")}
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, []error{kiterror.Wrap(err, "invalid plugin manifest pattern "+pattern).
			WithCode(kiterror.CodePluginLoad).
			WithOperation("plugin.Discover")}
	}
	sort.Strings(matches)

	var (
		found []Candidate
		errs  []error
	)
	for _, match := range matches {
		path := filepath.Join(dir, filepath.FromSlash(match))
		m, err := ReadManifest(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		name := m.Name
		if name == "" {
			name = filepath.Base(filepath.Dir(path))
		}
		found = append(found, Candidate{
			Name:     name,
			Source:   path,
			Path:     filepath.Dir(path),
			Version:  m.Version,
			Eligible: m.Eligible,
		})
	}
	return found, errs
}
