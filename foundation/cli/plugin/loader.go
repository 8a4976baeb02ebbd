// File: loader.go
// Title: Plugin Loader
// Description: Turns discovery candidates into loaded plugins through the
//              catalog. Failing candidates are skipped and remembered.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package plugin

import (
	"context"
	"fmt"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
	kitstringx "github.com/msto63/cmdkit/foundation/utils/stringx"
)

// LoaderOptions configures a Loader
type LoaderOptions struct {
	Catalog *Catalog
	Logger  *kitlog.Logger

	// Debug logs every skipped candidate with its error
	Debug bool
}

// Loader loads plugins from the catalog
type Loader struct {
	catalog *Catalog
	logger  *kitlog.Logger
	debug   bool
	errs    []error
}

// NewLoader creates a loader
func NewLoader(opts LoaderOptions) *Loader {
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog
	}
	if opts.Logger == nil {
		opts.Logger = kitlog.GetDefault()
	}
	return &Loader{
		catalog: opts.Catalog,
		logger:  opts.Logger.WithField("component", "plugin"),
		debug:   opts.Debug,
	}
}

// Load loads every candidate it can. It never fails as a whole; skipped
// candidates are reported by LoadErrors.
func (l *Loader) Load(ctx context.Context, candidates []Candidate) []*Loaded {
	var loaded []*Loaded
	for _, c := range candidates {
		if ctx != nil && ctx.Err() != nil {
			l.record(c, kiterror.Wrap(ctx.Err(), "plugin loading interrupted").
				WithCode(kiterror.CodeCanceled))
			break
		}

		p, err := l.load(c)
		if err != nil {
			l.record(c, err)
			continue
		}
		loaded = append(loaded, p)
		l.logger.Debug("plugin loaded", kitlog.Fields{"plugin": p.Name, "version": p.Version, "source": p.Source})
	}
	return loaded
}

// Record adds an error that occurred before loading, e.g. during discovery
func (l *Loader) Record(err error) {
	l.record(Candidate{}, err)
}

// LoadErrors returns the errors of all skipped candidates
func (l *Loader) LoadErrors() []error {
	return append([]error(nil), l.errs...)
}

func (l *Loader) load(c Candidate) (loaded *Loaded, err error) {
	if !c.Eligible {
		return nil, kiterror.Newf("plugin %q is not eligible: manifest lacks a truthy %s or %s field", c.Name, ToolMarker, GenericMarker).
			WithCode(kiterror.CodePluginInvalid).
			WithOperation("plugin.Load").
			WithDetail("source", c.Source)
	}

	entry, ok := l.catalog.Lookup(c.Name)
	if !ok || entry.Factory == nil {
		return nil, NotLinked(c.Name).WithDetail("source", c.Source)
	}

	defer func() {
		if r := recover(); r != nil {
			loaded = nil
			err = kiterror.Newf("plugin %q panicked while loading: %v", c.Name, r).
				WithCode(kiterror.CodePluginLoad).
				WithOperation("plugin.Load")
		}
	}()

	p, err := entry.Factory()
	if err != nil {
		return nil, kiterror.Wrap(err, fmt.Sprintf("failed to load plugin %q", c.Name)).
			WithCode(kiterror.CodePluginLoad).
			WithOperation("plugin.Load")
	}
	if p == nil || kitstringx.IsBlank(p.Name) {
		return nil, kiterror.Newf("plugin %q does not declare a name", c.Name).
			WithCode(kiterror.CodePluginInvalid).
			WithOperation("plugin.Load")
	}

	return &Loaded{
		Plugin:  p,
		Source:  kitstringx.FirstNonBlank(c.Source, entry.Source),
		Version: kitstringx.FirstNonBlank(c.Version, p.Version, entry.Version),
		Path:    c.Path,
	}, nil
}

// NotLinked reports a plugin name without catalog entry
func NotLinked(name string) *kiterror.Error {
	return kiterror.Newf("plugin %q is not linked into this binary", name).
		WithCode(kiterror.CodePluginLoad).
		WithOperation("plugin.Load")
}

func (l *Loader) record(c Candidate, err error) {
	l.errs = append(l.errs, err)
	if !l.debug {
		return
	}
	fields := kitlog.Fields{}
	if c.Name != "" {
		fields["plugin"] = c.Name
		fields["source"] = c.Source
	}
	l.logger.WarnWithErr("plugin skipped", err, fields)
}
