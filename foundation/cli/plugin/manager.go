// File: manager.go
// Title: Plugin Manager
// Description: Integrates loaded plugins into the registry and the router
//              and runs their lifecycle hooks.
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

	"github.com/msto63/cmdkit/foundation/cli/command"
	"github.com/msto63/cmdkit/foundation/cli/registry"
	"github.com/msto63/cmdkit/foundation/cli/router"
	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
	"github.com/msto63/cmdkit/foundation/utils/mapx"
)

// Target receives plugin commands and middleware
type Target interface {
	Has(name string) bool
	Register(name string, entry router.Entry)
	Use(mws ...command.Middleware)
}

// ManagerOptions configures a Manager
type ManagerOptions struct {
	Registry *registry.Registry
	Target   Target
	Logger   *kitlog.Logger

	// OnCommandsChanged runs after a plugin added commands, e.g. to
	// regenerate help
	OnCommandsChanged func()
}

// Manager integrates plugins and keeps them in load order
type Manager struct {
	registry          *registry.Registry
	target            Target
	logger            *kitlog.Logger
	onCommandsChanged func()

	loaded []*Loaded
	byName map[string]*Loaded
}

// NewManager creates a manager
func NewManager(opts ManagerOptions) *Manager {
	if opts.Registry == nil {
		opts.Registry = registry.New()
	}
	if opts.Logger == nil {
		opts.Logger = kitlog.GetDefault()
	}
	return &Manager{
		registry:          opts.Registry,
		target:            opts.Target,
		logger:            opts.Logger.WithField("component", "plugin"),
		onCommandsChanged: opts.OnCommandsChanged,
		byName:            make(map[string]*Loaded),
	}
}

// Integrate integrates plugins in order. A plugin whose name is already
// integrated is skipped. The first failing plugin stops integration.
func (m *Manager) Integrate(ctx context.Context, plugins ...*Loaded) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, p := range plugins {
		if p == nil || p.Plugin == nil {
			continue
		}
		if _, dup := m.byName[p.Name]; dup {
			m.logger.Warn("plugin already loaded, skipping", kitlog.Fields{"plugin": p.Name, "source": p.Source})
			continue
		}

		timer := m.logger.StartTimer("plugin " + p.Name + " init")
		if err := m.integrate(ctx, p); err != nil {
			timer.StopWithError(err)
			return err
		}
		timer.Stop()

		m.loaded = append(m.loaded, p)
		m.byName[p.Name] = p
		m.logger.Debug("plugin integrated", kitlog.Fields{
			"plugin":     p.Name,
			"version":    p.Version,
			"commands":   len(p.Commands),
			"services":   len(p.Services),
			"middleware": len(p.Middleware),
		})
	}
	return nil
}

func (m *Manager) integrate(ctx context.Context, p *Loaded) error {
	if h := p.Hooks.BeforeInit; h != nil {
		if err := h(ctx, m.registry); err != nil {
			return hookError(p, "beforeInit", err)
		}
	}

	for _, svc := range p.Services {
		if err := m.registerService(p, svc); err != nil {
			return err
		}
	}

	if len(p.Commands) > 0 {
		m.registerCommands(p)
		if m.onCommandsChanged != nil {
			m.onCommandsChanged()
		}
	}

	if len(p.Middleware) > 0 && m.target != nil {
		m.target.Use(p.Middleware...)
	}

	if h := p.Hooks.AfterInit; h != nil {
		if err := h(ctx, m.registry); err != nil {
			return hookError(p, "afterInit", err)
		}
	}
	return nil
}

func (m *Manager) registerService(p *Loaded, svc Service) error {
	if svc.Token == nil || svc.Factory == nil {
		return kiterror.Newf("plugin %q declares a service without token or factory", p.Name).
			WithCode(kiterror.CodePluginInvalid).
			WithOperation("plugin.Integrate")
	}

	switch svc.Lifecycle {
	case Transient:
		m.registry.SetFactory(svc.Token, svc.Factory)
	default:
		value, err := svc.Factory(m.registry)
		if err != nil {
			return kiterror.Wrap(err, fmt.Sprintf("plugin %q failed to create service %s", p.Name, svc.Token.Key())).
				WithCode(kiterror.CodeServiceFactory).
				WithOperation("plugin.Integrate").
				WithDetail("plugin", p.Name)
		}
		m.registry.Set(svc.Token, value)
	}
	return nil
}

func (m *Manager) registerCommands(p *Loaded) {
	if m.target == nil {
		return
	}

	for _, name := range mapx.SortedKeys(p.Commands) {
		cmd := p.Commands[name]
		if cmd == nil {
			continue
		}
		if cmd.Name == "" {
			cmd.Name = name
		}
		if m.target.Has(name) {
			m.logger.Warn("plugin command replaces existing command", kitlog.Fields{"plugin": p.Name, "command": name})
		}
		m.target.Register(name, router.Eager(cmd))
	}
}

// HookMiddleware runs BeforeCommand of every loaded plugin before the
// command and AfterCommand of every loaded plugin after it
func (m *Manager) HookMiddleware() command.Middleware {
	return func(ctx *command.Context, cmd *command.Command, next command.Next) error {
		for _, p := range m.loaded {
			if h := p.Hooks.BeforeCommand; h != nil {
				if err := h(ctx, cmd); err != nil {
					return hookError(p, "beforeCommand", err)
				}
			}
		}

		err := next()

		for _, p := range m.loaded {
			if h := p.Hooks.AfterCommand; h != nil {
				h(ctx, cmd, err)
			}
		}
		return err
	}
}

// Loaded returns the integrated plugins in load order
func (m *Manager) Loaded() []*Loaded {
	return append([]*Loaded(nil), m.loaded...)
}

// Get returns the integrated plugin named name
func (m *Manager) Get(name string) (*Loaded, bool) {
	p, ok := m.byName[name]
	return p, ok
}

func hookError(p *Loaded, hook string, err error) error {
	return kiterror.Wrap(err, fmt.Sprintf("plugin %q %s hook failed", p.Name, hook)).
		WithCode(kiterror.CodePluginHook).
		WithOperation("plugin." + hook).
		WithDetail("plugin", p.Name)
}
