// File: plugin.go
// Title: Plugin Types
// Description: The plugin shape: services with lifecycles, commands,
//              middleware and lifecycle hooks.
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

	"github.com/msto63/cmdkit/foundation/cli/command"
	"github.com/msto63/cmdkit/foundation/cli/registry"
)

// Lifecycle controls when a plugin service is instantiated
type Lifecycle int

const (
	// Singleton services are instantiated while the plugin is integrated
	Singleton Lifecycle = iota

	// Transient services are registered as factories and built on first use
	Transient
)

// String returns the lifecycle name
func (l Lifecycle) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// Service is a registry entry contributed by a plugin
type Service struct {
	Token     registry.Key
	Factory   registry.Factory
	Lifecycle Lifecycle
}

// Hooks are the lifecycle callbacks of a plugin. All are optional.
type Hooks struct {
	BeforeInit func(ctx context.Context, reg *registry.Registry) error
	AfterInit  func(ctx context.Context, reg *registry.Registry) error

	// BeforeCommand runs before every command dispatch; an error aborts it
	BeforeCommand func(ctx *command.Context, cmd *command.Command) error

	// AfterCommand runs after every command dispatch with its result
	AfterCommand func(ctx *command.Context, cmd *command.Command, err error)
}

// Plugin is a bundle of commands, services, middleware and hooks
type Plugin struct {
	Name        string
	Version     string
	Description string
	Commands    map[string]*command.Command
	Services    []Service
	Middleware  []command.Middleware
	Hooks       Hooks
}

// Loaded is a plugin together with where it came from
type Loaded struct {
	*Plugin

	// Source identifies the origin: "explicit", "project" or a manifest path
	Source  string
	Version string
	Path    string
}

// Explicit wraps plugins handed to the CLI directly
func Explicit(plugins ...*Plugin) []*Loaded {
	out := make([]*Loaded, 0, len(plugins))
	for _, p := range plugins {
		if p == nil {
			continue
		}
		out = append(out, &Loaded{Plugin: p, Source: "explicit", Version: p.Version})
	}
	return out
}
