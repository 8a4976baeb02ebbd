// File: entry.go
// Title: Command Table Entries
// Description: Tagged variant for the command table: an eager command or a
//              deferred loader that is replaced by its command once loaded.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package router

import (
	"fmt"

	"github.com/msto63/cmdkit/foundation/cli/command"
	kiterror "github.com/msto63/cmdkit/foundation/core/error"
)

// Loader produces a command on first use
type Loader func() (*command.Command, error)

// Entry is one slot of the command table
type Entry struct {
	cmd         *command.Command
	loader      Loader
	aliases     []string
	description string
}

// Eager wraps a ready command
func Eager(cmd *command.Command) Entry {
	return Entry{cmd: cmd}
}

// Deferred wraps a loader. The aliases are known before loading, so the
// entry can be reached through them without loading it first.
func Deferred(loader Loader, aliases ...string) Entry {
	return Entry{loader: loader, aliases: aliases}
}

// WithDescription sets the description shown in help listings before the
// entry is loaded
func (e Entry) WithDescription(description string) Entry {
	e.description = description
	return e
}

// IsDeferred reports whether the entry has not been loaded yet
func (e *Entry) IsDeferred() bool {
	return e.cmd == nil
}

// Command returns the loaded command or nil
func (e *Entry) Command() *command.Command {
	return e.cmd
}

// Aliases returns the command's aliases, or the predeclared ones while the
// entry is deferred
func (e *Entry) Aliases() []string {
	if e.cmd != nil {
		return e.cmd.Aliases
	}
	return e.aliases
}

// Description returns the command description or the predeclared one
func (e *Entry) Description() string {
	if e.cmd != nil {
		return e.cmd.Description
	}
	return e.description
}

// Hidden reports whether the loaded command is hidden from listings
func (e *Entry) Hidden() bool {
	return e.cmd != nil && e.cmd.Hidden
}

// resolve returns the command, running the loader once and keeping its
// result in the entry
func (e *Entry) resolve(name string) (*command.Command, error) {
	if e.cmd != nil {
		return e.cmd, nil
	}
	if e.loader == nil {
		return nil, kiterror.Newf("command %q has neither command nor loader", name).
			WithCode(kiterror.CodeCommandLoad).
			WithOperation("router.resolve")
	}

	cmd, err := e.loader()
	if err != nil {
		return nil, kiterror.Wrap(err, fmt.Sprintf("failed to load command %q", name)).
			WithCode(kiterror.CodeCommandLoad).
			WithOperation("router.resolve").
			WithDetail("command", name)
	}
	if cmd == nil {
		return nil, kiterror.Newf("loader for command %q returned no command", name).
			WithCode(kiterror.CodeCommandLoad).
			WithOperation("router.resolve")
	}
	if cmd.Name == "" {
		cmd.Name = name
	}
	for _, alias := range e.aliases {
		if !cmd.HasAlias(alias) {
			cmd.Aliases = append(cmd.Aliases, alias)
		}
	}

	e.cmd = cmd
	e.loader = nil
	return cmd, nil
}
