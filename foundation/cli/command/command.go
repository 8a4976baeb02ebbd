// File: command.go
// Title: Command Model
// Description: Argument and option specifications and the executable
//              Command type with its subcommand tree.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package command

import (
	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	"github.com/msto63/cmdkit/foundation/utils/mapx"
	"github.com/msto63/cmdkit/foundation/utils/slicex"
)

// ArgType is the declared type of a positional argument
type ArgType string

const (
	ArgString  ArgType = "string"
	ArgNumber  ArgType = "number"
	ArgBoolean ArgType = "boolean"
)

// OptionType is the declared type of an option
type OptionType string

const (
	OptionString  OptionType = "string"
	OptionBoolean OptionType = "boolean"
	OptionNumber  OptionType = "number"
	OptionArray   OptionType = "array"
)

// Validator is a custom value check. A rejection with an empty message is
// reported as "invalid value for <name>".
type Validator func(value any) (ok bool, message string)

// ArgSpec declares a positional argument. The Nth spec binds the Nth
// positional string.
type ArgSpec struct {
	Name        string
	Description string
	Type        ArgType // defaults to ArgString
	Required    bool
	Default     any
	Validate    Validator
}

// OptionSpec declares an option. The option's long name is its key in
// Command.Options.
type OptionSpec struct {
	Description string
	Type        OptionType // defaults to OptionString
	Short       string     // single letter alias, e.g. "f" for -f
	Required    bool
	Default     any
	Choices     []string
	Validate    Validator
}

// Handler runs the command's work
type Handler func(ctx *Context) error

// Command is an executable command built from a Spec
type Command struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Args        []ArgSpec
	Options     map[string]OptionSpec
	Aliases     []string
	Subcommands map[string]*Command
	Handler     Handler
	Hidden      bool

	// Middleware runs first in the inner chain and sees raw input
	Middleware []Middleware
}

// Execute runs the inner chain for ctx: the command's middleware, argument
// validation, option validation, invocation logging and the handler.
func (c *Command) Execute(ctx *Context) error {
	if c.Handler == nil {
		return kiterror.New("command \"" + c.Name + "\" has no handler").
			WithCode(kiterror.CodeNoHandler).
			WithOperation("command.Execute").
			WithDetail("command", c.Name)
	}

	chain := make([]Middleware, 0, len(c.Middleware)+3)
	chain = append(chain, c.Middleware...)
	chain = append(chain, ValidateArgs, ValidateOptions, LogInvocation)

	return Compose(chain, func(ctx *Context) error {
		return c.Handler(ctx)
	})(ctx, c)
}

// HasSubcommands reports whether the command has subcommands
func (c *Command) HasSubcommands() bool {
	return len(c.Subcommands) > 0
}

// Subcommand finds a subcommand by name or alias
func (c *Command) Subcommand(name string) (*Command, bool) {
	if sub, ok := c.Subcommands[name]; ok {
		return sub, true
	}
	for _, key := range c.SubcommandNames() {
		sub := c.Subcommands[key]
		for _, alias := range sub.Aliases {
			if alias == name {
				return sub, true
			}
		}
	}
	return nil, false
}

// SubcommandNames returns the subcommand names in sorted order
func (c *Command) SubcommandNames() []string {
	return mapx.SortedKeys(c.Subcommands)
}

// OptionNames returns the option names in sorted order
func (c *Command) OptionNames() []string {
	return mapx.SortedKeys(c.Options)
}

// HasAlias reports whether name is one of the command's aliases
func (c *Command) HasAlias(name string) bool {
	return slicex.Contains(c.Aliases, name)
}
