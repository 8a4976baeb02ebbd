// File: builder.go
// Title: Command Builder
// Description: Turns a declarative Spec into an executable Command and checks
//              specs for authoring mistakes.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package command

import (
	"fmt"

	"github.com/msto63/cmdkit/foundation/utils/slicex"
)

// Spec is the declarative description of a command
type Spec struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Args        []ArgSpec
	Options     map[string]OptionSpec
	Aliases     []string
	Subcommands []Spec
	Middleware  []Middleware
	Handler     Handler
	Hidden      bool
}

// Build produces the executable command for spec. Subcommand specs are
// built recursively.
func Build(spec Spec) *Command {
	cmd := &Command{
		Name:        spec.Name,
		Description: spec.Description,
		Usage:       spec.Usage,
		Examples:    append([]string(nil), spec.Examples...),
		Args:        append([]ArgSpec(nil), spec.Args...),
		Options:     make(map[string]OptionSpec, len(spec.Options)),
		Aliases:     append([]string(nil), spec.Aliases...),
		Handler:     spec.Handler,
		Hidden:      spec.Hidden,
		Middleware:  append([]Middleware(nil), spec.Middleware...),
	}
	for name, opt := range spec.Options {
		cmd.Options[name] = opt
	}
	if len(spec.Subcommands) > 0 {
		cmd.Subcommands = make(map[string]*Command, len(spec.Subcommands))
		for _, sub := range spec.Subcommands {
			cmd.Subcommands[sub.Name] = Build(sub)
		}
	}
	return cmd
}

// Lint reports authoring mistakes in cmd and its subcommands. The runtime
// logs them when debugging is enabled; they never fail an invocation.
func Lint(cmd *Command) []string {
	var warnings []string
	lint(cmd, cmd.Name, &warnings)
	return warnings
}

func lint(cmd *Command, path string, warnings *[]string) {
	if cmd.Name == "" {
		*warnings = append(*warnings, fmt.Sprintf("%s: command without name", path))
	}
	if cmd.Handler == nil && !cmd.HasSubcommands() {
		*warnings = append(*warnings, fmt.Sprintf("%s: command has neither handler nor subcommands", path))
	}

	optional := ""
	seen := make(map[string]bool, len(cmd.Args))
	for _, arg := range cmd.Args {
		if seen[arg.Name] {
			*warnings = append(*warnings, fmt.Sprintf("%s: duplicate argument %q", path, arg.Name))
		}
		seen[arg.Name] = true
		if arg.Required && optional != "" {
			*warnings = append(*warnings, fmt.Sprintf("%s: required argument %q follows optional argument %q", path, arg.Name, optional))
		}
		if !arg.Required && optional == "" {
			optional = arg.Name
		}
	}

	shorts := make(map[string]string)
	for _, name := range cmd.OptionNames() {
		opt := cmd.Options[name]
		if opt.Short != "" {
			if len(opt.Short) != 1 {
				*warnings = append(*warnings, fmt.Sprintf("%s: short alias %q of --%s must be one character", path, opt.Short, name))
			}
			if other, dup := shorts[opt.Short]; dup {
				*warnings = append(*warnings, fmt.Sprintf("%s: short alias -%s used by --%s and --%s", path, opt.Short, other, name))
			}
			shorts[opt.Short] = name
		}
		if opt.Default != nil && len(opt.Choices) > 0 && !slicex.Contains(opt.Choices, fmt.Sprintf("%v", opt.Default)) {
			*warnings = append(*warnings, fmt.Sprintf("%s: default %v of --%s is not one of its choices", path, opt.Default, name))
		}
		if opt.Required && opt.Default != nil {
			*warnings = append(*warnings, fmt.Sprintf("%s: required option --%s has a default", path, name))
		}
	}

	for _, name := range cmd.SubcommandNames() {
		lint(cmd.Subcommands[name], path+" "+name, warnings)
	}
}
