// File: doc.go
// Title: Command Model Package Documentation
// Description: Declarative command specifications, the builder that turns
//              them into executable commands and the per-invocation context.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

/*
Package command defines what a cmdkit command is and how one invocation of it
runs.

A Spec describes a command: positional arguments (bound by position), options,
aliases, subcommands, middleware and the handler. Build turns a Spec into a
Command whose Execute runs a fixed inner chain:

	spec middleware -> ValidateArgs -> ValidateOptions -> LogInvocation -> handler

Spec middleware therefore sees the raw arguments and options, while the
handler sees validated, coerced and defaulted values in Context.Named and
Context.Options. Argument and option validation collect every failure and
report them together as one validation error.

	deploy := command.Build(command.Spec{
		Name: "deploy",
		Args: []command.ArgSpec{{Name: "target", Required: true}},
		Options: map[string]command.OptionSpec{
			"env": {Type: command.OptionString, Short: "e", Choices: []string{"dev", "prod"}, Default: "dev"},
		},
		Handler: func(ctx *command.Context) error {
			fmt.Fprintf(ctx.Out, "deploying %s to %s\n", ctx.NamedString("target"), ctx.String("env"))
			return nil
		},
	})
*/
package command
