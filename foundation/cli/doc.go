// File: doc.go
// Title: CLI Runtime Package Documentation
// Description: Orchestrator that wires registry, router, plugins, config,
//              logging and terminal collaborators into a runnable program.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

/*
Package cli turns command specs and plugins into a runnable command-line
program.

A minimal program:

	func main() {
		cli.Main(cli.Options{
			Name:    "greet",
			Version: "1.0.0",
			Commands: []*command.Command{
				command.Build(command.Spec{
					Name: "hello",
					Args: []command.ArgSpec{{Name: "name", Required: true}},
					Handler: func(ctx *command.Context) error {
						ctx.Printf("Hello, %s!\n", ctx.NamedString("name"))
						return nil
					},
				}),
			},
		})
	}

Run executes exactly one invocation:

 1. bootstrap: termination signal handling is installed once per CLI
 2. the global switches --verbose, --debug and --no-interaction are read
 3. registry, router and built-in commands are set up
 4. explicit plugins and discovered plugins are integrated
 5. the arguments are routed and the exit code is derived from the result

Configuration is read from cmdkit.toml, cmdkit.yaml or cmdkit.yml in the
working directory, ./.cmdkit or ~/.config/cmdkit. Every key can be overridden
by an environment variable with the CMDKIT prefix, e.g. CMDKIT_LOG_LEVEL.

	[log]
	level = "info"
	format = "console"

	[cli]
	default_command = "run"

	[plugins]
	enabled = ["dns"]
	dirs = ["plugins"]
	debug = false
*/
package cli
