// File: doc.go
// Title: Command Router Package Documentation
// Description: Resolves argument vectors to commands and runs them through
//              the outer middleware chain.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

/*
Package router turns an argument vector into the execution of one command.

Route takes the first argument as the command name ("help" when there is
none) and parses the rest with ParseFlags. The name is resolved against the
command table, then against aliases, then against the configured default
command and finally the default handler. Entries in the table are either
eager commands or deferred loaders; a deferred entry is loaded on first use
and replaced by the loaded command.

Once a command is found the router descends into subcommands for as long as
the next positional argument names one. A command without handler renders its
help page instead of executing.

The resolved command runs through the router middleware in registration
order; the last link calls the command's own Execute, which runs the inner
chain of the command package.

	r := router.New(router.Options{Registry: reg, ProgramName: "mycli"})
	r.RegisterCommand(deploy)
	r.Register("report", router.Deferred(loadReport, "rep"))
	r.Use(timing)

	err := r.Route(ctx, os.Args[1:])
*/
package router
