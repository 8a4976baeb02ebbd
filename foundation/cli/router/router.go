// File: router.go
// Title: Command Router
// Description: Command table, name and alias resolution, default fallbacks,
//              subcommand descent, routing hooks and the outer middleware
//              chain.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package router

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/msto63/cmdkit/foundation/cli/command"
	"github.com/msto63/cmdkit/foundation/cli/registry"
	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
)

// DefaultCommandName is routed when the argument vector is empty
const DefaultCommandName = "help"

// RouteResult overrides the routing decision of a CustomRoute hook
type RouteResult struct {
	Command string
	Args    []string

	// Bypass runs Command directly, without router middleware or hooks
	Bypass bool
}

// DefaultHandler handles invocations no command matches. It receives the
// full original argument vector and the parsed options.
type DefaultHandler func(ctx *command.Context, args []string, options map[string]any) error

// Hooks customize routing. All hooks are optional.
type Hooks struct {
	// CustomRoute sees the original argument vector; a non-nil result
	// replaces the command name and arguments
	CustomRoute func(args []string) *RouteResult

	// BeforeExecute may rewrite name, arguments and options right before
	// the outer chain starts. The name is the space separated command path,
	// e.g. "dns add".
	BeforeExecute func(name string, args []string, options map[string]any) (string, []string, map[string]any)

	// OnAfterRoute runs after a successful execution
	OnAfterRoute func(name string, args []string)

	// OnError receives routing and execution failures; its result replaces
	// the error, nil swallows it
	OnError func(err error, args []string) error
}

// Options configures a Router
type Options struct {
	Registry       *registry.Registry
	Logger         *kitlog.Logger
	ProgramName    string
	Version        string
	DefaultCommand string
	DefaultHandler DefaultHandler
	Hooks          Hooks
	Out            io.Writer
	Err            io.Writer
}

// Router resolves argument vectors to commands and runs them
type Router struct {
	table      map[string]*Entry
	middleware []command.Middleware

	registry       *registry.Registry
	logger         *kitlog.Logger
	help           *HelpRenderer
	defaultCommand string
	defaultHandler DefaultHandler
	hooks          Hooks

	out io.Writer
	err io.Writer
}

// New creates a router
func New(opts Options) *Router {
	if opts.Registry == nil {
		opts.Registry = registry.New()
	}
	if opts.Logger == nil {
		opts.Logger = registry.GetOr(opts.Registry, command.LoggerToken, kitlog.GetDefault())
	}
	if opts.ProgramName == "" {
		opts.ProgramName = "cli"
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	return &Router{
		table:          make(map[string]*Entry),
		registry:       opts.Registry,
		logger:         opts.Logger.WithField("component", "router"),
		help:           NewHelpRenderer(opts.ProgramName, opts.Version),
		defaultCommand: opts.DefaultCommand,
		defaultHandler: opts.DefaultHandler,
		hooks:          opts.Hooks,
		out:            opts.Out,
		err:            opts.Err,
	}
}

// Register stores entry under name. A later registration replaces an
// earlier one.
func (r *Router) Register(name string, entry Entry) {
	if _, exists := r.table[name]; exists {
		r.logger.Debug("replacing command", kitlog.Fields{"command": name})
	}
	e := entry
	r.table[name] = &e
}

// RegisterCommand stores cmd under its name
func (r *Router) RegisterCommand(cmd *command.Command) {
	r.Register(cmd.Name, Eager(cmd))
}

// Has reports whether name is a command in the table. Aliases are not
// considered.
func (r *Router) Has(name string) bool {
	_, ok := r.table[name]
	return ok
}

// Use appends middleware to the outer chain
func (r *Router) Use(mws ...command.Middleware) {
	r.middleware = append(r.middleware, mws...)
}

// SetDefaultCommand sets the command used when the name matches nothing
func (r *Router) SetDefaultCommand(name string) {
	r.defaultCommand = name
}

// SetDefaultHandler sets the handler used when no command matches
func (r *Router) SetDefaultHandler(h DefaultHandler) {
	r.defaultHandler = h
}

// SetHooks replaces the routing hooks
func (r *Router) SetHooks(h Hooks) {
	r.hooks = h
}

// Registry returns the registry handed to every invocation
func (r *Router) Registry() *registry.Registry {
	return r.registry
}

// HelpRenderer returns the renderer used for help output
func (r *Router) HelpRenderer() *HelpRenderer {
	return r.help
}

// Names returns the names of all visible commands, sorted
func (r *Router) Names() []string {
	names := make([]string, 0, len(r.table))
	for name, entry := range r.table {
		if entry.Hidden() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commands returns the commands that are already loaded, keyed by name
func (r *Router) Commands() map[string]*command.Command {
	out := make(map[string]*command.Command, len(r.table))
	for name, entry := range r.table {
		if cmd := entry.Command(); cmd != nil {
			out[name] = cmd
		}
	}
	return out
}

// Lookup resolves name or an alias to a command, loading deferred entries
func (r *Router) Lookup(name string) (*command.Command, error) {
	if entry, ok := r.table[name]; ok {
		return entry.resolve(name)
	}
	if key, ok := r.aliasTarget(name); ok {
		return r.table[key].resolve(key)
	}
	return nil, kiterror.CommandNotFound(name, r.Names()).
		WithOperation("router.Lookup")
}

// aliasTarget finds the table key whose entry declares alias name. Loaded
// commands contribute their aliases, deferred entries their predeclared ones.
func (r *Router) aliasTarget(name string) (string, bool) {
	keys := make([]string, 0, len(r.table))
	for key := range r.table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, alias := range r.table[key].Aliases() {
			if alias == name {
				return key, true
			}
		}
	}
	return "", false
}

// RefreshHelp rebuilds the command listing shown by the help command. It is
// called whenever the command table changes.
func (r *Router) RefreshHelp() {
	items := make([]HelpItem, 0, len(r.table))
	for _, name := range r.Names() {
		entry := r.table[name]
		items = append(items, HelpItem{
			Name:        name,
			Description: entry.Description(),
			Aliases:     entry.Aliases(),
		})
	}
	r.help.SetListing(items)
}

// Help writes help for path to w. An empty path writes the command listing.
// Nested paths are walked through subcommands.
func (r *Router) Help(w io.Writer, path []string) error {
	if len(path) == 0 {
		r.RefreshHelp()
		r.help.RenderGlobal(w)
		return nil
	}

	cmd, resolved, err := r.lookupPath(path, "router.Help")
	if err != nil {
		return err
	}
	r.help.RenderCommand(w, resolved, cmd)
	return nil
}

// lookupPath resolves a command name followed by subcommand names and returns
// the command with its canonical path
func (r *Router) lookupPath(names []string, op string) (*command.Command, []string, error) {
	cmd, err := r.Lookup(names[0])
	if err != nil {
		return nil, nil, err
	}
	resolved := []string{cmd.Name}
	for _, name := range names[1:] {
		sub, ok := cmd.Subcommand(name)
		if !ok {
			return nil, nil, kiterror.SubcommandNotFound(strings.Join(resolved, " "), name, cmd.SubcommandNames()).
				WithOperation(op)
		}
		cmd = sub
		resolved = append(resolved, sub.Name)
	}
	return cmd, resolved, nil
}

// HelpCommand returns the built-in help command. It answers to --help and
// -h as well.
func (r *Router) HelpCommand() *command.Command {
	return command.Build(command.Spec{
		Name:        "help",
		Description: "Show help for the program or a command",
		Usage:       r.help.ProgramName + " help [command] [subcommand...]",
		Aliases:     []string{"--help", "-h"},
		Examples:    []string{r.help.ProgramName + " help", r.help.ProgramName + " help <command>"},
		Handler: func(ctx *command.Context) error {
			return r.Help(ctx.Out, ctx.Args)
		},
	})
}

// Route resolves args to a command and executes it
func (r *Router) Route(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	name := DefaultCommandName
	var rest []string
	if len(args) > 0 {
		name = args[0]
		rest = args[1:]
	}
	options, positionals := ParseFlags(rest)

	if r.hooks.CustomRoute != nil {
		if res := r.hooks.CustomRoute(append([]string(nil), args...)); res != nil {
			name = res.Command
			options, positionals = ParseFlags(res.Args)
			if res.Bypass {
				return r.bypass(ctx, name, positionals, options)
			}
		}
	}

	r.logger.Debug("routing", kitlog.Fields{"command": name, "args": positionals})

	cmd, positionals, err := r.resolve(name, positionals)
	if err != nil {
		return r.fail(err, args)
	}
	if cmd == nil {
		// no command matched and the default handler takes over
		if err := r.runDefaultHandler(ctx, args, options); err != nil {
			return r.fail(err, args)
		}
		return nil
	}

	cmd, path, positionals, err := r.descend(cmd, positionals)
	if err != nil {
		return r.fail(err, args)
	}

	if cmd.Handler == nil || r.wantsHelp(cmd, options) {
		r.help.RenderCommand(r.out, path, cmd)
		return nil
	}

	if r.hooks.BeforeExecute != nil {
		newName, newArgs, newOptions := r.hooks.BeforeExecute(strings.Join(path, " "), positionals, options)
		if newName != strings.Join(path, " ") {
			names := strings.Fields(newName)
			if len(names) == 0 {
				names = []string{newName}
			}
			rewritten, rewrittenPath, err := r.lookupPath(names, "router.Route")
			if err != nil {
				return r.fail(err, args)
			}
			cmd, path = rewritten, rewrittenPath
		}
		positionals, options = newArgs, newOptions
	}

	cctx := r.newContext(ctx, positionals, options, path)
	r.logger.Debug("executing", kitlog.Fields{"command": cctx.CommandPath(), "invocation_id": cctx.InvocationID})

	if err := r.execute(cctx, cmd); err != nil {
		return r.fail(err, args)
	}

	if r.hooks.OnAfterRoute != nil {
		r.hooks.OnAfterRoute(name, args)
	}
	return nil
}

// resolve finds the command for name: table, aliases, default command. A
// nil command with nil error means the default handler should run.
func (r *Router) resolve(name string, positionals []string) (*command.Command, []string, error) {
	if entry, ok := r.table[name]; ok {
		cmd, err := entry.resolve(name)
		return cmd, positionals, err
	}

	if key, ok := r.aliasTarget(name); ok {
		cmd, err := r.table[key].resolve(key)
		return cmd, positionals, err
	}

	if r.defaultCommand != "" && r.defaultCommand != name {
		if entry, ok := r.table[r.defaultCommand]; ok {
			r.logger.Debug("falling back to default command", kitlog.Fields{"command": name, "default": r.defaultCommand})
			cmd, err := entry.resolve(r.defaultCommand)
			return cmd, append([]string{name}, positionals...), err
		}
	}

	if r.defaultHandler != nil {
		return nil, positionals, nil
	}

	return nil, positionals, kiterror.CommandNotFound(name, r.Names()).
		WithOperation("router.Route")
}

// descend walks into subcommands while the next positional names one
func (r *Router) descend(cmd *command.Command, positionals []string) (*command.Command, []string, []string, error) {
	path := []string{cmd.Name}

	for cmd.HasSubcommands() && len(positionals) > 0 && !strings.HasPrefix(positionals[0], "-") {
		next := positionals[0]
		sub, ok := cmd.Subcommand(next)
		if !ok {
			if cmd.Handler == nil {
				return nil, nil, nil, kiterror.SubcommandNotFound(strings.Join(path, " "), next, cmd.SubcommandNames()).
					WithOperation("router.Route")
			}
			break
		}
		cmd = sub
		path = append(path, sub.Name)
		positionals = positionals[1:]
	}

	return cmd, path, positionals, nil
}

// wantsHelp reports a --help or -h switch the command does not claim for
// one of its own options
func (r *Router) wantsHelp(cmd *command.Command, options map[string]any) bool {
	if on, _ := options["help"].(bool); on {
		if _, own := cmd.Options["help"]; !own {
			return true
		}
	}
	if on, _ := options["h"].(bool); on {
		if _, own := cmd.Options["h"]; own {
			return false
		}
		for _, opt := range cmd.Options {
			if opt.Short == "h" {
				return false
			}
		}
		return true
	}
	return false
}

func (r *Router) execute(cctx *command.Context, cmd *command.Command) error {
	return command.Compose(r.middleware, cmd.Execute)(cctx, cmd)
}

func (r *Router) bypass(ctx context.Context, name string, positionals []string, options map[string]any) error {
	cmd, err := r.Lookup(name)
	if err != nil {
		return err
	}
	r.logger.Debug("custom route bypass", kitlog.Fields{"command": name})
	return cmd.Execute(r.newContext(ctx, positionals, options, []string{cmd.Name}))
}

func (r *Router) runDefaultHandler(ctx context.Context, args []string, options map[string]any) error {
	r.logger.Debug("no command matched, running default handler", kitlog.Fields{"args": args})
	cctx := r.newContext(ctx, append([]string(nil), args...), options, nil)
	return r.defaultHandler(cctx, args, options)
}

func (r *Router) newContext(ctx context.Context, positionals []string, options map[string]any, path []string) *command.Context {
	cctx := command.NewContext(ctx, r.registry, positionals, options)
	cctx.Path = path
	cctx.Out = r.out
	cctx.Err = r.err
	return cctx
}

func (r *Router) fail(err error, args []string) error {
	if r.hooks.OnError != nil {
		return r.hooks.OnError(err, args)
	}
	return err
}
