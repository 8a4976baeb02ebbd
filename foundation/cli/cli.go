// File: cli.go
// Title: CLI Runtime
// Description: Options, construction and the run loop of a cmdkit program.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"

	"github.com/msto63/cmdkit/foundation/cli/command"
	"github.com/msto63/cmdkit/foundation/cli/plugin"
	"github.com/msto63/cmdkit/foundation/cli/registry"
	"github.com/msto63/cmdkit/foundation/cli/router"
	"github.com/msto63/cmdkit/foundation/cli/ui"
	kitconfig "github.com/msto63/cmdkit/foundation/core/config"
	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
	"github.com/msto63/cmdkit/pkg/core/logging"
)

// ConfigToken resolves the loaded configuration
var ConfigToken = registry.NewToken[*kitconfig.Config]("config")

// configRules are the checks applied to the configuration by New
var configRules = kitconfig.ValidationRules{
	"log.level":           {Type: "string"},
	"log.format":          {Type: "string", Choices: []string{"console", "text", "logfmt", "json"}},
	"cli.default_command": {Type: "string"},
	"plugins.enabled":     {Type: "[]string"},
	"plugins.dirs":        {Type: "[]string"},
	"plugins.debug":       {Type: "bool"},
	"plugin_dirs":         {Type: "[]string"},
}

// Options configures a CLI
type Options struct {
	Name        string
	Version     string
	Description string

	// Commands are registered eagerly, Lazy entries are loaded on first use
	Commands   []*command.Command
	Lazy       map[string]router.Entry
	Middleware []command.Middleware

	DefaultCommand string
	DefaultHandler router.DefaultHandler
	Hooks          router.Hooks

	// Plugins are integrated before discovered plugins
	Plugins []*plugin.Plugin

	// DiscoverPlugins enables manifest discovery in ProjectDir and PluginDirs.
	// It is implied when the configuration has a plugins section.
	DiscoverPlugins bool
	ProjectDir      string
	PluginDirs      []string
	Catalog         *plugin.Catalog

	// Config is used as is; otherwise ConfigPath is loaded or the default
	// locations are searched
	Config     *kitconfig.Config
	ConfigPath string

	Logger      *kitlog.Logger
	Environment *ui.Environment

	// UseErrorExitCodes makes Run exit with the exit code carried by a
	// structured error instead of 1
	UseErrorExitCodes bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CLI is a runnable command-line program
type CLI struct {
	opts   Options
	config *kitconfig.Config
	logger *kitlog.Logger
	reg    *registry.Registry

	mu  sync.Mutex
	env ui.Environment

	router  *router.Router
	plugins *plugin.Manager
	loader  *plugin.Loader

	ready         bool
	pluginsLoaded bool
	bootstrapped  bool
	cancel        context.CancelFunc

	notify func(c chan<- os.Signal, sig ...os.Signal)
	exit   func(code int)
}

// New creates a CLI. It fails when an explicit configuration file cannot be
// loaded or the configuration holds values of the wrong type.
func New(opts Options) (*CLI, error) {
	if opts.Name == "" {
		opts.Name = filepath.Base(os.Args[0])
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Catalog == nil {
		opts.Catalog = plugin.DefaultCatalog
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(configRules); err != nil {
		return nil, err
	}

	env := ui.DetectEnvironment()
	if opts.Environment != nil {
		env = *opts.Environment
	}

	logger := opts.Logger
	if logger == nil {
		lc := logging.FromConfig(opts.Name, cfg)
		lc.Output = opts.Stderr
		logger = logging.NewLogger(lc)
	}

	c := &CLI{
		opts:   opts,
		config: cfg,
		logger: logger,
		env:    env,
		reg:    registry.New(),
		notify: signalNotify,
		exit:   os.Exit,
	}
	c.registerServices()
	return c, nil
}

func loadConfig(opts Options) (*kitconfig.Config, error) {
	switch {
	case opts.Config != nil:
		return opts.Config, nil
	case opts.ConfigPath != "":
		return kitconfig.LoadWithOptions(opts.ConfigPath, kitconfig.LoadOptions{
			Format:    kitconfig.FormatAuto,
			EnvPrefix: kitconfig.DefaultEnvPrefix,
		})
	default:
		return kitconfig.Discover(kitconfig.DefaultDiscoveryOptions())
	}
}

// registerServices fills the registry. Environment dependent services are
// factories so they see the switches read at the start of Run.
func (c *CLI) registerServices() {
	registry.Register(c.reg, command.LoggerToken, c.logger)
	registry.Register(c.reg, ConfigToken, c.config)
	registry.RegisterFactory(c.reg, ui.EnvironmentToken, func(*registry.Registry) (ui.Environment, error) {
		return c.Environment(), nil
	})
	registry.RegisterFactory(c.reg, ui.PrompterToken, func(*registry.Registry) (*ui.Prompter, error) {
		return ui.NewPrompter(c.Environment(), c.opts.Stdin, c.opts.Stderr), nil
	})
	registry.RegisterFactory(c.reg, ui.ProgressToken, func(*registry.Registry) (ui.ProgressFactory, error) {
		return ui.NewProgressFactory(c.Environment(), c.opts.Stderr), nil
	})
}

// Registry returns the service registry
func (c *CLI) Registry() *registry.Registry {
	return c.reg
}

// Config returns the configuration
func (c *CLI) Config() *kitconfig.Config {
	return c.config
}

// Logger returns the process logger
func (c *CLI) Logger() *kitlog.Logger {
	return c.logger
}

// Environment returns the terminal environment including switches read from
// the arguments
func (c *CLI) Environment() ui.Environment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.env
}

// Router returns the router, setting it up on first use
func (c *CLI) Router() *router.Router {
	c.setup()
	return c.router
}

// Plugins returns the integrated plugins in load order
func (c *CLI) Plugins() []*plugin.Loaded {
	if c.plugins == nil {
		return nil
	}
	return c.plugins.Loaded()
}

// LoadErrors returns the errors of skipped plugin candidates
func (c *CLI) LoadErrors() []error {
	if c.loader == nil {
		return nil
	}
	return c.loader.LoadErrors()
}

// Main runs a CLI built from opts with the process arguments and exits
func Main(opts Options) {
	c, err := New(opts)
	if err != nil {
		msg, code := kiterror.FormatForExit(err)
		fmt.Fprintln(os.Stderr, ui.Failure(msg))
		os.Exit(code)
	}
	os.Exit(c.Run(context.Background(), os.Args[1:]))
}

// Run executes one invocation and returns the process exit code. Panics are
// trapped and reported as failures.
func (c *CLI) Run(ctx context.Context, args []string) (code int) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.bootstrap(cancel)

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("unexpected panic", kitlog.Fields{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			})
			code = 1
		}
	}()

	if err := c.Execute(ctx, args); err != nil {
		return c.exitCode(err)
	}
	return 0
}

// Execute runs one invocation and returns its error
func (c *CLI) Execute(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	args = c.scanGlobalFlags(args)
	c.setup()

	if err := c.initPlugins(ctx); err != nil {
		return err
	}

	return c.router.Route(ctx, args)
}

func (c *CLI) exitCode(err error) int {
	c.logger.LogError(err)

	if !c.opts.UseErrorExitCodes {
		return 1
	}
	_, code := kiterror.FormatForExit(err)
	return code
}

// setup builds the router with built-in and user commands once
func (c *CLI) setup() {
	if c.ready {
		return
	}
	c.ready = true

	defaultCommand := c.opts.DefaultCommand
	if defaultCommand == "" {
		defaultCommand = c.config.GetString("cli.default_command")
	}

	c.router = router.New(router.Options{
		Registry:       c.reg,
		Logger:         c.logger,
		ProgramName:    c.opts.Name,
		Version:        c.opts.Version,
		DefaultCommand: defaultCommand,
		DefaultHandler: c.opts.DefaultHandler,
		Hooks:          c.opts.Hooks,
		Out:            c.opts.Stdout,
		Err:            c.opts.Stderr,
	})

	c.router.HelpRenderer().Description = c.opts.Description

	c.plugins = plugin.NewManager(plugin.ManagerOptions{
		Registry:          c.reg,
		Target:            c.router,
		Logger:            c.logger,
		OnCommandsChanged: c.router.RefreshHelp,
	})

	c.router.RegisterCommand(c.router.HelpCommand())
	c.router.RegisterCommand(c.versionCommand())
	for _, cmd := range c.opts.Commands {
		c.router.RegisterCommand(cmd)
	}
	for name, entry := range c.opts.Lazy {
		c.router.Register(name, entry)
	}

	c.router.Use(c.plugins.HookMiddleware())
	c.router.Use(c.opts.Middleware...)
	c.router.RefreshHelp()
}
