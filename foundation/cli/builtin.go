// File: builtin.go
// Title: Built-in Commands and Plugin Initialization
// Description: The version command and the one-time integration of explicit
//              and discovered plugins.
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

	"github.com/msto63/cmdkit/foundation/cli/command"
	"github.com/msto63/cmdkit/foundation/cli/plugin"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
	"github.com/msto63/cmdkit/foundation/utils/mapx"
	"github.com/msto63/cmdkit/foundation/utils/slicex"
	"github.com/msto63/cmdkit/pkg/core/version"
)

func (c *CLI) versionCommand() *command.Command {
	return command.Build(command.Spec{
		Name:        "version",
		Description: "Show version information",
		Aliases:     []string{"--version", "-V"},
		Options: map[string]command.OptionSpec{
			"full": {Type: command.OptionBoolean, Description: "Include build and runtime details"},
		},
		Handler: func(ctx *command.Context) error {
			info := version.Get(c.opts.Name, c.opts.Version)
			if ctx.Bool("full") {
				ctx.Printf("%s", info.String())
				return nil
			}
			ctx.Printf("%s\n", info.Short())
			return nil
		},
	})
}

// discoveryEnabled reports whether plugin manifests are searched
func (c *CLI) discoveryEnabled() bool {
	return c.opts.DiscoverPlugins || len(c.opts.PluginDirs) > 0 || c.config.Has("plugins")
}

// pluginSettings reads the plugins section of the configuration. The section
// is either a list of declared plugin names or a table whose enabled list
// restricts the plugins found in directories.
func (c *CLI) pluginSettings() (declared, enabled, dirs []string, debug bool) {
	declared = c.config.GetStringSlice("plugins")
	enabled = c.config.GetStringSlice("plugins.enabled")
	dirs = slicex.Unique(append(append([]string(nil), c.opts.PluginDirs...), c.config.GetStringSlice("plugins.dirs")...))
	debug = c.config.GetBool("plugins.debug", false)
	return declared, enabled, dirs, debug
}

// initPlugins integrates explicit plugins, then discovered ones. It runs
// once per CLI.
func (c *CLI) initPlugins(ctx context.Context) error {
	if c.pluginsLoaded {
		return nil
	}
	c.pluginsLoaded = true

	declared, enabled, dirs, cfgDebug := c.pluginSettings()
	debug := c.Environment().Debug || cfgDebug

	c.loader = plugin.NewLoader(plugin.LoaderOptions{
		Catalog: c.opts.Catalog,
		Logger:  c.logger,
		Debug:   debug,
	})

	plugins := plugin.Explicit(c.opts.Plugins...)
	if c.discoveryEnabled() {
		projectDir := c.opts.ProjectDir
		if projectDir == "" {
			projectDir = "."
		}
		candidates, errs := plugin.Discover(plugin.DiscoverOptions{
			ProjectDir: projectDir,
			Plugins:    declared,
			Dirs:       dirs,
			Enabled:    enabled,
		})
		for _, err := range errs {
			c.loader.Record(err)
		}
		plugins = append(plugins, c.loader.Load(ctx, candidates)...)
	}

	if err := c.plugins.Integrate(ctx, plugins...); err != nil {
		return err
	}

	if debug {
		c.lintCommands()
	}
	return nil
}

// lintCommands logs authoring warnings for every loaded command
func (c *CLI) lintCommands() {
	commands := c.router.Commands()
	for _, name := range mapx.SortedKeys(commands) {
		for _, warning := range command.Lint(commands[name]) {
			c.logger.Warn("command definition", kitlog.Fields{"command": name, "warning": warning})
		}
	}
}
