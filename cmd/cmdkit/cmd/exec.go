package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/cmdkit/foundation/cli"
	"github.com/msto63/cmdkit/foundation/cli/plugin"
)

var execPlugins []string

var execCmd = &cobra.Command{
	Use:   "exec [--] <command> [arguments...]",
	Short: "Run arguments through a cmdkit runtime",
	Long: `Builds a cmdkit runtime with the configuration, the discovered plugins and
the plugins named with --plugin, then routes the arguments after "--".

Examples:
  cmdkit exec --plugin greeter -- greet Alice --shout
  cmdkit exec --plugin-dir ./plugins -- dns add example.com
  cmdkit exec -- --verbose help`,
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().StringSliceVar(&execPlugins, "plugin", nil, "integrate a linked plugin by name (repeatable)")
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var explicit []*plugin.Plugin
	for _, name := range execPlugins {
		entry, ok := plugin.DefaultCatalog.Lookup(name)
		if !ok {
			return plugin.NotLinked(name)
		}
		p, err := entry.Factory()
		if err != nil {
			return err
		}
		explicit = append(explicit, p)
	}

	c, err := cli.New(cli.Options{
		Name:            "cmdkit exec",
		Version:         "",
		Config:          cfg,
		Logger:          newLogger(cfg),
		Plugins:         explicit,
		DiscoverPlugins: true,
		ProjectDir:      projectDir,
		PluginDirs:      pluginDirs,
		Stdin:           cmd.InOrStdin(),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	if code := c.Run(cmd.Context(), args); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
