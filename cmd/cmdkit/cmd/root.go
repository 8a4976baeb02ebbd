package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	kitconfig "github.com/msto63/cmdkit/foundation/core/config"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
	"github.com/msto63/cmdkit/pkg/core/logging"
)

var (
	cfgFile    string
	projectDir string
	pluginDirs []string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "cmdkit",
	Short: "cmdkit - declarative CLI runtime",
	Long: `cmdkit builds command-line programs from declarative command specs
and plugins.

This tool helps while developing cmdkit programs and plugins:
  version  - runtime and build information
  plugins  - discover and inspect plugin manifests
  config   - show the effective configuration
  exec     - run arguments through a cmdkit runtime`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExitError carries the exit code of a nested cmdkit run
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: cmdkit.{toml,yaml,yml} in ., ./.cmdkit, ~/.config/cmdkit)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", ".", "project directory searched for the project manifest")
	rootCmd.PersistentFlags().StringSliceVar(&pluginDirs, "plugin-dir", nil, "additional plugin directory (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads --config or discovers the configuration file
func loadConfig() (*kitconfig.Config, error) {
	if cfgFile != "" {
		return kitconfig.LoadWithOptions(cfgFile, kitconfig.LoadOptions{
			Format:    kitconfig.FormatAuto,
			EnvPrefix: kitconfig.DefaultEnvPrefix,
		})
	}
	return kitconfig.Discover(kitconfig.DefaultDiscoveryOptions())
}

func newLogger(cfg *kitconfig.Config) *kitlog.Logger {
	lc := logging.FromConfig("cmdkit", cfg)
	lc.Output = os.Stderr
	if verbose {
		lc.Level = "debug"
	}
	return logging.NewLogger(lc)
}
