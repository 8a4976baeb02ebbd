package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdkit/foundation/cli/ui"
	kitconfig "github.com/msto63/cmdkit/foundation/core/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Shows the configuration file in use and every key with its value and
the environment variable that overrides it.

Examples:
  cmdkit config
  cmdkit config --config ./cmdkit.yaml
  cmdkit config paths`,
	RunE: runConfig,
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List the searched configuration files",
	RunE:  runConfigPaths,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathsCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	file := cfg.FilePath()
	if file == "" {
		file = ui.Muted("none, defaults only")
	}
	fmt.Fprintf(out, "%s %s\n\n", ui.TitleStyle.Render("Config file:"), file)

	keys := cfg.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(out, ui.Muted("No keys set."))
		return nil
	}
	for _, key := range keys {
		fmt.Fprintf(out, "%s = %s %s\n", key, cfg.GetString(key), ui.Muted("("+cfg.EnvKey(key)+")"))
	}
	return nil
}

func runConfigPaths(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, path := range kitconfig.ListPossibleConfigFiles(kitconfig.DefaultDiscoveryOptions()) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fmt.Fprintln(out, ui.Success(path))
			continue
		}
		fmt.Fprintln(out, ui.Muted("  "+path))
	}
	return nil
}
