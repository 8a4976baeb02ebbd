package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/msto63/cmdkit/foundation/cli/plugin"
	"github.com/msto63/cmdkit/foundation/cli/ui"
	"github.com/msto63/cmdkit/foundation/utils/mapx"
	kitstringx "github.com/msto63/cmdkit/foundation/utils/stringx"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List discovered plugins",
	Long: `Discovers plugin manifests in the project and the plugin directories and
shows whether each plugin is eligible and linked into this binary.

Examples:
  cmdkit plugins
  cmdkit plugins --plugin-dir ./plugins
  cmdkit plugins inspect ./plugins/dns/plugin.yaml`,
	RunE: runPlugins,
}

var pluginsInspectCmd = &cobra.Command{
	Use:   "inspect <manifest>",
	Short: "Show the fields of a plugin manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runPluginsInspect,
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
	pluginsCmd.AddCommand(pluginsInspectCmd)
}

type pluginRow struct {
	name, version, source, eligible, linked, path string
}

func runPlugins(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dirs := append(append([]string(nil), pluginDirs...), cfg.GetStringSlice("plugins.dirs")...)
	candidates, errs := plugin.Discover(plugin.DiscoverOptions{
		ProjectDir: projectDir,
		Plugins:    cfg.GetStringSlice("plugins"),
		Dirs:       dirs,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.TitleStyle.Render("Plugins"))
	fmt.Fprintln(out)

	rows := make([]pluginRow, 0, len(candidates))
	for _, c := range candidates {
		_, linked := plugin.DefaultCatalog.Lookup(c.Name)
		rows = append(rows, pluginRow{
			name:     c.Name,
			version:  kitstringx.FirstNonBlank(c.Version, "-"),
			source:   c.Source,
			eligible: yesNo(c.Eligible),
			linked:   yesNo(linked),
			path:     kitstringx.FirstNonBlank(c.Path, "-"),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, ui.Muted("No plugins found."))
	} else {
		renderPluginTable(out, rows)
	}

	linked := plugin.DefaultCatalog.Names()
	sort.Strings(linked)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Linked into this binary: %s\n", strings.Join(linked, ", "))

	if len(errs) > 0 {
		fmt.Fprintln(out)
		for _, err := range errs {
			fmt.Fprintln(out, ui.Warning(err.Error()))
		}
	}
	return nil
}

func renderPluginTable(w io.Writer, rows []pluginRow) {
	header := pluginRow{"NAME", "VERSION", "SOURCE", "ELIGIBLE", "LINKED", "PATH"}
	cols := func(r pluginRow) []string {
		return []string{r.name, r.version, r.source, r.eligible, r.linked, r.path}
	}

	widths := make([]int, 6)
	for _, r := range append([]pluginRow{header}, rows...) {
		for i, c := range cols(r) {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	line := func(r pluginRow, style *lipgloss.Style) string {
		parts := make([]string, 0, 6)
		for i, c := range cols(r) {
			cell := kitstringx.PadRight(c, widths[i], ' ')
			if style != nil {
				cell = style.Render(cell)
			}
			parts = append(parts, cell)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	fmt.Fprintln(w, line(header, &headerStyle))
	for _, r := range rows {
		fmt.Fprintln(w, line(r, nil))
	}
}

func runPluginsInspect(cmd *cobra.Command, args []string) error {
	m, err := plugin.ReadManifest(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.TitleStyle.Render(kitstringx.FirstNonBlank(m.Name, "(unnamed)")))
	fmt.Fprintf(out, "  path:        %s\n", m.Path)
	fmt.Fprintf(out, "  version:     %s\n", kitstringx.FirstNonBlank(m.Version, "-"))
	fmt.Fprintf(out, "  description: %s\n", kitstringx.FirstNonBlank(m.Description, "-"))
	fmt.Fprintf(out, "  eligible:    %s\n", yesNo(m.Eligible))

	keys := mapx.SortedKeys(m.Fields)
	if len(keys) > 0 {
		fmt.Fprintln(out, "  fields:")
		for _, k := range keys {
			fmt.Fprintf(out, "    %s = %v\n", k, m.Fields[k])
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
