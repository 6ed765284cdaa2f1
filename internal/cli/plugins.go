package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ayusman/cubescan/internal/plugin"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List discovered solver plugins",
	RunE:  runPlugins,
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}

func runPlugins(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mgr := plugin.NewManager(cfg.Solver.PluginDir, newLogger(cfg))
	if err := mgr.Discover(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	plugins := mgr.List()
	if len(plugins) == 0 {
		fmt.Fprintf(out, "no plugins in %s\n", mgr.PluginDir())
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tACTIONS\tDESCRIPTION")
	for _, p := range plugins {
		name := p.Manifest.Name
		if name == cfg.Solver.Plugin {
			name += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.Manifest.Version, strings.Join(p.Manifest.Actions, ","), p.Manifest.Description)
	}
	return w.Flush()
}
