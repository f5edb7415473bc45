package cmd

import (
	"fmt"
	"strings"

	"github.com/mj1618/macpaste/internal/model"
	"github.com/mj1618/macpaste/internal/output"
	"github.com/mj1618/macpaste/internal/platform"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List on-screen windows and their owner names",
	Long:  "List on-screen windows with the owner name that --skip and --no-focus match against.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("all-layers", false, "Include menu bar, Dock, and overlay windows")
	listCmd.Flags().String("app", "", "Filter windows by owner name")
	listCmd.Flags().Bool("apps", false, "List unique owner names only")
}

// appEntry is the output for --apps mode.
type appEntry struct {
	App string `yaml:"app" json:"app"`
	PID int    `yaml:"pid" json:"pid"`
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.WindowLister == nil {
		return fmt.Errorf("window listing not available on this platform")
	}

	allLayers, _ := cmd.Flags().GetBool("all-layers")
	appName, _ := cmd.Flags().GetString("app")
	apps, _ := cmd.Flags().GetBool("apps")

	windows, err := provider.WindowLister.ListWindows()
	if err != nil {
		return err
	}
	windows = filterWindows(windows, allLayers, appName)

	if apps {
		return output.Print(uniqueApps(windows))
	}
	return output.Print(windows)
}

func filterWindows(windows []model.Window, allLayers bool, app string) []model.Window {
	filtered := make([]model.Window, 0, len(windows))
	for _, w := range windows {
		if !allLayers && w.Layer != 0 {
			continue
		}
		if app != "" && !strings.EqualFold(w.App, app) {
			continue
		}
		filtered = append(filtered, w)
	}
	return filtered
}

func uniqueApps(windows []model.Window) []appEntry {
	seen := make(map[string]bool)
	entries := []appEntry{}
	for _, w := range windows {
		if !seen[w.App] {
			seen[w.App] = true
			entries = append(entries, appEntry{App: w.App, PID: w.PID})
		}
	}
	return entries
}
