package cmd

import (
	"io"
	"log/slog"

	"github.com/mj1618/macpaste/internal/output"
	"github.com/mj1618/macpaste/internal/policy"
	"github.com/spf13/cobra"
)

// PolicyResult is the output of the policy command.
type PolicyResult struct {
	Config        string        `yaml:"config"          json:"config"`
	Modifier      string        `yaml:"modifier"        json:"modifier"`
	DoubleClickMs int           `yaml:"double_click_ms" json:"double_click_ms"`
	SettleMs      int           `yaml:"settle_ms"       json:"settle_ms"`
	Windows       []policy.Rule `yaml:"windows"         json:"windows"`
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Show the effective window policy",
	Long:  "Print the window policy table after merging the config file with --skip, --no-focus, and --ctrl.",
	Args:  cobra.NoArgs,
	RunE:  runPolicy,
}

func init() {
	rootCmd.AddCommand(policyCmd)
}

func runPolicy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	table, mod, err := buildPolicy(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return err
	}
	return output.Print(PolicyResult{
		Config:        cfg.Source,
		Modifier:      mod.String(),
		DoubleClickMs: cfg.DoubleClickMs,
		SettleMs:      cfg.SettleMs,
		Windows:       table.Rules(),
	})
}
