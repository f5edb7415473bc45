package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/macpaste/internal/config"
	"github.com/mj1618/macpaste/internal/daemon"
	"github.com/mj1618/macpaste/internal/dispatch"
	"github.com/mj1618/macpaste/internal/gesture"
	"github.com/mj1618/macpaste/internal/logging"
	"github.com/mj1618/macpaste/internal/output"
	"github.com/mj1618/macpaste/internal/platform"
	"github.com/mj1618/macpaste/internal/policy"
	"github.com/mj1618/macpaste/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "macpaste",
	Short: "Select-to-copy and middle-click-to-paste for macOS",
	Long: `Emulate the X11 selection workflow on macOS.

Double-clicking or drag-selecting text sends the copy shortcut. Pressing the
middle (or any other) mouse button clicks to place the cursor and sends the
paste shortcut. Runs in the foreground until interrupted.

Examples:
  macpaste
  macpaste --ctrl
  macpaste -s Terminal -n Xcode -v`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runDaemon,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)

	flags := rootCmd.PersistentFlags()
	flags.String("format", "yaml", "Output format for list, policy, and simulate: yaml, json")
	flags.Bool("pretty", false, "Pretty-print JSON output")
	flags.String("config", "", "Config file, .yaml or .toml (default: ~/.config/macpaste/config.yaml if present)")
	flags.BoolP("ctrl", "c", false, "Use ctrl instead of cmd for copy and paste")
	flags.StringArrayP("skip", "s", nil, "Never copy or paste in windows owned by this app (repeatable)")
	flags.StringArrayP("no-focus", "n", nil, "Never send the focusing click to this app (repeatable)")
	flags.BoolP("verbose", "v", false, "Log every gesture and window decision")
	flags.String("log-format", "", "Log format: text, json")
	flags.Int("double-click-ms", 0, "Maximum gap between clicks of a double click (default 500)")
	flags.Int("settle-ms", 0, "Delay between the focusing click and paste (default 1)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	var f config.Flags
	f.Ctrl, _ = flags.GetBool("ctrl")
	f.Skip, _ = flags.GetStringArray("skip")
	f.NoFocus, _ = flags.GetStringArray("no-focus")
	f.Verbose, _ = flags.GetBool("verbose")
	f.LogFormat, _ = flags.GetString("log-format")
	f.DoubleClickMs, _ = flags.GetInt("double-click-ms")
	f.SettleMs, _ = flags.GetInt("settle-ms")
	cfg.ApplyFlags(f)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPolicy loads the window policy table and modifier from cfg.
func buildPolicy(cfg *config.Config, logger *slog.Logger) (*policy.Table, platform.Modifier, error) {
	mod, err := cfg.ModifierKey()
	if err != nil {
		return nil, 0, err
	}
	table, err := policy.Load(cfg.Rules())
	if err != nil {
		return nil, 0, err
	}
	if mod == platform.ModifierControl {
		logger.Info("using ctrl instead of cmd")
	}
	for _, r := range table.Rules() {
		if r.Skip {
			logger.Info("will skip window", "name", r.Name)
		}
		if r.NoFocus {
			logger.Info("won't focus", "name", r.Name)
		}
	}
	return table, mod, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	table, mod, err := buildPolicy(cfg, logger)
	if err != nil {
		return err
	}

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if platform.RequestPermissionsFunc != nil {
		platform.RequestPermissionsFunc()
	}

	dispatcher := dispatch.New(dispatch.Options{
		Policy:   table,
		Windows:  provider.WindowLister,
		Input:    provider.Inputter,
		Modifier: mod,
		Settle:   cfg.Settle(),
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("listening; quit with Ctrl+C", "config", cfg.Source, "modifier", mod.String(), "rules", table.Len())
	d := daemon.New(provider.EventSource, gesture.NewClassifier(cfg.DoubleClick()), dispatcher, logger)
	if err := d.Run(ctx); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
