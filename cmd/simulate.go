package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/macpaste/internal/daemon"
	"github.com/mj1618/macpaste/internal/dispatch"
	"github.com/mj1618/macpaste/internal/gesture"
	"github.com/mj1618/macpaste/internal/output"
	"github.com/mj1618/macpaste/internal/replay"
	"github.com/spf13/cobra"
)

// SimulateResult is the output of the simulate command.
type SimulateResult struct {
	Events  int             `yaml:"events"  json:"events"`
	Actions []replay.Action `yaml:"actions" json:"actions"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a scripted event sequence without touching the desktop",
	Long: `Run a YAML script of pointer events through gesture detection and the
window policy, printing the clicks and shortcuts that would be injected.

Script format:
  windows:
    - {app: Terminal, layer: 0, bounds: {x: 0, y: 0, width: 800, height: 600}}
  events:
    - {kind: left-down, t: 1000}
    - {kind: left-dragged, x: 40, y: 10, t: 1100}
    - {kind: left-up, x: 80, y: 10, t: 1200}
    - {kind: other-down, x: 10, y: 10, t: 3000}

Examples:
  macpaste simulate --script session.yaml
  macpaste simulate --script session.yaml -s Terminal --format json`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("script", "", "Path to the YAML event script (required)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("script")
	if path == "" {
		return fmt.Errorf("specify --script")
	}
	script, err := replay.LoadScript(path)
	if err != nil {
		return err
	}

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

	rec := &replay.Recorder{}
	dispatcher := dispatch.New(dispatch.Options{
		Policy:   table,
		Windows:  script.Lister(),
		Input:    rec,
		Modifier: mod,
		Settle:   cfg.Settle(),
		Logger:   logger,
		Sleep:    func(time.Duration) {},
	})
	d := daemon.New(script.Source(), gesture.NewClassifier(cfg.DoubleClick()), dispatcher, logger)
	if err := d.Run(cmd.Context()); err != nil {
		return err
	}

	actions := rec.Actions
	if actions == nil {
		actions = []replay.Action{}
	}
	return output.Print(SimulateResult{Events: len(script.Events), Actions: actions})
}
