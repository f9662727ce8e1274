// Package cli wires nodetop's command-line interface: the root command
// runs the dashboard, and a version subcommand reports build info.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/nodetop/nodetop/internal/config"
	"github.com/nodetop/nodetop/internal/dash"
	"github.com/nodetop/nodetop/internal/errors"
	"github.com/nodetop/nodetop/internal/logger"
	"github.com/nodetop/nodetop/internal/sched"
)

var vp = viper.New()

var rootCmd = &cobra.Command{
	Use:   "nodetop",
	Short: "Live terminal dashboard for HPC cluster schedulers",
	Long: `nodetop polls a cluster scheduler's node and job inventory and renders
it as an auto-refreshing table with utilization gauges.

Supported backends: slurm, torque, and mock (demo data, no cluster needed).

Keyboard shortcuts:
  b           Switch to batch partition
  m           Switch to highmem partition
  g           Switch to gpu partition
  r / space   Refresh now
  up/k down/j Navigate the node table
  q / Ctrl+C  Quit

Examples:
  nodetop
  nodetop -q highmem_q -s slurm
  nodetop -s mock`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	config.Init(vp)

	rootCmd.Flags().StringP("queue", "q", config.DefaultPartition,
		"partition/queue to display (e.g., batch, highmem_q, gpu_q)")
	rootCmd.Flags().StringP("scheduler", "s", config.DefaultScheduler,
		"scheduler backend: slurm, torque, or mock")
	rootCmd.Flags().String("interval", config.DefaultInterval.String(),
		"auto-refresh interval (e.g., 30s, 1m)")
	rootCmd.Flags().String("user", "",
		"user whose jobs get highlighted (defaults to $USER)")

	vp.BindPFlag("partition", rootCmd.Flags().Lookup("queue"))
	vp.BindPFlag("scheduler", rootCmd.Flags().Lookup("scheduler"))
	vp.BindPFlag("interval", rootCmd.Flags().Lookup("interval"))
	vp.BindPFlag("user", rootCmd.Flags().Lookup("user"))
}

// runDashboard resolves configuration, selects the backend, and hands
// control to the Bubble Tea program. The backend selection is immutable
// once the dashboard starts.
func runDashboard() error {
	cfg, err := config.Load(vp)
	if err != nil {
		return err
	}

	schedType, err := sched.ParseType(cfg.Scheduler)
	if err != nil {
		return err
	}
	backend, err := sched.New(schedType)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTerminal,
			"nodetop needs an interactive terminal",
			"Run it directly in a TTY; it can't render a dashboard into a pipe.")
	}

	pipeline := &dash.Pipeline{
		Sched: backend,
		User:  cfg.User,
		Log:   logger.NewEnvLogger("[dash]"),
	}
	model := dash.NewModel(pipeline, cfg.Partition, cfg.Interval)

	// WithAltScreen scopes the terminal mode change: Bubble Tea restores
	// the terminal on every exit path, including errors and panics.
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
