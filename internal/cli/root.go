package cli

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	appName = "SmartTimer"
	appID   = "com.smarttimer.app"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "smarttimer",
		Short:         "Stopwatch, countdown and Tabata interval timer",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}

	flags := root.PersistentFlags()
	flags.DurationVar(&opts.tick, "tick", 0, "display refresh interval (overrides settings, e.g. 100ms)")
	flags.BoolVar(&opts.mute, "mute", false, "disable alert tones")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit logs as JSON")
	flags.StringVar(&opts.logFile, "log-file", "", "append logs to this file")

	root.AddCommand(newGUICmd(opts))
	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newConsoleCmd(opts))
	root.AddCommand(newSettingsCmd())

	return root
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newGUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop timer window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}
}

// options are the persistent flags shared by every frontend.
type options struct {
	tick     time.Duration
	mute     bool
	logLevel string
	logJSON  bool
	logFile  string
}
