package cli

import (
	"github.com/spf13/cobra"

	"smarttimer/internal/core/controller"
	"smarttimer/internal/core/timekeeper"
	"smarttimer/internal/ui/console"
)

func newConsoleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Drive the timer from an interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateTick(opts); err != nil {
				return err
			}
			logger, closeLog, err := opts.logger(nil)
			if err != nil {
				return err
			}
			defer closeLog()

			settings := opts.settings(logger)
			alert, closeAlert := newAlert(settings, logger)
			defer closeAlert()

			prompt, err := console.New(settings, logger)
			if err != nil {
				return err
			}
			outputs := prompt.Outputs()
			outputs.Alert = alert
			engine := timekeeper.New(settings.TimerConfig(), timekeeper.Options{
				Outputs: outputs,
				Logger:  logger,
			})
			defer engine.Close()

			prompt.Bind(controller.New(engine, controller.Callbacks{}, logger))
			go prompt.Watch(engine.Subscribe(16))
			prompt.Run(cmd.Context())
			return nil
		},
	}
}
