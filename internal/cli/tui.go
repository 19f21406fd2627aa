package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"smarttimer/internal/core/controller"
	"smarttimer/internal/core/timekeeper"
	"smarttimer/internal/ui/tui"
)

var errNotTerminal = errors.New("tui requires an interactive terminal")

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tui.IsTTY() {
				return errNotTerminal
			}
			return runTUI(opts)
		},
	}
}

// runTUI launches the BubbleTea frontend. Logs are discarded unless
// --log-file is set so they do not corrupt the screen.
func runTUI(opts *options) error {
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

	screen := tui.NewScreen()
	outputs := screen.Outputs()
	outputs.Alert = alert
	engine := timekeeper.New(settings.TimerConfig(), timekeeper.Options{
		Outputs: outputs,
		Logger:  logger,
	})
	defer engine.Close()
	ctrl := controller.New(engine, controller.Callbacks{}, logger)

	program := tea.NewProgram(tui.NewModel(ctrl, screen, settings), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
