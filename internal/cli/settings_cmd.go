package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"smarttimer/internal/storage"
	"smarttimer/internal/ui/preferences"
	"smarttimer/internal/ui/tui"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or reset saved settings",
	}
	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsPathCmd())
	cmd.AddCommand(newSettingsResetCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := storage.SettingsPath(appName)
			if err != nil {
				return err
			}
			if tui.IsTTY() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n\n", tui.StyleTitle.Render("Settings file:"), path)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "Settings file: %s\n\n", path)
			}

			settings, err := storage.LoadSettings(appName)
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			data, err := storage.MarshalSettings(settings)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newSettingsPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := storage.SettingsPath(appName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newSettingsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.SaveSettings(appName, preferences.DefaultSettings()); err != nil {
				return fmt.Errorf("resetting settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings restored to defaults")
			return nil
		},
	}
}
