// Package cli provides the command-line interface for the journal application.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	apperrors "pnl-journal/internal/errors"
	"pnl-journal/internal/stats"
)

// addSettingsCommands adds user settings commands.
func addSettingsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "User settings management",
		Long:  "View and update the user-level scalars (net worth, starting balance).",
	}

	cmd.AddCommand(newSettingsShowCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show user settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return apperrors.ErrDatabaseError
			}

			settings, err := app.Store.GetSettings(ctx)
			if err != nil {
				output.Error("Failed to fetch settings: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(settings)
			}

			output.Bold("User Settings")
			output.Printf("  Net Worth:        %s\n", stats.FormatCurrency(settings.NetWorth))
			output.Printf("  Starting Balance: %s\n", stats.FormatCurrency(settings.StartingBalance))
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update user settings",
		Example: `  pnlj settings set --net-worth 250000
  pnlj settings set --starting-balance 100000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return apperrors.ErrDatabaseError
			}

			if !cmd.Flags().Changed("net-worth") && !cmd.Flags().Changed("starting-balance") {
				output.Warning("Nothing to update; pass --net-worth and/or --starting-balance.")
				return nil
			}

			settings, err := app.Store.GetSettings(ctx)
			if err != nil {
				output.Error("Failed to fetch settings: %v", err)
				return err
			}

			if cmd.Flags().Changed("net-worth") {
				settings.NetWorth, _ = cmd.Flags().GetFloat64("net-worth")
			}
			if cmd.Flags().Changed("starting-balance") {
				settings.StartingBalance, _ = cmd.Flags().GetFloat64("starting-balance")
			}

			if err := app.Store.SaveSettings(ctx, settings); err != nil {
				output.Error("Failed to save settings: %v", err)
				return err
			}
			app.Logger.Info().
				Str("event", "settings_saved").
				Time("at", time.Now()).
				Msg("Settings updated")

			output.Success("✓ Settings updated")
			return nil
		},
	}

	cmd.Flags().Float64("net-worth", 0, "Current net worth")
	cmd.Flags().Float64("starting-balance", 0, "Starting account balance")

	return cmd
}
