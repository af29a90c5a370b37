package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/taskbreak/taskbreak/internal/models"
	"github.com/taskbreak/taskbreak/internal/validation"
)

// NewSettingsCmd creates the settings subcommand group
func NewSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change user preferences",
	}
	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsSetCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			settings := app.store.GetSettings()

			t := newTable()
			t.AppendHeader(table.Row{"Setting", "Value"})
			t.AppendRow(table.Row{"notifications", settings.Notifications})
			t.AppendRow(table.Row{"reminder-interval", models.FormatDuration(settings.ReminderInterval)})
			t.AppendRow(table.Row{"theme", settings.Theme})
			t.AppendRow(table.Row{"language", settings.Language})
			t.Render()
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	var notifications bool
	var reminderInterval int
	var theme, language string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			settings := app.store.GetSettings()
			changed := false

			if cmd.Flags().Changed("notifications") {
				settings.Notifications = notifications
				changed = true
			}
			if cmd.Flags().Changed("reminder-interval") {
				if err := validation.ValidateReminderInterval(reminderInterval); err != nil {
					return err
				}
				settings.ReminderInterval = reminderInterval
				changed = true
			}
			if cmd.Flags().Changed("theme") {
				if err := validation.Validate.Var(models.Theme(theme), "theme"); err != nil {
					return fmt.Errorf("invalid theme: %s (must be 'light', 'dark' or 'auto')", theme)
				}
				settings.Theme = models.Theme(theme)
				changed = true
			}
			if cmd.Flags().Changed("language") {
				if err := validation.Validate.Var(models.Language(language), "language"); err != nil {
					return fmt.Errorf("invalid language: %s (must be 'zh-CN' or 'en-US')", language)
				}
				settings.Language = models.Language(language)
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to change: pass --notifications, --reminder-interval, --theme or --language")
			}

			app.store.SaveSettings(settings)
			fmt.Println("Settings updated")
			return nil
		},
	}

	cmd.Flags().BoolVar(&notifications, "notifications", true, "Enable or disable reminders")
	cmd.Flags().IntVar(&reminderInterval, "reminder-interval", 30, "Reminder interval in minutes (15, 30, 60, 120 or 240)")
	cmd.Flags().StringVar(&theme, "theme", "", "Color theme (light, dark, auto)")
	cmd.Flags().StringVar(&language, "language", "", "Interface language (zh-CN, en-US)")

	return cmd
}
