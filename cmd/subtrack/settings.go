package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kushal311201/subtrack/internal/cli"
	"github.com/kushal311201/subtrack/internal/common"
	"github.com/kushal311201/subtrack/internal/model"
	"github.com/kushal311201/subtrack/internal/reminder"
	"github.com/kushal311201/subtrack/internal/service"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage notification settings",
		Long:  `Show or change the reminder lookahead and notification channels.`,
	}

	cmd.AddCommand(settingsGetCmd())
	cmd.AddCommand(settingsSetCmd())

	return cmd
}

func settingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}

			email := settings.UserEmail
			if email == "" {
				email = "(not set)"
			}

			content := fmt.Sprintf("Reminder lookahead: %d days\nPush notifications: %s\nEmail notifications: %s\nEmail address: %s",
				settings.ReminderDays,
				onOff(settings.PushNotifications),
				onOff(settings.EmailNotifications),
				email)
			fmt.Println(cli.RenderBox("Settings", content))
			return nil
		},
	}
}

func settingsSetCmd() *cobra.Command {
	var (
		reminderDays       int
		userEmail          string
		emailNotifications bool
		pushNotifications  bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long: `Change one or more settings. Only flags you pass change. Changing the
reminder lookahead reschedules every stored reminder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if cmd.Flags().NFlag() == 0 {
				return common.NewUserError("Pass at least one settings flag to change.", common.ErrInvalidConfig)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}

			if cmd.Flags().Changed("reminder-days") {
				if reminderDays < 1 {
					return common.NewUserError("Reminder lookahead must be at least 1 day.", common.ErrInvalidConfig)
				}
				settings.ReminderDays = reminderDays
			}
			if cmd.Flags().Changed("email") {
				settings.UserEmail = userEmail
			}
			if cmd.Flags().Changed("email-notifications") {
				settings.EmailNotifications = emailNotifications
			}
			if cmd.Flags().Changed("push-notifications") {
				settings.PushNotifications = pushNotifications
			}

			if err := applySettings(ctx, store, settings); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Settings saved"))
			return nil
		},
	}

	cmd.Flags().IntVar(&reminderDays, "reminder-days", model.DefaultReminderDays, "days before a due date to remind")
	cmd.Flags().StringVar(&userEmail, "email", "", "address for email reminders")
	cmd.Flags().BoolVar(&emailNotifications, "email-notifications", false, "enable email reminders")
	cmd.Flags().BoolVar(&pushNotifications, "push-notifications", true, "enable desktop notifications")

	return cmd
}

func applySettings(ctx context.Context, store service.Storage, settings model.Settings) error {
	if err := reminder.NewChecker(store).UpdateSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func onOff(enabled bool) string {
	if enabled {
		return cli.StyleSuccess("on")
	}
	return cli.SubtleStyle.Render("off")
}
