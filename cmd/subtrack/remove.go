package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kushal311201/subtrack/internal/cli"
)

func removeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id|name>",
		Short: "Remove a subscription",
		Long:  `Delete a subscription and any reminders scheduled for it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sub, err := resolveSubscription(ctx, store, args[0])
			if err != nil {
				return err
			}

			if !yes && !cli.Confirm(ctx, os.Stdin, os.Stdout, fmt.Sprintf("Delete %s?", sub.Name)) {
				fmt.Println(cli.InfoStyle.Render("Nothing deleted."))
				return nil
			}

			if err := store.DeleteNotificationsBySubscription(ctx, sub.ID); err != nil {
				return fmt.Errorf("failed to delete reminders: %w", err)
			}
			if err := store.DeleteSubscription(ctx, sub.ID); err != nil {
				return fmt.Errorf("failed to delete subscription: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Removed " + sub.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
