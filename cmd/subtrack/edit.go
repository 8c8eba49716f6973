package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kushal311201/subtrack/internal/cli"
	"github.com/kushal311201/subtrack/internal/model"
	"github.com/kushal311201/subtrack/internal/reminder"
)

func editCmd() *cobra.Command {
	var (
		name     string
		amount   float64
		currency string
		cycle    string
		due      string
		category string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Edit a subscription",
		Long:  `Update fields on an existing subscription. Only the flags you pass change; everything else is preserved.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sub, err := resolveSubscription(ctx, store, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				sub.Name = name
			}
			if cmd.Flags().Changed("amount") {
				sub.Amount = amount
			}
			if cmd.Flags().Changed("currency") {
				sub.Currency = currency
				sub.NormalizeCurrency()
			}
			if cmd.Flags().Changed("cycle") {
				sub.BillingCycle = model.BillingCycle(cycle)
			}
			if cmd.Flags().Changed("due") {
				dueDate, parseErr := time.ParseInLocation(dueDateLayout, due, time.Local)
				if parseErr != nil {
					return fmt.Errorf("invalid --due date %q, expected YYYY-MM-DD: %w", due, parseErr)
				}
				sub.DueDate = dueDate
			}
			if cmd.Flags().Changed("category") {
				sub.Category = category
			}
			if cmd.Flags().Changed("notes") {
				sub.Notes = notes
			}

			if err := sub.Validate(); err != nil {
				return err
			}

			if err := store.UpdateSubscription(ctx, sub); err != nil {
				return fmt.Errorf("failed to update subscription: %w", err)
			}

			// The schedule follows the due date; replace this subscription's
			// reminder records with a fresh one.
			if cmd.Flags().Changed("due") {
				if err := store.DeleteNotificationsBySubscription(ctx, sub.ID); err != nil {
					return fmt.Errorf("failed to clear reminders: %w", err)
				}
				if _, err := reminder.NewChecker(store).Schedule(ctx, *sub); err != nil {
					return fmt.Errorf("failed to reschedule reminder: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess("Updated " + sub.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "subscription name")
	cmd.Flags().Float64Var(&amount, "amount", 0, "payment amount per billing cycle")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code")
	cmd.Flags().StringVar(&cycle, "cycle", "", "billing cycle (weekly, monthly, quarterly, yearly)")
	cmd.Flags().StringVar(&due, "due", "", "next due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "spending category")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}
