package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kushal311201/subtrack/internal/cli"
	"github.com/kushal311201/subtrack/internal/model"
	"github.com/kushal311201/subtrack/internal/reminder"
)

const dueDateLayout = "2006-01-02"

func addCmd() *cobra.Command {
	var (
		amount   float64
		currency string
		cycle    string
		due      string
		category string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a subscription",
		Long:  `Record a new recurring subscription and schedule its payment reminder.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			dueDate, err := time.ParseInLocation(dueDateLayout, due, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --due date %q, expected YYYY-MM-DD: %w", due, err)
			}

			sub := &model.Subscription{
				ID:           uuid.NewString(),
				Name:         args[0],
				Amount:       amount,
				Currency:     currency,
				BillingCycle: model.BillingCycle(cycle),
				DueDate:      dueDate,
				Category:     category,
				Notes:        notes,
			}
			sub.NormalizeCurrency()

			if err := sub.Validate(); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.AddSubscription(ctx, sub); err != nil {
				return fmt.Errorf("failed to add subscription: %w", err)
			}

			if _, err := reminder.NewChecker(store).Schedule(ctx, *sub); err != nil {
				return fmt.Errorf("failed to schedule reminder: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s (%s %.2f %s)",
				sub.Name, sub.Currency, sub.Amount, sub.BillingCycle)))
			fmt.Println(cli.SubtleStyle.Render("ID: " + sub.ID))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "payment amount per billing cycle")
	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code")
	cmd.Flags().StringVar(&cycle, "cycle", string(model.CycleMonthly), "billing cycle (weekly, monthly, quarterly, yearly)")
	cmd.Flags().StringVar(&due, "due", "", "next due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "spending category")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}
