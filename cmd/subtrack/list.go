package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kushal311201/subtrack/internal/cli"
	"github.com/kushal311201/subtrack/internal/model"
)

func listCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		Long:  `Display every tracked subscription with its amount, billing cycle, and next due date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			subs, err := store.GetSubscriptions(ctx)
			if err != nil {
				return fmt.Errorf("failed to get subscriptions: %w", err)
			}

			if category != "" {
				subs = filterByCategory(subs, category)
			}

			if len(subs) == 0 {
				fmt.Println(cli.InfoStyle.Render("No subscriptions found. Use 'subtrack add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Cycle"),
				headerStyle.Render("Due"),
				headerStyle.Render("Category"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 20),
				strings.Repeat("-", 12),
				strings.Repeat("-", 9),
				strings.Repeat("-", 10),
				strings.Repeat("-", 12))

			for _, sub := range subs {
				cat := sub.Category
				if cat == "" {
					cat = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("(none)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s %.2f\t%s\t%s\t%s\n",
					shortID(sub.ID),
					sub.Name,
					sub.Currency, sub.Amount,
					sub.BillingCycle,
					sub.DueDate.Format(dueDateLayout),
					cat)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show subscriptions in this category")

	return cmd
}

func filterByCategory(subs []model.Subscription, category string) []model.Subscription {
	filtered := make([]model.Subscription, 0, len(subs))
	for _, sub := range subs {
		if strings.EqualFold(sub.Category, category) {
			filtered = append(filtered, sub)
		}
	}
	return filtered
}

// shortID truncates a UUID for table display. Full IDs stay available via
// report --json.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
