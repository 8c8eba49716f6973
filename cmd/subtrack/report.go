package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kushal311201/subtrack/internal/analytics"
	"github.com/kushal311201/subtrack/internal/cli"
)

func reportCmd() *cobra.Command {
	var (
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a spending report",
		Long: `Summarize subscription spending: totals, per-category breakdown, and
per-month totals over the last twelve months.`,
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

			report := analytics.Report(subs, time.Now())

			if asJSON || output != "" {
				data, marshalErr := json.MarshalIndent(report, "", "  ")
				if marshalErr != nil {
					return fmt.Errorf("failed to encode report: %w", marshalErr)
				}
				if output == "" {
					fmt.Println(string(data))
					return nil
				}
				if writeErr := os.WriteFile(output, append(data, '\n'), 0600); writeErr != nil {
					return fmt.Errorf("failed to write report: %w", writeErr)
				}
				fmt.Println(cli.FormatSuccess("Report written to " + output))
				return nil
			}

			printStyledReport(report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON report to a file")

	return cmd
}

func printStyledReport(report analytics.SpendingReport) {
	fmt.Println(cli.FormatTitle(report.Title))

	summary := fmt.Sprintf("Subscriptions: %d\nTotal per cycle: %.2f\nAverage: %.2f",
		report.Summary.TotalSubscriptions,
		report.Summary.TotalSpending,
		report.Summary.AverageSpending)
	fmt.Println(cli.RenderBox("Summary", summary))

	if len(report.CategoryBreakdown) > 0 {
		fmt.Println(cli.StyleTitle(cli.ChartIcon + " By category"))

		categories := make([]string, 0, len(report.CategoryBreakdown))
		for category := range report.CategoryBreakdown {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, category := range categories {
			fmt.Fprintf(w, "%s\t%.2f\n", category, report.CategoryBreakdown[category])
		}
		_ = w.Flush()
		fmt.Println()
	}

	fmt.Println(cli.StyleTitle("Monthly totals"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, month := range report.MonthlyBreakdown {
		bar := strings.Repeat("▇", barWidth(month.Total, report.MonthlyBreakdown))
		fmt.Fprintf(w, "%s\t%8.2f\t%s\n", month.Month, month.Total, cli.InfoStyle.Render(bar))
	}
	_ = w.Flush()
}

// barWidth scales a month's total to at most 40 columns against the window
// maximum.
func barWidth(total float64, months []analytics.MonthTotal) int {
	var maxTotal float64
	for _, m := range months {
		if m.Total > maxTotal {
			maxTotal = m.Total
		}
	}
	if maxTotal <= 0 || total <= 0 {
		return 0
	}
	return int(total / maxTotal * 40)
}
