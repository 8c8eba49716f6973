package analytics

import (
	"time"

	"github.com/kushal311201/subtrack/internal/model"
)

// ReportTitle is the fixed title of the exported spending report.
const ReportTitle = "Subscription Spending Report"

// Summary carries the headline figures of a spending report.
type Summary struct {
	TotalSubscriptions int     `json:"totalSubscriptions"`
	TotalSpending      float64 `json:"totalSpending"`
	AverageSpending    float64 `json:"averageSpending"`
}

// ReportEntry is the per-subscription slice of the exported report.
type ReportEntry struct {
	Name         string             `json:"name"`
	Amount       float64            `json:"amount"`
	Currency     string             `json:"currency"`
	BillingCycle model.BillingCycle `json:"billingCycle"`
	DueDate      string             `json:"dueDate"`
	Category     string             `json:"category"`
}

// SpendingReport is the downloadable JSON report document.
type SpendingReport struct {
	Title             string             `json:"title"`
	Date              string             `json:"date"`
	Summary           Summary            `json:"summary"`
	MonthlyBreakdown  []MonthTotal       `json:"monthlyBreakdown"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	Subscriptions     []ReportEntry      `json:"subscriptions"`
}

// Report builds the spending report for the given records as of now.
func Report(subs []model.Subscription, now time.Time) SpendingReport {
	entries := make([]ReportEntry, 0, len(subs))
	for _, sub := range subs {
		entries = append(entries, ReportEntry{
			Name:         sub.Name,
			Amount:       sub.Amount,
			Currency:     sub.Currency,
			BillingCycle: sub.BillingCycle,
			DueDate:      sub.DueDate.Format("2006-01-02"),
			Category:     sub.Category,
		})
	}

	return SpendingReport{
		Title: ReportTitle,
		Date:  now.Format(time.RFC3339),
		Summary: Summary{
			TotalSubscriptions: len(subs),
			TotalSpending:      TotalSpend(subs),
			AverageSpending:    AverageSpend(subs),
		},
		MonthlyBreakdown:  MonthlyTotals(subs, now, DefaultWindowMonths),
		CategoryBreakdown: CategoryTotals(subs),
		Subscriptions:     entries,
	}
}
