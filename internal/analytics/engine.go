// Package analytics provides pure aggregation functions over subscription
// records. Every function is side-effect free and safe to re-run on each
// refresh.
package analytics

import (
	"time"

	"github.com/kushal311201/subtrack/internal/model"
)

// MonthKeyFormat is the calendar-month key used throughout reports.
const MonthKeyFormat = "2006-01"

// DefaultWindowMonths is the monthly-totals window when none is given.
const DefaultWindowMonths = 12

// MonthTotal is one calendar month's spend.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// MonthlyTotals sums amounts by the calendar month of each due date over the
// windowMonths months ending at ref's month inclusive. The result always has
// exactly windowMonths entries, oldest first, with months that match no
// record present at zero. Records due outside the window are ignored.
func MonthlyTotals(subs []model.Subscription, ref time.Time, windowMonths int) []MonthTotal {
	if windowMonths <= 0 {
		windowMonths = DefaultWindowMonths
	}

	totals := make([]MonthTotal, windowMonths)
	index := make(map[string]int, windowMonths)

	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).
		AddDate(0, -(windowMonths - 1), 0)
	for i := 0; i < windowMonths; i++ {
		key := first.AddDate(0, i, 0).Format(MonthKeyFormat)
		totals[i] = MonthTotal{Month: key}
		index[key] = i
	}

	for _, sub := range subs {
		key := sub.DueDate.Format(MonthKeyFormat)
		if i, ok := index[key]; ok {
			totals[i].Total += sub.Amount
		}
	}

	return totals
}

// CategoryTotals sums amounts by category. Categories are discovered from the
// input; the result's keys are exactly the distinct categories present.
func CategoryTotals(subs []model.Subscription) map[string]float64 {
	totals := make(map[string]float64)
	for _, sub := range subs {
		totals[sub.Category] += sub.Amount
	}
	return totals
}

// TotalSpend sums every record's amount. Amounts are summed raw regardless of
// currency; mixed-currency sets produce an unconverted total.
func TotalSpend(subs []model.Subscription) float64 {
	var total float64
	for _, sub := range subs {
		total += sub.Amount
	}
	return total
}

// AverageSpend returns TotalSpend divided by the record count, or 0 for an
// empty input.
func AverageSpend(subs []model.Subscription) float64 {
	if len(subs) == 0 {
		return 0
	}
	return TotalSpend(subs) / float64(len(subs))
}
