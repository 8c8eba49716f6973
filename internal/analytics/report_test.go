package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushal311201/subtrack/internal/model"
)

func TestReport(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)
	subs := []model.Subscription{
		{
			ID:           "a",
			Name:         "Streamify",
			Amount:       9.99,
			Currency:     "USD",
			BillingCycle: model.CycleMonthly,
			DueDate:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
			Category:     "Streaming",
			Notes:        "never exported",
		},
		{
			ID:           "b",
			Name:         "Tunes",
			Amount:       14.99,
			Currency:     "USD",
			BillingCycle: model.CycleYearly,
			DueDate:      time.Date(2024, 3, 20, 0, 0, 0, 0, time.Local),
			Category:     "Music",
		},
	}

	report := Report(subs, now)

	assert.Equal(t, ReportTitle, report.Title)
	assert.Equal(t, now.Format(time.RFC3339), report.Date)
	assert.Equal(t, 2, report.Summary.TotalSubscriptions)
	assert.InDelta(t, 24.98, report.Summary.TotalSpending, 1e-9)
	assert.InDelta(t, 12.49, report.Summary.AverageSpending, 1e-9)
	assert.Len(t, report.MonthlyBreakdown, DefaultWindowMonths)
	assert.Len(t, report.CategoryBreakdown, 2)

	require.Len(t, report.Subscriptions, 2)
	assert.Equal(t, "Streamify", report.Subscriptions[0].Name)
	assert.Equal(t, "2024-03-05", report.Subscriptions[0].DueDate)
}

func TestReport_JSONShape(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	report := Report(nil, now)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{"title", "date", "summary", "monthlyBreakdown", "categoryBreakdown", "subscriptions"} {
		assert.Contains(t, decoded, key)
	}

	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 0, summary["totalSubscriptions"])
	assert.EqualValues(t, 0, summary["averageSpending"])
}
