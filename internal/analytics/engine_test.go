package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushal311201/subtrack/internal/model"
)

func sub(amount float64, category string, due time.Time) model.Subscription {
	return model.Subscription{
		ID:           "sub-" + category,
		Name:         category + " service",
		Amount:       amount,
		Currency:     "USD",
		BillingCycle: model.CycleMonthly,
		Category:     category,
		DueDate:      due,
	}
}

func TestTotalSpend(t *testing.T) {
	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		subs []model.Subscription
		want float64
	}{
		{name: "empty set", subs: nil, want: 0},
		{
			name: "example from the product sheet",
			subs: []model.Subscription{
				sub(9.99, "Streaming", march),
				sub(14.99, "Music", march.AddDate(0, 0, 15)),
			},
			want: 24.98,
		},
		{
			name: "mixed currencies are summed raw",
			subs: []model.Subscription{
				{Amount: 10, Currency: "USD", Category: "A"},
				{Amount: 10, Currency: "EUR", Category: "A"},
			},
			want: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TotalSpend(tt.subs), 1e-9)
		})
	}
}

func TestAverageSpend(t *testing.T) {
	assert.Zero(t, AverageSpend(nil), "empty set must not divide by zero")

	subs := []model.Subscription{
		{Amount: 10, Category: "A"},
		{Amount: 20, Category: "B"},
		{Amount: 30, Category: "C"},
	}
	assert.InDelta(t, 20.0, AverageSpend(subs), 1e-9)
	assert.InDelta(t, TotalSpend(subs)/3, AverageSpend(subs), 1e-9)
}

func TestCategoryTotals(t *testing.T) {
	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	subs := []model.Subscription{
		sub(9.99, "Streaming", march),
		sub(14.99, "Music", march),
		{Amount: 5.00, Category: "Streaming"},
	}

	got := CategoryTotals(subs)

	require.Len(t, got, 2, "keys must be exactly the distinct categories")
	assert.InDelta(t, 14.99, got["Streaming"], 1e-9)
	assert.InDelta(t, 14.99, got["Music"], 1e-9)

	assert.Empty(t, CategoryTotals(nil))
}

func TestMonthlyTotals(t *testing.T) {
	ref := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

	subs := []model.Subscription{
		sub(9.99, "Streaming", time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)),
		sub(14.99, "Music", time.Date(2024, 3, 20, 0, 0, 0, 0, time.Local)),
		sub(4.99, "Cloud", time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)),
		// Outside the 12-month window, must be ignored.
		sub(99.99, "Old", time.Date(2022, 12, 1, 0, 0, 0, 0, time.Local)),
	}

	got := MonthlyTotals(subs, ref, 12)

	require.Len(t, got, 12, "always exactly windowMonths entries")
	assert.Equal(t, "2023-04", got[0].Month, "oldest first")
	assert.Equal(t, "2024-03", got[11].Month, "window ends at ref's month inclusive")

	byMonth := make(map[string]float64, len(got))
	for _, mt := range got {
		assert.Regexp(t, `^\d{4}-\d{2}$`, mt.Month)
		byMonth[mt.Month] = mt.Total
	}
	assert.InDelta(t, 24.98, byMonth["2024-03"], 1e-9)
	assert.InDelta(t, 4.99, byMonth["2024-01"], 1e-9)
	assert.Zero(t, byMonth["2023-07"], "months with no due date are zero-filled, not omitted")
}

func TestMonthlyTotals_WindowDefaults(t *testing.T) {
	ref := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)

	assert.Len(t, MonthlyTotals(nil, ref, 0), DefaultWindowMonths)
	assert.Len(t, MonthlyTotals(nil, ref, -4), DefaultWindowMonths)

	got := MonthlyTotals(nil, ref, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "2024-01", got[0].Month)
	assert.Equal(t, "2024-02", got[1].Month)
	assert.Equal(t, "2024-03", got[2].Month)
	for _, mt := range got {
		assert.Zero(t, mt.Total)
	}
}

func TestMonthlyTotals_YearBoundary(t *testing.T) {
	ref := time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local)

	got := MonthlyTotals(nil, ref, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "2023-12", got[0].Month)
	assert.Equal(t, "2024-01", got[1].Month)
}
