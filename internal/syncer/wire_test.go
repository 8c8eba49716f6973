package syncer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushal311201/subtrack/internal/model"
)

func TestWireSubscription_RoundTrip(t *testing.T) {
	sub := model.Subscription{
		ID:           "sub-1",
		Name:         "Spotify",
		Amount:       9.99,
		Currency:     "USD",
		BillingCycle: model.CycleMonthly,
		DueDate:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Category:     "Music",
		Notes:        "family plan",
		CreatedAt:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(toWire(sub))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "sub-1",
		"name": "Spotify",
		"amount": 9.99,
		"currency": "USD",
		"billingCycle": "monthly",
		"dueDate": "2024-03-05",
		"category": "Music",
		"notes": "family plan",
		"createdAt": "2024-01-02"
	}`, string(data))

	var w wireSubscription
	require.NoError(t, json.Unmarshal(data, &w))

	back, err := fromWire(w)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, back.ID)
	assert.Equal(t, sub.BillingCycle, back.BillingCycle)
	assert.True(t, back.DueDate.Equal(sub.DueDate))
	assert.True(t, back.CreatedAt.Equal(sub.CreatedAt))
}

func TestFromWire_ToleratesTimestampDueDate(t *testing.T) {
	back, err := fromWire(wireSubscription{
		ID:           "sub-1",
		Name:         "Spotify",
		Amount:       9.99,
		Currency:     "USD",
		BillingCycle: "monthly",
		DueDate:      "2024-03-05T12:30:00Z",
	})
	require.NoError(t, err)
	assert.True(t, back.DueDate.Equal(time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC)))
	assert.True(t, back.CreatedAt.IsZero())
}

func TestFromWire_RejectsBadDueDate(t *testing.T) {
	_, err := fromWire(wireSubscription{ID: "sub-1", DueDate: "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dueDate")
}
