package syncer

import (
	"fmt"
	"time"

	"github.com/kushal311201/subtrack/internal/model"
)

// wireDateLayout is the calendar-date form due dates take on the wire.
const wireDateLayout = "2006-01-02"

// wireSubscription is the subscription record as the sync endpoint sees it.
// Due dates travel as calendar-date strings, not timestamps.
type wireSubscription struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	BillingCycle string  `json:"billingCycle"`
	DueDate      string  `json:"dueDate"`
	Category     string  `json:"category"`
	Notes        string  `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}

// syncRequest is the payload pushed to the remote endpoint.
type syncRequest struct {
	Subscriptions []wireSubscription `json:"subscriptions"`
}

// syncResponse carries the remote's updates back. Each update is a complete
// subscription record that replaces the local one with the same ID.
type syncResponse struct {
	Updates []wireSubscription `json:"updates"`
}

func toWire(sub model.Subscription) wireSubscription {
	w := wireSubscription{
		ID:           sub.ID,
		Name:         sub.Name,
		Amount:       sub.Amount,
		Currency:     sub.Currency,
		BillingCycle: string(sub.BillingCycle),
		DueDate:      sub.DueDate.Format(wireDateLayout),
		Category:     sub.Category,
		Notes:        sub.Notes,
	}
	if !sub.CreatedAt.IsZero() {
		w.CreatedAt = sub.CreatedAt.Format(wireDateLayout)
	}
	return w
}

func fromWire(w wireSubscription) (model.Subscription, error) {
	dueDate, err := parseWireDate(w.DueDate)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("invalid dueDate for %s: %w", w.ID, err)
	}

	sub := model.Subscription{
		ID:           w.ID,
		Name:         w.Name,
		Amount:       w.Amount,
		Currency:     w.Currency,
		BillingCycle: model.BillingCycle(w.BillingCycle),
		DueDate:      dueDate,
		Category:     w.Category,
		Notes:        w.Notes,
	}
	if w.CreatedAt != "" {
		createdAt, err := parseWireDate(w.CreatedAt)
		if err != nil {
			return model.Subscription{}, fmt.Errorf("invalid createdAt for %s: %w", w.ID, err)
		}
		sub.CreatedAt = createdAt
	}
	return sub, nil
}

// parseWireDate reads a calendar date. Remotes that echo full timestamps are
// tolerated.
func parseWireDate(value string) (time.Time, error) {
	if t, err := time.Parse(wireDateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
