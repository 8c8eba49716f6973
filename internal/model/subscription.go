// Package model defines the core record types shared across the application.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// BillingCycle describes how often a subscription charges.
type BillingCycle string

const (
	// CycleWeekly charges every week.
	CycleWeekly BillingCycle = "weekly"
	// CycleMonthly charges every month.
	CycleMonthly BillingCycle = "monthly"
	// CycleQuarterly charges every three months.
	CycleQuarterly BillingCycle = "quarterly"
	// CycleYearly charges every year.
	CycleYearly BillingCycle = "yearly"
)

// Valid reports whether the cycle is one of the known values.
func (c BillingCycle) Valid() bool {
	switch c {
	case CycleWeekly, CycleMonthly, CycleQuarterly, CycleYearly:
		return true
	}
	return false
}

// Validation errors for subscription records.
var (
	ErrMissingName         = errors.New("subscription name is required")
	ErrNegativeAmount      = errors.New("subscription amount cannot be negative")
	ErrInvalidCurrency     = errors.New("currency must be a 3-letter code")
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")
	ErrMissingDueDate      = errors.New("due date is required")
)

// Subscription represents a single recurring subscription.
type Subscription struct {
	DueDate      time.Time    `json:"dueDate"`
	CreatedAt    time.Time    `json:"createdAt"`
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Currency     string       `json:"currency"`
	Category     string       `json:"category"`
	Notes        string       `json:"notes,omitempty"`
	BillingCycle BillingCycle `json:"billingCycle"`
	Amount       float64      `json:"amount"`
}

// Validate checks the fields a record must carry before it may be stored.
// ID is assigned by the caller and CreatedAt by the store; neither is
// checked here.
func (s *Subscription) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrMissingName
	}
	if s.Amount < 0 {
		return ErrNegativeAmount
	}
	if len(s.Currency) != 3 {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, s.Currency)
	}
	if !s.BillingCycle.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidBillingCycle, s.BillingCycle)
	}
	if s.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	return nil
}

// NormalizeCurrency uppercases the currency code in place.
func (s *Subscription) NormalizeCurrency() {
	s.Currency = strings.ToUpper(s.Currency)
}
