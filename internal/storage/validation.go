package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kushal311201/subtrack/internal/common"
	"github.com/kushal311201/subtrack/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSubscription validates a subscription record before it touches the store.
func validateSubscription(sub *model.Subscription) error {
	if sub == nil {
		return fmt.Errorf("%w: subscription", ErrNilParameter)
	}
	if sub.ID == "" {
		return fmt.Errorf("%w: missing ID", common.ErrInvalidRecord)
	}
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidRecord, err)
	}
	return nil
}

// validateSettings validates a settings record.
func validateSettings(settings model.Settings) error {
	if settings.ReminderDays < 1 {
		return fmt.Errorf("%w: reminderDays must be at least 1", common.ErrInvalidRecord)
	}
	return nil
}

// validateNotification validates a scheduled notification record.
func validateNotification(n *model.Notification) error {
	if n == nil {
		return fmt.Errorf("%w: notification", ErrNilParameter)
	}
	if n.ID == "" {
		return fmt.Errorf("%w: missing ID", common.ErrInvalidRecord)
	}
	if n.SubscriptionID == "" {
		return fmt.Errorf("%w: missing subscription ID", common.ErrInvalidRecord)
	}
	switch n.Type {
	case model.NotificationPush, model.NotificationEmail:
	default:
		return fmt.Errorf("%w: notification type %q", common.ErrInvalidRecord, n.Type)
	}
	if n.ScheduledFor.IsZero() {
		return fmt.Errorf("%w: missing scheduled time", common.ErrInvalidRecord)
	}
	return nil
}
