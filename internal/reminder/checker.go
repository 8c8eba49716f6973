// Package reminder compares subscription due dates against the reminder
// lookahead window and delivers due-date reminders.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kushal311201/subtrack/internal/model"
	"github.com/kushal311201/subtrack/internal/service"
)

// ReminderTitle is the title of every payment reminder.
const ReminderTitle = "Payment Reminder"

// DaysUntilDue returns the number of whole days until due, rounding any
// partial day up. A due date in the past yields zero or a negative count.
func DaysUntilDue(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// ReminderMessage renders the reminder body for one subscription.
func ReminderMessage(sub model.Subscription, daysUntilDue int) string {
	return fmt.Sprintf("Payment of %s %.2f for %s is due in %d days.",
		sub.Currency, sub.Amount, sub.Name, daysUntilDue)
}

// Outcome records what happened for one subscription during a check.
type Outcome struct {
	PushErr        error
	EmailErr       error
	SubscriptionID string
	Name           string
	DaysUntilDue   int
	PushSent       bool
	EmailSent      bool
}

// CheckResult is the observable completion of one reminder check.
type CheckResult struct {
	Outcomes []Outcome
	Checked  int
	Fired    int
}

// Checker drives reminder checks against the store. The clock is injectable
// for tests; it defaults to time.Now.
type Checker struct {
	store    service.Storage
	notifier service.Notifier
	email    service.EmailSender
	now      func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithNotifier sets the local notification surface.
func WithNotifier(n service.Notifier) Option {
	return func(c *Checker) { c.notifier = n }
}

// WithEmailSender sets the outbound email sender.
func WithEmailSender(e service.EmailSender) Option {
	return func(c *Checker) { c.email = e }
}

// WithClock overrides the clock.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

// NewChecker creates a reminder checker over the given store.
func NewChecker(store service.Storage, opts ...Option) *Checker {
	c := &Checker{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckUpcoming walks every subscription and fires a reminder for each one
// whose due date falls inside the lookahead window: 0 < daysUntilDue <=
// reminderDays. Past-due subscriptions never re-trigger. Delivery failures are
// logged and swallowed; they never fail the check.
func (c *Checker) CheckUpcoming(ctx context.Context) (*CheckResult, error) {
	settings, err := c.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	subs, err := c.store.GetSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	now := c.now()
	result := &CheckResult{Checked: len(subs)}

	for _, sub := range subs {
		days := DaysUntilDue(sub.DueDate, now)
		if days <= 0 || days > settings.ReminderDays {
			continue
		}

		outcome := c.deliver(ctx, sub, days, settings)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Fired++
	}

	slog.Info("reminder check complete",
		"checked", result.Checked,
		"fired", result.Fired)
	return result, nil
}

// deliver fires the two independent delivery side effects for one due
// subscription.
func (c *Checker) deliver(ctx context.Context, sub model.Subscription, days int, settings model.Settings) Outcome {
	outcome := Outcome{
		SubscriptionID: sub.ID,
		Name:           sub.Name,
		DaysUntilDue:   days,
	}
	message := ReminderMessage(sub, days)

	if settings.PushNotifications && c.notifier != nil {
		if err := c.notifier.Notify(ReminderTitle, message); err != nil {
			outcome.PushErr = err
			slog.Error("failed to show reminder notification",
				"subscription", sub.ID,
				"error", err)
		} else {
			outcome.PushSent = true
		}
	}

	if settings.EmailNotifications && settings.UserEmail != "" && c.email != nil {
		if err := c.email.SendEmail(ctx, settings.UserEmail, ReminderTitle, message); err != nil {
			outcome.EmailErr = err
			slog.Error("failed to send reminder email",
				"subscription", sub.ID,
				"error", err)
		} else {
			outcome.EmailSent = true
		}
	}

	return outcome
}

// Schedule persists a reminder record for the subscription, scheduled
// reminderDays before its due date.
func (c *Checker) Schedule(ctx context.Context, sub model.Subscription) (*model.Notification, error) {
	settings, err := c.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	n := &model.Notification{
		ID:             uuid.NewString(),
		SubscriptionID: sub.ID,
		Type:           model.NotificationPush,
		Message:        ReminderMessage(sub, settings.ReminderDays),
		ScheduledFor:   sub.DueDate.Add(-time.Duration(settings.ReminderDays) * 24 * time.Hour),
	}

	if err := c.store.AddNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to schedule notification: %w", err)
	}
	return n, nil
}

// Cancel deletes one scheduled reminder record.
func (c *Checker) Cancel(ctx context.Context, notificationID string) error {
	return c.store.DeleteNotification(ctx, notificationID)
}

// UpdateSettings persists the notification settings. When the reminder
// lookahead changed, every stored reminder is cancelled and rescheduled from
// its subscription. Records referencing a deleted subscription are dropped.
// This is a full recompute rather than a diff; the dataset is small and this
// is not a hot path.
func (c *Checker) UpdateSettings(ctx context.Context, settings model.Settings) error {
	previous, err := c.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := c.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if settings.ReminderDays == previous.ReminderDays {
		return nil
	}

	notifications, err := c.store.GetNotifications(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notifications: %w", err)
	}

	rescheduled := make(map[string]bool)
	for _, n := range notifications {
		if err := c.store.DeleteNotification(ctx, n.ID); err != nil {
			return fmt.Errorf("failed to cancel notification %s: %w", n.ID, err)
		}

		if rescheduled[n.SubscriptionID] {
			continue
		}

		sub, err := c.store.GetSubscriptionByID(ctx, n.SubscriptionID)
		if err != nil {
			slog.Warn("dropping reminder for missing subscription",
				"notification", n.ID,
				"subscription", n.SubscriptionID)
			continue
		}

		if _, err := c.Schedule(ctx, *sub); err != nil {
			return err
		}
		rescheduled[n.SubscriptionID] = true
	}

	slog.Info("rescheduled reminders after settings change",
		"reminder_days", settings.ReminderDays,
		"count", len(rescheduled))
	return nil
}
