// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/kushal311201/subtrack/internal/model"
)

// Storage defines the contract for our persistence layer. It exposes the
// subscriptions, settings, and notifications collections backed by the
// embedded database.
type Storage interface {
	// Subscription operations
	AddSubscription(ctx context.Context, sub *model.Subscription) error
	GetSubscriptions(ctx context.Context) ([]model.Subscription, error)
	GetSubscriptionByID(ctx context.Context, id string) (*model.Subscription, error)
	UpdateSubscription(ctx context.Context, sub *model.Subscription) error
	DeleteSubscription(ctx context.Context, id string) error

	// Settings operations
	GetSettings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, settings model.Settings) error

	// Notification operations
	AddNotification(ctx context.Context, n *model.Notification) error
	GetNotifications(ctx context.Context) ([]model.Notification, error)
	GetNotificationsBySubscription(ctx context.Context, subscriptionID string) ([]model.Notification, error)
	DeleteNotification(ctx context.Context, id string) error
	DeleteNotificationsBySubscription(ctx context.Context, subscriptionID string) error

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction. Operations on it see
// uncommitted state; Commit or Rollback must be called exactly once.
type Transaction interface {
	Commit() error
	Rollback() error
	Storage
}

// Notifier delivers a local system notification. Delivery is fire-and-forget;
// callers log and swallow errors.
type Notifier interface {
	Notify(title, message string) error
}

// EmailSender delivers a reminder through the outbound email endpoint.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, message string) error
}

// SyncObserver is notified with the set of records a sync run applied.
type SyncObserver func(applied []model.Subscription)

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
