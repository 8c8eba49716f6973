// Package testutil provides shared test fixtures: a migrated throwaway
// database and subscription builders.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kushal311201/subtrack/internal/model"
	"github.com/kushal311201/subtrack/internal/storage"
)

// SetupTestDB creates a migrated SQLite database in a per-test temp
// directory. Cleanup is automatic.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return store
}

// Subscription returns a valid monthly subscription with the given ID and
// amount, due well in the future.
func Subscription(id string, amount float64) *model.Subscription {
	return &model.Subscription{
		ID:           id,
		Name:         "Service " + id,
		Amount:       amount,
		Currency:     "USD",
		BillingCycle: model.CycleMonthly,
		DueDate:      time.Now().AddDate(0, 1, 0),
	}
}

// SubscriptionDueIn returns a valid subscription due the given duration from
// now.
func SubscriptionDueIn(id string, dueIn time.Duration, now time.Time) *model.Subscription {
	return &model.Subscription{
		ID:           id,
		Name:         "Service " + id,
		Amount:       9.99,
		Currency:     "USD",
		BillingCycle: model.CycleMonthly,
		DueDate:      now.Add(dueIn),
	}
}
