package storage

import (
	"context"
	"testing"
	"time"

	"github.com/kushal311201/subtrack/internal/model"
)

func createTestNotification(id, subID string) model.Notification {
	return model.Notification{
		ID:             id,
		SubscriptionID: subID,
		Type:           model.NotificationPush,
		Message:        "Payment of USD 9.99 for Service 1 is due in 3 days.",
		ScheduledFor:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local),
	}
}

func TestSQLiteStorage_Notifications_CRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	n1 := createTestNotification("n1", "sub-001")
	n2 := createTestNotification("n2", "sub-001")
	n3 := createTestNotification("n3", "sub-002")

	for _, n := range []model.Notification{n1, n2, n3} {
		n := n
		if err := store.AddNotification(ctx, &n); err != nil {
			t.Fatalf("AddNotification(%s) error = %v", n.ID, err)
		}
	}

	all, err := store.GetNotifications(ctx)
	if err != nil {
		t.Fatalf("GetNotifications() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("GetNotifications() count = %d, want 3", len(all))
	}

	forSub, err := store.GetNotificationsBySubscription(ctx, "sub-001")
	if err != nil {
		t.Fatalf("GetNotificationsBySubscription() error = %v", err)
	}
	if len(forSub) != 2 {
		t.Errorf("GetNotificationsBySubscription(sub-001) count = %d, want 2", len(forSub))
	}

	if err := store.DeleteNotification(ctx, "n1"); err != nil {
		t.Fatalf("DeleteNotification() error = %v", err)
	}
	// Idempotent delete.
	if err := store.DeleteNotification(ctx, "n1"); err != nil {
		t.Errorf("second DeleteNotification() error = %v, want nil", err)
	}

	if err := store.DeleteNotificationsBySubscription(ctx, "sub-001"); err != nil {
		t.Fatalf("DeleteNotificationsBySubscription() error = %v", err)
	}

	all, err = store.GetNotifications(ctx)
	if err != nil {
		t.Fatalf("GetNotifications() error = %v", err)
	}
	if len(all) != 1 || all[0].ID != "n3" {
		t.Errorf("remaining notifications = %+v, want only n3", all)
	}
}
