package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/kushal311201/subtrack/internal/common"
	"github.com/kushal311201/subtrack/internal/model"
)

func TestSQLiteStorage_Settings_Defaults(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}

	want := model.DefaultSettings()
	if got != want {
		t.Errorf("GetSettings() on fresh database = %+v, want defaults %+v", got, want)
	}
}

func TestSQLiteStorage_Settings_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	want := model.Settings{
		ReminderDays:       7,
		EmailNotifications: true,
		PushNotifications:  false,
		UserEmail:          "user@example.com",
	}

	if err := store.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got != want {
		t.Errorf("GetSettings() = %+v, want %+v", got, want)
	}

	// Saving again overwrites rather than duplicating keys.
	want.ReminderDays = 2
	want.EmailNotifications = false
	if err := store.SaveSettings(ctx, want); err != nil {
		t.Fatalf("second SaveSettings() error = %v", err)
	}

	got, err = store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got != want {
		t.Errorf("GetSettings() after overwrite = %+v, want %+v", got, want)
	}
}

func TestSQLiteStorage_Settings_RejectsInvalidReminderDays(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	err := store.SaveSettings(ctx, model.Settings{ReminderDays: 0})
	if !errors.Is(err, common.ErrInvalidRecord) {
		t.Errorf("SaveSettings(reminderDays=0) error = %v, want ErrInvalidRecord", err)
	}
}
