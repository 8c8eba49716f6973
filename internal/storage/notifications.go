package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kushal311201/subtrack/internal/common"
	"github.com/kushal311201/subtrack/internal/model"

	"github.com/mattn/go-sqlite3"
)

// AddNotification stores a scheduled reminder record.
func (s *SQLiteStorage) AddNotification(ctx context.Context, n *model.Notification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNotification(n); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.addNotificationTx(ctx, tx, n); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) addNotificationTx(ctx context.Context, tx *sql.Tx, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, subscription_id, type, message, scheduled_for)
		VALUES (?, ?, ?, ?, ?)`

	_, err := tx.ExecContext(ctx, query,
		n.ID, n.SubscriptionID, string(n.Type), n.Message, n.ScheduledFor)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: notification %s", common.ErrDuplicateEntry, n.ID)
		}
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// GetNotifications returns every stored reminder record.
func (s *SQLiteStorage) GetNotifications(ctx context.Context) ([]model.Notification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getNotificationsQuerier(ctx, s.db, "")
}

// GetNotificationsBySubscription returns the reminder records referencing one
// subscription.
func (s *SQLiteStorage) GetNotificationsBySubscription(ctx context.Context, subscriptionID string) ([]model.Notification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(subscriptionID, "subscriptionID"); err != nil {
		return nil, err
	}
	return s.getNotificationsQuerier(ctx, s.db, subscriptionID)
}

func (s *SQLiteStorage) getNotificationsTx(ctx context.Context, tx *sql.Tx, subscriptionID string) ([]model.Notification, error) {
	return s.getNotificationsQuerier(ctx, tx, subscriptionID)
}

func (s *SQLiteStorage) getNotificationsQuerier(ctx context.Context, q querier, subscriptionID string) ([]model.Notification, error) {
	query := `
		SELECT id, subscription_id, type, message, scheduled_for
		FROM notifications`
	args := []any{}
	if subscriptionID != "" {
		query += ` WHERE subscription_id = ?`
		args = append(args, subscriptionID)
	}
	query += ` ORDER BY scheduled_for, id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		var notifType string
		if err := rows.Scan(&n.ID, &n.SubscriptionID, &notifType, &n.Message, &n.ScheduledFor); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = model.NotificationType(notifType)
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// DeleteNotification removes one reminder record. Deleting an unknown id is a
// no-op success.
func (s *SQLiteStorage) DeleteNotification(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.deleteNotificationTx(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) deleteNotificationTx(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// DeleteNotificationsBySubscription removes every reminder record referencing
// one subscription.
func (s *SQLiteStorage) DeleteNotificationsBySubscription(ctx context.Context, subscriptionID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(subscriptionID, "subscriptionID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.deleteNotificationsBySubscriptionTx(ctx, tx, subscriptionID); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) deleteNotificationsBySubscriptionTx(ctx context.Context, tx *sql.Tx, subscriptionID string) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM notifications WHERE subscription_id = ?`, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	affected, _ := result.RowsAffected()
	slog.Debug("deleted notifications for subscription", "subscription_id", subscriptionID, "count", affected)
	return nil
}
