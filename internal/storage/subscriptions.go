package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kushal311201/subtrack/internal/common"
	"github.com/kushal311201/subtrack/internal/model"

	"github.com/mattn/go-sqlite3"
)

// AddSubscription inserts a new subscription record. Inserting an ID that
// already exists fails with common.ErrDuplicateEntry.
func (s *SQLiteStorage) AddSubscription(ctx context.Context, sub *model.Subscription) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubscription(sub); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.addSubscriptionTx(ctx, tx, sub); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) addSubscriptionTx(ctx context.Context, tx *sql.Tx, sub *model.Subscription) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO subscriptions (id, name, amount, currency, billing_cycle, due_date, category, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := tx.ExecContext(ctx, query,
		sub.ID, sub.Name, sub.Amount, sub.Currency, string(sub.BillingCycle),
		sub.DueDate, sub.Category, sub.Notes, sub.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: subscription %s", common.ErrDuplicateEntry, sub.ID)
		}
		return fmt.Errorf("failed to insert subscription: %w", err)
	}

	slog.Debug("added subscription", "id", sub.ID, "name", sub.Name)
	return nil
}

// GetSubscriptions returns the full committed snapshot of the subscriptions
// collection in insertion order.
func (s *SQLiteStorage) GetSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getSubscriptionsQuerier(ctx, s.db)
}

func (s *SQLiteStorage) getSubscriptionsTx(ctx context.Context, tx *sql.Tx) ([]model.Subscription, error) {
	return s.getSubscriptionsQuerier(ctx, tx)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStorage) getSubscriptionsQuerier(ctx context.Context, q querier) ([]model.Subscription, error) {
	query := `
		SELECT id, name, amount, currency, billing_cycle, due_date, category, notes, created_at
		FROM subscriptions
		ORDER BY created_at, id`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	slog.Debug("retrieved subscriptions", "count", len(subs))
	return subs, nil
}

// GetSubscriptionByID returns one subscription, or common.ErrNotFound when no
// record carries the id.
func (s *SQLiteStorage) GetSubscriptionByID(ctx context.Context, id string) (*model.Subscription, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getSubscriptionByIDQuerier(ctx, s.db, id)
}

func (s *SQLiteStorage) getSubscriptionByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Subscription, error) {
	return s.getSubscriptionByIDQuerier(ctx, tx, id)
}

func (s *SQLiteStorage) getSubscriptionByIDQuerier(ctx context.Context, q querier, id string) (*model.Subscription, error) {
	query := `
		SELECT id, name, amount, currency, billing_cycle, due_date, category, notes, created_at
		FROM subscriptions
		WHERE id = ?`

	row := q.QueryRowContext(ctx, query, id)
	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: subscription %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// UpdateSubscription replaces the record matching the subscription's ID.
// Updating an absent ID fails with common.ErrNotFound; the store never
// upserts. The id and created_at columns are preserved.
func (s *SQLiteStorage) UpdateSubscription(ctx context.Context, sub *model.Subscription) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubscription(sub); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.updateSubscriptionTx(ctx, tx, sub); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) updateSubscriptionTx(ctx context.Context, tx *sql.Tx, sub *model.Subscription) error {
	query := `
		UPDATE subscriptions
		SET name = ?, amount = ?, currency = ?, billing_cycle = ?, due_date = ?, category = ?, notes = ?
		WHERE id = ?`

	result, err := tx.ExecContext(ctx, query,
		sub.Name, sub.Amount, sub.Currency, string(sub.BillingCycle),
		sub.DueDate, sub.Category, sub.Notes, sub.ID)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: subscription %s", common.ErrNotFound, sub.ID)
	}

	slog.Debug("updated subscription", "id", sub.ID)
	return nil
}

// DeleteSubscription removes the record with the given id. Deleting an id
// that does not exist is a no-op success.
func (s *SQLiteStorage) DeleteSubscription(ctx context.Context, id string) error {
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

	if err := s.deleteSubscriptionTx(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) deleteSubscriptionTx(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	affected, _ := result.RowsAffected()
	slog.Debug("deleted subscription", "id", id, "existed", affected > 0)
	return nil
}

// scanner abstracts sql.Row and sql.Rows for record scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(sc scanner) (*model.Subscription, error) {
	var sub model.Subscription
	var cycle string
	var notes sql.NullString

	err := sc.Scan(&sub.ID, &sub.Name, &sub.Amount, &sub.Currency, &cycle,
		&sub.DueDate, &sub.Category, &notes, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan subscription: %w", err)
	}

	sub.BillingCycle = model.BillingCycle(cycle)
	sub.Notes = notes.String
	return &sub, nil
}
