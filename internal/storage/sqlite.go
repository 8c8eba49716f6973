// Package storage provides the data persistence layer for the subtrack application.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kushal311201/subtrack/internal/common"
	"github.com/kushal311201/subtrack/internal/model"
	"github.com/kushal311201/subtrack/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %v", common.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", common.ErrStorageUnavailable, err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: failed to ping database: %v", common.ErrStorageUnavailable, err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new database transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTransaction{
		tx:      tx,
		storage: s,
	}, nil
}

// sqliteTransaction wraps sql.Tx to implement service.Transaction.
type sqliteTransaction struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTransaction) Rollback() error {
	return t.tx.Rollback()
}

// Transaction methods delegate to the main storage with the transaction.
func (t *sqliteTransaction) AddSubscription(ctx context.Context, sub *model.Subscription) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubscription(sub); err != nil {
		return err
	}
	return t.storage.addSubscriptionTx(ctx, t.tx, sub)
}

func (t *sqliteTransaction) GetSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.getSubscriptionsTx(ctx, t.tx)
}

func (t *sqliteTransaction) GetSubscriptionByID(ctx context.Context, id string) (*model.Subscription, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return t.storage.getSubscriptionByIDTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) UpdateSubscription(ctx context.Context, sub *model.Subscription) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubscription(sub); err != nil {
		return err
	}
	return t.storage.updateSubscriptionTx(ctx, t.tx, sub)
}

func (t *sqliteTransaction) DeleteSubscription(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return t.storage.deleteSubscriptionTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) GetSettings(ctx context.Context) (model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return model.Settings{}, err
	}
	return t.storage.getSettingsTx(ctx, t.tx)
}

func (t *sqliteTransaction) SaveSettings(ctx context.Context, settings model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}
	return t.storage.saveSettingsTx(ctx, t.tx, settings)
}

func (t *sqliteTransaction) AddNotification(ctx context.Context, n *model.Notification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNotification(n); err != nil {
		return err
	}
	return t.storage.addNotificationTx(ctx, t.tx, n)
}

func (t *sqliteTransaction) GetNotifications(ctx context.Context) ([]model.Notification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.getNotificationsTx(ctx, t.tx, "")
}

func (t *sqliteTransaction) GetNotificationsBySubscription(ctx context.Context, subscriptionID string) ([]model.Notification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(subscriptionID, "subscriptionID"); err != nil {
		return nil, err
	}
	return t.storage.getNotificationsTx(ctx, t.tx, subscriptionID)
}

func (t *sqliteTransaction) DeleteNotification(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return t.storage.deleteNotificationTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) DeleteNotificationsBySubscription(ctx context.Context, subscriptionID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(subscriptionID, "subscriptionID"); err != nil {
		return err
	}
	return t.storage.deleteNotificationsBySubscriptionTx(ctx, t.tx, subscriptionID)
}

func (t *sqliteTransaction) Migrate(_ context.Context) error {
	// Migrations should not be run within a transaction
	return fmt.Errorf("migrations cannot be run within a transaction")
}

func (t *sqliteTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	// Nested transactions not supported
	return nil, fmt.Errorf("nested transactions not supported")
}

func (t *sqliteTransaction) Close() error {
	// Transactions should be committed or rolled back, not closed
	return fmt.Errorf("transactions must be committed or rolled back, not closed")
}
