package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kushal311201/subtrack/internal/model"
)

// GetSettings reads the settings collection into its typed form. Missing keys
// fall back to the defaults, so a fresh database yields DefaultSettings.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return model.Settings{}, err
	}
	return s.getSettingsQuerier(ctx, s.db)
}

func (s *SQLiteStorage) getSettingsTx(ctx context.Context, tx *sql.Tx) (model.Settings, error) {
	return s.getSettingsQuerier(ctx, tx)
}

func (s *SQLiteStorage) getSettingsQuerier(ctx context.Context, q querier) (model.Settings, error) {
	settings := model.DefaultSettings()

	rows, err := q.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return settings, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("failed to scan setting: %w", err)
		}

		switch key {
		case model.SettingReminderDays:
			days, err := strconv.Atoi(value)
			if err != nil || days < 1 {
				slog.Warn("ignoring malformed reminderDays setting", "value", value)
				continue
			}
			settings.ReminderDays = days
		case model.SettingEmailNotifications:
			settings.EmailNotifications = value == "true"
		case model.SettingPushNotifications:
			settings.PushNotifications = value == "true"
		case model.SettingUserEmail:
			settings.UserEmail = value
		}
	}

	if err := rows.Err(); err != nil {
		return settings, fmt.Errorf("error iterating settings: %w", err)
	}

	return settings, nil
}

// SaveSettings writes every settings key in a single transaction.
func (s *SQLiteStorage) SaveSettings(ctx context.Context, settings model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveSettingsTx(ctx, tx, settings); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveSettingsTx(ctx context.Context, tx *sql.Tx, settings model.Settings) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare settings statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	values := map[string]string{
		model.SettingReminderDays:       strconv.Itoa(settings.ReminderDays),
		model.SettingEmailNotifications: strconv.FormatBool(settings.EmailNotifications),
		model.SettingPushNotifications:  strconv.FormatBool(settings.PushNotifications),
		model.SettingUserEmail:          settings.UserEmail,
	}

	for key, value := range values {
		if _, err := stmt.ExecContext(ctx, key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	slog.Debug("saved settings", "reminder_days", settings.ReminderDays)
	return nil
}
