package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/kushal311201/subtrack/internal/common"
	"github.com/kushal311201/subtrack/internal/config"
	"github.com/kushal311201/subtrack/internal/model"
	"github.com/kushal311201/subtrack/internal/service"
	"github.com/kushal311201/subtrack/internal/storage"
)

// resolveSubscription finds one subscription by full ID, unique ID prefix, or
// exact name. Ambiguous prefixes are an error rather than a guess.
func resolveSubscription(ctx context.Context, store service.Storage, key string) (*model.Subscription, error) {
	if sub, err := store.GetSubscriptionByID(ctx, key); err == nil {
		return sub, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	subs, err := store.GetSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	var matches []model.Subscription
	for _, sub := range subs {
		if strings.HasPrefix(sub.ID, key) || strings.EqualFold(sub.Name, key) {
			matches = append(matches, sub)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: subscription %q", common.ErrNotFound, key)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d subscriptions, use the full ID", key, len(matches))
	}
}

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		// Expand tilde and environment variables
		dbPath = config.ExpandPath(dbPath)
	}

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
