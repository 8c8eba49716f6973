// Package syncer exchanges the local subscription set with a remote sync
// endpoint and applies the updates it returns.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kushal311201/subtrack/internal/common"
	"github.com/kushal311201/subtrack/internal/model"
	"github.com/kushal311201/subtrack/internal/service"
)

// SyncResult summarizes one completed exchange.
type SyncResult struct {
	Pushed          int
	UpdatesReceived int
	UpdatesApplied  int
}

// Gateway performs the push-then-apply exchange with the remote endpoint.
// Updates are applied one at a time in response order; a failure mid-way
// leaves earlier updates in place.
type Gateway struct {
	store      service.Storage
	httpClient *http.Client
	onProgress func(applied, total int)
	endpoint   string
	observers  []service.SyncObserver
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithObserver registers a callback that receives the full post-sync
// subscription set after every successful exchange.
func WithObserver(fn service.SyncObserver) GatewayOption {
	return func(g *Gateway) { g.observers = append(g.observers, fn) }
}

// WithProgress registers a callback invoked after each applied update.
func WithProgress(fn func(applied, total int)) GatewayOption {
	return func(g *Gateway) { g.onProgress = fn }
}

// NewGateway creates a sync gateway for the given endpoint URL.
func NewGateway(endpoint string, store service.Storage, opts ...GatewayOption) (*Gateway, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: sync endpoint", common.ErrMissingConfig)
	}

	g := &Gateway{
		endpoint: endpoint,
		store:    store,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Sync pushes every local subscription to the remote and applies the updates
// it returns. The result reflects what actually happened even when an error
// cuts the exchange short.
func (g *Gateway) Sync(ctx context.Context) (*SyncResult, error) {
	subs, err := g.store.GetSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	result := &SyncResult{Pushed: len(subs)}

	updates, err := g.exchange(ctx, subs)
	if err != nil {
		return result, err
	}
	result.UpdatesReceived = len(updates)

	for i, update := range updates {
		if err := g.store.UpdateSubscription(ctx, &update); err != nil {
			return result, fmt.Errorf("failed to apply update for %s: %w", update.ID, err)
		}
		result.UpdatesApplied++
		if g.onProgress != nil {
			g.onProgress(i+1, len(updates))
		}
	}

	g.broadcast(ctx)

	slog.Info("sync complete",
		"pushed", result.Pushed,
		"updates_applied", result.UpdatesApplied)
	return result, nil
}

// exchange performs the HTTP round trip. Network errors and non-2xx statuses
// map to common.ErrNetworkFailure so callers can decide to retry.
func (g *Gateway) exchange(ctx context.Context, subs []model.Subscription) ([]model.Subscription, error) {
	outbound := make([]wireSubscription, 0, len(subs))
	for _, sub := range subs {
		outbound = append(outbound, toWire(sub))
	}

	body, err := json.Marshal(syncRequest{Subscriptions: outbound})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sync request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: sync endpoint returned %d: %s", common.ErrNetworkFailure, resp.StatusCode, respBody)
	}

	var decoded syncResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode sync response: %v", common.ErrSyncRejected, err)
	}

	updates := make([]model.Subscription, 0, len(decoded.Updates))
	for _, update := range decoded.Updates {
		sub, err := fromWire(update)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrSyncRejected, err)
		}
		updates = append(updates, sub)
	}
	return updates, nil
}

// broadcast hands the post-sync subscription set to every observer. Observer
// failures are the observers' problem; a nil set is delivered if the reload
// fails.
func (g *Gateway) broadcast(ctx context.Context) {
	if len(g.observers) == 0 {
		return
	}

	subs, err := g.store.GetSubscriptions(ctx)
	if err != nil {
		slog.Error("failed to reload subscriptions for sync observers", "error", err)
	}
	for _, observer := range g.observers {
		observer(subs)
	}
}
