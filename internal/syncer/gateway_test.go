package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushal311201/subtrack/internal/common"
	"github.com/kushal311201/subtrack/internal/model"
	"github.com/kushal311201/subtrack/internal/testutil"
)

func TestGateway_Sync_AppliesUpdates(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	require.NoError(t, store.AddSubscription(ctx, testutil.Subscription("a", 10)))
	require.NoError(t, store.AddSubscription(ctx, testutil.Subscription("b", 20)))

	var received syncRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		update := toWire(*testutil.Subscription("a", 5))
		require.NoError(t, json.NewEncoder(w).Encode(syncResponse{
			Updates: []wireSubscription{update},
		}))
	}))
	defer server.Close()

	var observed []model.Subscription
	gateway, err := NewGateway(server.URL, store,
		WithObserver(func(subs []model.Subscription) { observed = subs }))
	require.NoError(t, err)

	result, err := gateway.Sync(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Pushed)
	assert.Equal(t, 1, result.UpdatesReceived)
	assert.Equal(t, 1, result.UpdatesApplied)
	assert.Len(t, received.Subscriptions, 2)
	for _, pushed := range received.Subscriptions {
		_, parseErr := time.Parse(wireDateLayout, pushed.DueDate)
		assert.NoError(t, parseErr, "due dates travel as calendar dates")
	}

	updated, err := store.GetSubscriptionByID(ctx, "a")
	require.NoError(t, err)
	assert.InDelta(t, 5, updated.Amount, 1e-9)

	require.Len(t, observed, 2)
}

func TestGateway_Sync_EmptyStore(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	var received syncRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		require.NoError(t, json.NewEncoder(w).Encode(syncResponse{}))
	}))
	defer server.Close()

	gateway, err := NewGateway(server.URL, store)
	require.NoError(t, err)

	result, err := gateway.Sync(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Pushed)
	assert.Equal(t, 0, result.UpdatesApplied)
	assert.NotNil(t, received.Subscriptions, "an empty set still posts an array")
}

func TestGateway_Sync_UnknownUpdateStopsPartway(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	require.NoError(t, store.AddSubscription(ctx, testutil.Subscription("a", 10)))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(syncResponse{
			Updates: []wireSubscription{
				toWire(*testutil.Subscription("a", 5)),
				toWire(*testutil.Subscription("ghost", 99)),
			},
		}))
	}))
	defer server.Close()

	gateway, err := NewGateway(server.URL, store)
	require.NoError(t, err)

	result, err := gateway.Sync(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	// First update landed before the failure.
	assert.Equal(t, 1, result.UpdatesApplied)
	updated, err := store.GetSubscriptionByID(ctx, "a")
	require.NoError(t, err)
	assert.InDelta(t, 5, updated.Amount, 1e-9)
}

func TestGateway_Sync_Non2xx(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gateway, err := NewGateway(server.URL, store)
	require.NoError(t, err)

	_, err = gateway.Sync(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNetworkFailure))
	assert.True(t, common.IsRetryable(err))
}

func TestGateway_Sync_NetworkError(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // closed before use

	gateway, err := NewGateway(server.URL, store)
	require.NoError(t, err)

	_, err = gateway.Sync(ctx)
	assert.True(t, errors.Is(err, common.ErrNetworkFailure))
}

func TestGateway_Sync_MalformedResponse(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	gateway, err := NewGateway(server.URL, store)
	require.NoError(t, err)

	_, err = gateway.Sync(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrSyncRejected))
	assert.False(t, common.IsRetryable(err))
}

func TestGateway_Sync_Progress(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	require.NoError(t, store.AddSubscription(ctx, testutil.Subscription("a", 10)))
	require.NoError(t, store.AddSubscription(ctx, testutil.Subscription("b", 20)))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(syncResponse{
			Updates: []wireSubscription{
				toWire(*testutil.Subscription("a", 1)),
				toWire(*testutil.Subscription("b", 2)),
			},
		}))
	}))
	defer server.Close()

	var steps [][2]int
	gateway, err := NewGateway(server.URL, store,
		WithProgress(func(applied, total int) { steps = append(steps, [2]int{applied, total}) }))
	require.NoError(t, err)

	_, err = gateway.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, steps)
}

func TestGateway_Sync_AppliesCalendarDateUpdate(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	require.NoError(t, store.AddSubscription(ctx, testutil.Subscription("a", 10)))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"updates":[{` +
			`"id":"a","name":"Service a","amount":5,"currency":"USD",` +
			`"billingCycle":"monthly","dueDate":"2024-03-05","category":"Streaming"}]}`))
	}))
	defer server.Close()

	gateway, err := NewGateway(server.URL, store)
	require.NoError(t, err)

	result, err := gateway.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatesApplied)

	updated, err := store.GetSubscriptionByID(ctx, "a")
	require.NoError(t, err)
	assert.InDelta(t, 5, updated.Amount, 1e-9)
	assert.Equal(t, "Streaming", updated.Category)
	assert.True(t, updated.DueDate.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
		"due date %v should be 2024-03-05", updated.DueDate)
}

func TestGateway_Sync_RejectsUnparseableDueDate(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	require.NoError(t, store.AddSubscription(ctx, testutil.Subscription("a", 10)))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"updates":[{"id":"a","name":"Service a","amount":5,` +
			`"currency":"USD","billingCycle":"monthly","dueDate":"next tuesday"}]}`))
	}))
	defer server.Close()

	gateway, err := NewGateway(server.URL, store)
	require.NoError(t, err)

	result, err := gateway.Sync(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrSyncRejected))
	assert.False(t, common.IsRetryable(err))
	assert.Equal(t, 0, result.UpdatesApplied)

	// The local record is untouched.
	unchanged, err := store.GetSubscriptionByID(ctx, "a")
	require.NoError(t, err)
	assert.InDelta(t, 10, unchanged.Amount, 1e-9)
}

func TestNewGateway_RequiresEndpoint(t *testing.T) {
	_, err := NewGateway("", testutil.SetupTestDB(t))
	assert.True(t, errors.Is(err, common.ErrMissingConfig))
}
