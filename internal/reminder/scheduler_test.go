package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushal311201/subtrack/internal/testutil"
)

func TestScheduler_RunsImmediateCheck(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	store := testutil.SetupTestDB(t)
	require.NoError(t, store.AddSubscription(ctx, testutil.SubscriptionDueIn("a", 24*time.Hour, now)))

	notifier := &fakeNotifier{}
	checker := NewChecker(store,
		WithNotifier(notifier),
		WithClock(func() time.Time { return now }))

	results := make(chan *CheckResult, 1)
	scheduler := NewScheduler(checker,
		WithCheckSpec("@every 1h"),
		WithResultObserver(func(result *CheckResult) { results <- result }))

	require.NoError(t, scheduler.Start(ctx))
	defer scheduler.Stop()

	select {
	case result := <-results:
		require.NotNil(t, result)
		assert.Equal(t, 1, result.Fired)
	case <-time.After(2 * time.Second):
		t.Fatal("no check result before timeout")
	}
}

func TestScheduler_ReportsFailedCheck(t *testing.T) {
	store := testutil.SetupTestDB(t)
	checker := NewChecker(store)

	// A closed store makes the first check fail; the observer still hears
	// about it with a nil result.
	require.NoError(t, store.Close())

	results := make(chan *CheckResult, 1)
	scheduler := NewScheduler(checker,
		WithResultObserver(func(result *CheckResult) { results <- result }))

	require.NoError(t, scheduler.Start(context.Background()))
	defer scheduler.Stop()

	select {
	case result := <-results:
		assert.Nil(t, result)
	case <-time.After(2 * time.Second):
		t.Fatal("no check result before timeout")
	}
}
