package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	cfg := &config.Config{
		Session:  config.SessionConfig{FeedSize: 5, EventLogSize: 3},
		Security: config.SecurityConfig{SecurityLogSize: 3},
	}
	return NewService(store.NewMemory(), cfg)
}

func TestActivityFeedNewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.RecordActivity(ctx, Activity{Action: "page_view", Page: "/products"}))
	require.NoError(t, svc.RecordActivity(ctx, Activity{Action: "add_to_cart", Details: "prod_001"}))

	feed, err := svc.ActivityFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "add_to_cart", feed[0].Action)
	assert.Equal(t, "page_view", feed[1].Action)
	assert.False(t, feed[0].Timestamp.IsZero())
}

func TestActivityFeedCapped(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		require.NoError(t, svc.RecordActivity(ctx, Activity{Action: fmt.Sprintf("action_%d", i)}))
	}

	feed, err := svc.ActivityFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 5)
	assert.Equal(t, "action_7", feed[0].Action, "newest kept")
	assert.Equal(t, "action_3", feed[4].Action, "oldest beyond the cap dropped")
}

func TestSessionEventsCapped(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.RecordSessionEvent(ctx, SessionEvent{
			Event:     "session_started",
			SessionID: fmt.Sprintf("sess_%d", i),
		}))
	}

	events, err := svc.SessionEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "sess_4", events[0].SessionID)
}

func TestSecurityLog(t *testing.T) {
	svc := newTestService()
	svc.SetClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) })
	ctx := context.Background()

	require.NoError(t, svc.RecordSecurityEvent(ctx, SecurityEvent{
		Event: "login_failed",
		Email: "shopper@example.com",
	}))

	events, err := svc.SecurityLog(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "login_failed", events[0].Event)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), events[0].Timestamp)
}

func TestEmptyFeedsReturnEmptySlices(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	feed, err := svc.ActivityFeed(ctx)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)

	events, err := svc.SessionEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}
