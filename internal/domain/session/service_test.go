package session

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/analytics"
	"github.com/dailybasket/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			IdleWarning:     25 * time.Minute,
			IdleTimeout:     30 * time.Minute,
			CheckInterval:   time.Minute,
			Retention:       7 * 24 * time.Hour,
			ActivityLogSize: 3,
			FeedSize:        200,
			EventLogSize:    100,
		},
		Security: config.SecurityConfig{SecurityLogSize: 100},
	}
}

type fixture struct {
	svc   *Service
	clock time.Time
}

func newFixture() *fixture {
	cfg := testConfig()
	st := store.NewMemory()
	an := analytics.NewService(st, cfg)
	f := &fixture{
		svc:   NewService(st, an, cfg),
		clock: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.svc.SetClock(func() time.Time { return f.clock })
	an.SetClock(func() time.Time { return f.clock })
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func TestCreateAndCurrent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sess, err := f.svc.Create(ctx, "acct-1", "shopper@example.com", "Shopper", DeviceInfo{Platform: "linux"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^sess_[0-9a-z]+_[0-9a-f]{64}$`), sess.ID)
	assert.True(t, sess.Active)

	current, err := f.svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, current.ID)
	assert.Equal(t, "acct-1", current.AccountID)
}

func TestCurrentWithoutSession(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Current(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestTrackBoundsActivityLog(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "acct-1", "shopper@example.com", "Shopper", DeviceInfo{})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, f.svc.Track(ctx, fmt.Sprintf("action_%d", i), "/products", ""))
	}

	current, err := f.svc.Current(ctx)
	require.NoError(t, err)
	require.Len(t, current.Activities, 3, "log capped at configured size")
	assert.Equal(t, "action_4", current.Activities[2].Action, "newest kept at the tail")
}

func TestEndIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sess, err := f.svc.Create(ctx, "acct-1", "shopper@example.com", "Shopper", DeviceInfo{})
	require.NoError(t, err)

	f.advance(10 * time.Minute)
	require.NoError(t, f.svc.End(ctx, "logout"))
	require.NoError(t, f.svc.End(ctx, "logout"))

	_, err = f.svc.Current(ctx)
	assert.ErrorIs(t, err, ErrNoActiveSession)

	ended, err := f.svc.ByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, ended.Active)
	require.NotNil(t, ended.EndTime)
	assert.Equal(t, int64(600), ended.DurationSeconds(f.clock))
}

func TestIdleWarningAndExpiry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sess, err := f.svc.Create(ctx, "acct-1", "shopper@example.com", "Shopper", DeviceInfo{})
	require.NoError(t, err)

	var expired []string
	f.svc.OnExpire(func(id string) { expired = append(expired, id) })

	state, err := f.svc.CheckIdle(ctx)
	require.NoError(t, err)
	assert.Equal(t, IdleOK, state)

	f.advance(26 * time.Minute)
	state, err = f.svc.CheckIdle(ctx)
	require.NoError(t, err)
	assert.Equal(t, IdleWarned, state)
	assert.Empty(t, expired)

	f.advance(5 * time.Minute)
	state, err = f.svc.CheckIdle(ctx)
	require.NoError(t, err)
	assert.Equal(t, IdleExpired, state)
	assert.Equal(t, []string{sess.ID}, expired)

	// Once expired there is nothing left to check or fire.
	state, err = f.svc.CheckIdle(ctx)
	require.NoError(t, err)
	assert.Equal(t, IdleNone, state)
	assert.Len(t, expired, 1, "expire callback fires exactly once")
}

func TestTrackResetsIdleTimer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "acct-1", "shopper@example.com", "Shopper", DeviceInfo{})
	require.NoError(t, err)

	f.advance(26 * time.Minute)
	state, err := f.svc.CheckIdle(ctx)
	require.NoError(t, err)
	assert.Equal(t, IdleWarned, state)

	require.NoError(t, f.svc.Track(ctx, "page_view", "/cart", ""))
	state, err = f.svc.CheckIdle(ctx)
	require.NoError(t, err)
	assert.Equal(t, IdleOK, state)
}

func TestExportSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sess, err := f.svc.Create(ctx, "acct-1", "shopper@example.com", "Shopper", DeviceInfo{Platform: "linux"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Track(ctx, "page_view", "/products", ""))
	require.NoError(t, f.svc.Track(ctx, "page_view", "/cart", ""))
	require.NoError(t, f.svc.Track(ctx, "add_to_cart", "/cart", "prod_001"))
	require.NoError(t, f.svc.UpdateCounts(ctx, 2, 1))

	f.advance(90 * time.Second)
	export, err := f.svc.ExportSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, export.SessionInfo.ID)
	assert.Equal(t, int64(90), export.SessionInfo.Duration)
	assert.Equal(t, 3, export.Statistics.TotalActivities)
	assert.Equal(t, 2, export.Statistics.UniquePages)
	assert.Equal(t, 2, export.Statistics.CartItems)
	assert.Equal(t, 1, export.Statistics.WishlistItems)
}

func TestStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "acct-1", "a@example.com", "A", DeviceInfo{})
	require.NoError(t, err)
	require.NoError(t, f.svc.Track(ctx, "page_view", "/products", ""))
	require.NoError(t, f.svc.Track(ctx, "page_view", "/products", ""))
	require.NoError(t, f.svc.Track(ctx, "page_view", "/cart", ""))
	f.advance(2 * time.Minute)
	require.NoError(t, f.svc.End(ctx, "logout"))

	_, err = f.svc.Create(ctx, "acct-2", "b@example.com", "B", DeviceInfo{})
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 1, stats.ActiveSessions)
	assert.Equal(t, int64(120), stats.AverageDuration, "open sessions excluded from the average")
	require.NotEmpty(t, stats.MostActivePages)
	assert.Equal(t, PageCount{Page: "/products", Count: 2}, stats.MostActivePages[0])
	require.NotEmpty(t, stats.PeakHours)
	assert.Equal(t, 10, stats.PeakHours[0].Hour)
}

func TestSweepRemovesOnlyOldInactiveSessions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	old, err := f.svc.Create(ctx, "acct-1", "a@example.com", "A", DeviceInfo{})
	require.NoError(t, err)
	require.NoError(t, f.svc.End(ctx, "logout"))

	f.advance(8 * 24 * time.Hour)
	fresh, err := f.svc.Create(ctx, "acct-2", "b@example.com", "B", DeviceInfo{})
	require.NoError(t, err)

	removed, err := f.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = f.svc.ByID(ctx, old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.svc.ByID(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestForAccount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.Create(ctx, "acct-1", "a@example.com", "A", DeviceInfo{})
	require.NoError(t, err)
	require.NoError(t, f.svc.End(ctx, "logout"))

	f.advance(time.Hour)
	second, err := f.svc.Create(ctx, "acct-1", "a@example.com", "A", DeviceInfo{})
	require.NoError(t, err)

	sessions, err := f.svc.ForAccount(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second.ID, sessions[0].ID, "newest first")
	assert.Equal(t, first.ID, sessions[1].ID)
}
