package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter() (*Limiter, *time.Time) {
	cfg := &config.Config{
		Security: config.SecurityConfig{
			LoginAttempts:    5,
			LoginWindow:      5 * time.Minute,
			RegisterAttempts: 3,
			RegisterWindow:   10 * time.Minute,
		},
	}
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewLimiter(store.NewMemory(), cfg)
	l.SetClock(func() time.Time { return clock })
	return l, &clock
}

func TestLoginLimit(t *testing.T) {
	l, _ := newTestLimiter()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := l.AllowLogin(ctx, "shopper@example.com")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d within limit", i+1)
	}

	ok, err := l.AllowLogin(ctx, "shopper@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "sixth attempt blocked")
}

func TestLoginWindowSlides(t *testing.T) {
	l, clock := newTestLimiter()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := l.AllowLogin(ctx, "shopper@example.com")
		require.NoError(t, err)
	}

	*clock = clock.Add(6 * time.Minute)
	ok, err := l.AllowLogin(ctx, "shopper@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "old attempts age out of the window")
}

func TestRegistrationLimit(t *testing.T) {
	l, _ := newTestLimiter()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.AllowRegistration(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := l.AllowRegistration(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubjectsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := l.AllowLogin(ctx, "a@example.com")
		require.NoError(t, err)
	}

	ok, err := l.AllowLogin(ctx, "b@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReset(t *testing.T) {
	l, _ := newTestLimiter()
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := l.AllowLogin(ctx, "shopper@example.com")
		require.NoError(t, err)
	}
	require.NoError(t, l.Reset(ctx, "shopper@example.com"))

	ok, err := l.AllowLogin(ctx, "shopper@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}
