// internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/store"
)

// Limiter enforces sliding-window attempt limits for authentication
// endpoints. Attempt timestamps are persisted per subject so the window
// survives restarts.
type Limiter struct {
	store store.Store
	cfg   *config.Config
	mu    sync.Mutex
	now   func() time.Time
}

// NewLimiter creates a new limiter
func NewLimiter(st store.Store, cfg *config.Config) *Limiter {
	return &Limiter{
		store: st,
		cfg:   cfg,
		now:   time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}

// AllowLogin records a login attempt for the subject and reports whether
// it is within the limit.
func (l *Limiter) AllowLogin(ctx context.Context, subject string) (bool, error) {
	return l.allow(ctx, "ratelimit:login:"+subject, l.cfg.Security.LoginAttempts, l.cfg.Security.LoginWindow)
}

// AllowRegistration records a registration attempt for the subject and
// reports whether it is within the limit.
func (l *Limiter) AllowRegistration(ctx context.Context, subject string) (bool, error) {
	return l.allow(ctx, "ratelimit:register:"+subject, l.cfg.Security.RegisterAttempts, l.cfg.Security.RegisterWindow)
}

// Reset clears the login window for a subject, used after a successful
// authentication.
func (l *Limiter) Reset(ctx context.Context, subject string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Delete(ctx, "ratelimit:login:"+subject); err != nil && err != store.ErrNotFound {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

func (l *Limiter) allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var attempts []time.Time
	if _, err := store.LoadJSON(ctx, l.store, key, &attempts); err != nil {
		return false, fmt.Errorf("failed to load rate limit window: %w", err)
	}

	now := l.now().UTC()
	cutoff := now.Add(-window)
	recent := attempts[:0]
	for _, at := range attempts {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= limit {
		if err := store.SetJSON(ctx, l.store, key, recent); err != nil {
			return false, fmt.Errorf("failed to save rate limit window: %w", err)
		}
		return false, nil
	}

	recent = append(recent, now)
	if err := store.SetJSON(ctx, l.store, key, recent); err != nil {
		return false, fmt.Errorf("failed to save rate limit window: %w", err)
	}
	return true, nil
}
