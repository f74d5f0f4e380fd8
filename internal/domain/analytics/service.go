// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/store"
)

const (
	activityFeedKey  = "activity:feed"
	sessionEventsKey = "session:events"
	securityLogKey   = "security:log"
)

// Activity is one entry in the global storefront activity feed.
type Activity struct {
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Page      string    `json:"page,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	AccountID string    `json:"account_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionEvent records a session lifecycle transition.
type SessionEvent struct {
	Event     string    `json:"event"`
	SessionID string    `json:"session_id"`
	AccountID string    `json:"account_id,omitempty"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SecurityEvent records an authentication or rate-limit incident.
type SecurityEvent struct {
	Event     string    `json:"event"`
	Email     string    `json:"email,omitempty"`
	IP        string    `json:"ip,omitempty"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Service handles analytics business logic. Each feed is a bounded list
// persisted as one store slot, newest entry first.
type Service struct {
	store store.Store
	cfg   *config.Config
	mu    sync.Mutex
	now   func() time.Time
}

// NewService creates a new analytics service
func NewService(st store.Store, cfg *config.Config) *Service {
	return &Service{
		store: st,
		cfg:   cfg,
		now:   time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func prependAndTrim[T any](entries []T, entry T, limit int) []T {
	entries = append([]T{entry}, entries...)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// RecordActivity appends to the global activity feed.
func (s *Service) RecordActivity(ctx context.Context, activity Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity.Timestamp = s.now().UTC()

	var feed []Activity
	if _, err := store.LoadJSON(ctx, s.store, activityFeedKey, &feed); err != nil {
		return fmt.Errorf("failed to load activity feed: %w", err)
	}
	feed = prependAndTrim(feed, activity, s.cfg.Session.FeedSize)
	if err := store.SetJSON(ctx, s.store, activityFeedKey, feed); err != nil {
		return fmt.Errorf("failed to save activity feed: %w", err)
	}
	return nil
}

// ActivityFeed returns the activity feed, newest first.
func (s *Service) ActivityFeed(ctx context.Context) ([]Activity, error) {
	var feed []Activity
	if _, err := store.LoadJSON(ctx, s.store, activityFeedKey, &feed); err != nil {
		return nil, fmt.Errorf("failed to load activity feed: %w", err)
	}
	if feed == nil {
		feed = []Activity{}
	}
	return feed, nil
}

// RecordSessionEvent appends to the session event log.
func (s *Service) RecordSessionEvent(ctx context.Context, event SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.Timestamp = s.now().UTC()

	var events []SessionEvent
	if _, err := store.LoadJSON(ctx, s.store, sessionEventsKey, &events); err != nil {
		return fmt.Errorf("failed to load session events: %w", err)
	}
	events = prependAndTrim(events, event, s.cfg.Session.EventLogSize)
	if err := store.SetJSON(ctx, s.store, sessionEventsKey, events); err != nil {
		return fmt.Errorf("failed to save session events: %w", err)
	}
	return nil
}

// SessionEvents returns the session event log, newest first.
func (s *Service) SessionEvents(ctx context.Context) ([]SessionEvent, error) {
	var events []SessionEvent
	if _, err := store.LoadJSON(ctx, s.store, sessionEventsKey, &events); err != nil {
		return nil, fmt.Errorf("failed to load session events: %w", err)
	}
	if events == nil {
		events = []SessionEvent{}
	}
	return events, nil
}

// RecordSecurityEvent appends to the security log.
func (s *Service) RecordSecurityEvent(ctx context.Context, event SecurityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.Timestamp = s.now().UTC()

	var events []SecurityEvent
	if _, err := store.LoadJSON(ctx, s.store, securityLogKey, &events); err != nil {
		return fmt.Errorf("failed to load security log: %w", err)
	}
	events = prependAndTrim(events, event, s.cfg.Security.SecurityLogSize)
	if err := store.SetJSON(ctx, s.store, securityLogKey, events); err != nil {
		return fmt.Errorf("failed to save security log: %w", err)
	}
	return nil
}

// SecurityLog returns the security log, newest first.
func (s *Service) SecurityLog(ctx context.Context) ([]SecurityEvent, error) {
	var events []SecurityEvent
	if _, err := store.LoadJSON(ctx, s.store, securityLogKey, &events); err != nil {
		return nil, fmt.Errorf("failed to load security log: %w", err)
	}
	if events == nil {
		events = []SecurityEvent{}
	}
	return events, nil
}
