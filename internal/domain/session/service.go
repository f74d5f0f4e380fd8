// internal/domain/session/service.go
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/analytics"
	"github.com/dailybasket/storefront/internal/store"
)

const (
	sessionsKey       = "sessions"
	currentSessionKey = "session:current"
)

// ErrNoActiveSession is returned when an operation needs an open session.
var ErrNoActiveSession = fmt.Errorf("no active session")

// ErrSessionNotFound is returned when a session id does not exist.
var ErrSessionNotFound = fmt.Errorf("session not found")

// Service handles session lifecycle business logic
type Service struct {
	store     store.Store
	analytics *analytics.Service
	cfg       *config.Config
	mu        sync.Mutex
	now       func() time.Time
	onExpire  func(sessionID string)
}

// NewService creates a new session service
func NewService(st store.Store, an *analytics.Service, cfg *config.Config) *Service {
	return &Service{
		store:     st,
		analytics: an,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// OnExpire registers the callback fired when an idle session is ended.
// It fires at most once per session.
func (s *Service) OnExpire(fn func(sessionID string)) {
	s.onExpire = fn
}

func newSessionID(now time.Time) string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return fmt.Sprintf("sess_%s_%s", strconv.FormatInt(now.UnixMilli(), 36), hex.EncodeToString(buf))
}

func (s *Service) loadSessions(ctx context.Context) (map[string]Session, error) {
	sessions := make(map[string]Session)
	if _, err := store.LoadJSON(ctx, s.store, sessionsKey, &sessions); err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	if sessions == nil {
		sessions = make(map[string]Session)
	}
	return sessions, nil
}

func (s *Service) saveSessions(ctx context.Context, sessions map[string]Session) error {
	if err := store.SetJSON(ctx, s.store, sessionsKey, sessions); err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}
	return nil
}

func (s *Service) currentID(ctx context.Context) (string, error) {
	var id string
	found, err := store.LoadJSON(ctx, s.store, currentSessionKey, &id)
	if err != nil {
		return "", fmt.Errorf("failed to load current session pointer: %w", err)
	}
	if !found {
		return "", nil
	}
	return id, nil
}

// Create opens a new session for an account and makes it current.
func (s *Service) Create(ctx context.Context, accountID, email, name string, device DeviceInfo) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	sess := Session{
		ID:           newSessionID(now),
		AccountID:    accountID,
		Email:        email,
		Name:         name,
		StartTime:    now,
		LastActivity: now,
		Active:       true,
		Device:       device,
		Activities:   []Activity{},
	}

	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return nil, err
	}
	sessions[sess.ID] = sess
	if err := s.saveSessions(ctx, sessions); err != nil {
		return nil, err
	}
	if err := store.SetJSON(ctx, s.store, currentSessionKey, sess.ID); err != nil {
		return nil, fmt.Errorf("failed to set current session: %w", err)
	}

	if err := s.analytics.RecordSessionEvent(ctx, analytics.SessionEvent{
		Event:     "session_started",
		SessionID: sess.ID,
		AccountID: accountID,
	}); err != nil {
		logrus.WithError(err).Warn("Failed to record session start event")
	}

	return &sess, nil
}

// Current returns the open session, or ErrNoActiveSession.
func (s *Service) Current(ctx context.Context) (*Session, error) {
	id, err := s.currentID(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrNoActiveSession
	}
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return nil, err
	}
	sess, ok := sessions[id]
	if !ok || !sess.Active {
		return nil, ErrNoActiveSession
	}
	return &sess, nil
}

// ByID returns a session by id regardless of its state.
func (s *Service) ByID(ctx context.Context, id string) (*Session, error) {
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return nil, err
	}
	sess, ok := sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

// Track records an activity against the current session and refreshes its
// idle timer. The per-session activity log is bounded.
func (s *Service) Track(ctx context.Context, action, page, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withCurrent(ctx, func(sess *Session) {
		now := s.now().UTC()
		sess.Activities = append(sess.Activities, Activity{
			Action:    action,
			Page:      page,
			Details:   details,
			Timestamp: now,
		})
		if limit := s.cfg.Session.ActivityLogSize; len(sess.Activities) > limit {
			sess.Activities = sess.Activities[len(sess.Activities)-limit:]
		}
		sess.LastActivity = now
		sess.Warned = false
	})
}

// UpdateCounts refreshes the cart and wishlist item counters on the
// current session.
func (s *Service) UpdateCounts(ctx context.Context, cartItems, wishlistItems int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withCurrent(ctx, func(sess *Session) {
		sess.CartItems = cartItems
		sess.WishlistItems = wishlistItems
	})
}

func (s *Service) withCurrent(ctx context.Context, mutate func(*Session)) error {
	id, err := s.currentID(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return ErrNoActiveSession
	}
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return err
	}
	sess, ok := sessions[id]
	if !ok || !sess.Active {
		return ErrNoActiveSession
	}
	mutate(&sess)
	sessions[id] = sess
	return s.saveSessions(ctx, sessions)
}

// End closes the current session. It is a no-op when no session is open.
func (s *Service) End(ctx context.Context, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endCurrent(ctx, reason)
}

func (s *Service) endCurrent(ctx context.Context, reason string) error {
	id, err := s.currentID(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return err
	}
	sess, ok := sessions[id]
	if ok && sess.Active {
		now := s.now().UTC()
		sess.EndTime = &now
		sess.Active = false
		sessions[id] = sess
		if err := s.saveSessions(ctx, sessions); err != nil {
			return err
		}
		if err := s.analytics.RecordSessionEvent(ctx, analytics.SessionEvent{
			Event:     "session_ended",
			SessionID: id,
			AccountID: sess.AccountID,
			Details:   reason,
		}); err != nil {
			logrus.WithError(err).Warn("Failed to record session end event")
		}
	}
	if err := s.store.Delete(ctx, currentSessionKey); err != nil && err != store.ErrNotFound {
		return fmt.Errorf("failed to clear current session: %w", err)
	}
	return nil
}

// ForAccount returns every session belonging to an account, newest first.
func (s *Service) ForAccount(ctx context.Context, accountID string) ([]Session, error) {
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return nil, err
	}
	matched := []Session{}
	for _, sess := range sessions {
		if sess.AccountID == accountID {
			matched = append(matched, sess)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartTime.After(matched[j].StartTime)
	})
	return matched, nil
}

// ActiveSessions returns all open sessions.
func (s *Service) ActiveSessions(ctx context.Context) ([]Session, error) {
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return nil, err
	}
	active := []Session{}
	for _, sess := range sessions {
		if sess.Active {
			active = append(active, sess)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].StartTime.After(active[j].StartTime)
	})
	return active, nil
}

// ExportSession builds the downloadable report for one session.
func (s *Service) ExportSession(ctx context.Context, id string) (*Export, error) {
	sess, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Export{
		SessionInfo: ExportInfo{
			ID:        sess.ID,
			AccountID: sess.AccountID,
			StartTime: sess.StartTime,
			EndTime:   sess.EndTime,
			Duration:  sess.DurationSeconds(s.now().UTC()),
			Device:    sess.Device,
			Location:  sess.Location,
		},
		Activities: sess.Activities,
		Statistics: ExportStats{
			TotalActivities: len(sess.Activities),
			UniquePages:     sess.UniquePages(),
			CartItems:       sess.CartItems,
			WishlistItems:   sess.WishlistItems,
		},
	}, nil
}

// Stats aggregates all sessions. Average duration considers completed
// sessions only.
func (s *Service) Stats(ctx context.Context) (*AggregateStats, error) {
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return nil, err
	}

	stats := &AggregateStats{
		TotalSessions:   len(sessions),
		MostActivePages: []PageCount{},
		PeakHours:       []HourCount{},
	}

	pageCounts := make(map[string]int)
	hourCounts := make(map[int]int)
	var completed int
	var totalDuration int64

	for _, sess := range sessions {
		if sess.Active {
			stats.ActiveSessions++
		}
		if sess.EndTime != nil {
			completed++
			totalDuration += sess.DurationSeconds(*sess.EndTime)
		}
		for _, a := range sess.Activities {
			if a.Page != "" {
				pageCounts[a.Page]++
			}
			hourCounts[a.Timestamp.Hour()]++
		}
	}

	if completed > 0 {
		stats.AverageDuration = totalDuration / int64(completed)
	}

	for page, count := range pageCounts {
		stats.MostActivePages = append(stats.MostActivePages, PageCount{Page: page, Count: count})
	}
	sort.Slice(stats.MostActivePages, func(i, j int) bool {
		if stats.MostActivePages[i].Count != stats.MostActivePages[j].Count {
			return stats.MostActivePages[i].Count > stats.MostActivePages[j].Count
		}
		return stats.MostActivePages[i].Page < stats.MostActivePages[j].Page
	})
	if len(stats.MostActivePages) > 5 {
		stats.MostActivePages = stats.MostActivePages[:5]
	}

	for hour, count := range hourCounts {
		stats.PeakHours = append(stats.PeakHours, HourCount{Hour: hour, Count: count})
	}
	sort.Slice(stats.PeakHours, func(i, j int) bool {
		if stats.PeakHours[i].Count != stats.PeakHours[j].Count {
			return stats.PeakHours[i].Count > stats.PeakHours[j].Count
		}
		return stats.PeakHours[i].Hour < stats.PeakHours[j].Hour
	})
	if len(stats.PeakHours) > 3 {
		stats.PeakHours = stats.PeakHours[:3]
	}

	return stats, nil
}

// CheckIdle evaluates the current session against the idle thresholds.
// Crossing the expiry threshold ends the session and fires the expire
// callback exactly once.
func (s *Service) CheckIdle(ctx context.Context) (IdleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.currentID(ctx)
	if err != nil {
		return IdleNone, err
	}
	if id == "" {
		return IdleNone, nil
	}
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return IdleNone, err
	}
	sess, ok := sessions[id]
	if !ok || !sess.Active {
		return IdleNone, nil
	}

	idle := s.now().UTC().Sub(sess.LastActivity)
	switch {
	case idle >= s.cfg.Session.IdleTimeout:
		if err := s.endCurrent(ctx, "idle_timeout"); err != nil {
			return IdleExpired, err
		}
		if s.onExpire != nil {
			s.onExpire(id)
		}
		return IdleExpired, nil
	case idle >= s.cfg.Session.IdleWarning:
		if !sess.Warned {
			sess.Warned = true
			sessions[id] = sess
			if err := s.saveSessions(ctx, sessions); err != nil {
				return IdleWarned, err
			}
			if err := s.analytics.RecordSessionEvent(ctx, analytics.SessionEvent{
				Event:     "session_idle_warning",
				SessionID: id,
				AccountID: sess.AccountID,
			}); err != nil {
				logrus.WithError(err).Warn("Failed to record idle warning event")
			}
		}
		return IdleWarned, nil
	default:
		return IdleOK, nil
	}
}

// Sweep deletes inactive sessions older than the retention window.
// Open sessions are never swept.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().UTC().Add(-s.cfg.Session.Retention)
	removed := 0
	for id, sess := range sessions {
		if sess.Active {
			continue
		}
		reference := sess.LastActivity
		if sess.EndTime != nil {
			reference = *sess.EndTime
		}
		if reference.Before(cutoff) {
			delete(sessions, id)
			removed++
		}
	}

	if removed > 0 {
		if err := s.saveSessions(ctx, sessions); err != nil {
			return 0, err
		}
		logrus.WithField("removed", removed).Info("Swept expired sessions")
	}
	return removed, nil
}

// RunMonitor periodically checks idle state and sweeps old sessions until
// the context is cancelled.
func (s *Service) RunMonitor(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Session.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.CheckIdle(ctx); err != nil {
				logrus.WithError(err).Error("Session idle check failed")
			}
			if _, err := s.Sweep(ctx); err != nil {
				logrus.WithError(err).Error("Session sweep failed")
			}
		}
	}
}
