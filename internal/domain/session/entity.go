// internal/domain/session/entity.go
package session

import (
	"time"
)

// DeviceInfo captures the client device a session was opened from.
type DeviceInfo struct {
	UserAgent string `json:"userAgent,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Language  string `json:"language,omitempty"`
	IP        string `json:"ip,omitempty"`
}

// Activity is one tracked action within a session.
type Activity struct {
	Action    string    `json:"action"`
	Page      string    `json:"page,omitempty"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one shopping session for an account.
type Session struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"userId"`
	Email         string     `json:"email,omitempty"`
	Name          string     `json:"name,omitempty"`
	StartTime     time.Time  `json:"startTime"`
	LastActivity  time.Time  `json:"lastActivity"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	Active        bool       `json:"active"`
	Warned        bool       `json:"warned,omitempty"`
	Device        DeviceInfo `json:"deviceInfo"`
	Location      string     `json:"location,omitempty"`
	Activities    []Activity `json:"activities"`
	CartItems     int        `json:"cartItems"`
	WishlistItems int        `json:"wishlistItems"`
}

// DurationSeconds returns the whole seconds between the session start and
// its end, or the given reference time while it is still open.
func (s *Session) DurationSeconds(now time.Time) int64 {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	seconds := end.Sub(s.StartTime).Milliseconds() / 1000
	if seconds < 0 {
		return 0
	}
	return seconds
}

// UniquePages counts the distinct pages touched by the session.
func (s *Session) UniquePages() int {
	seen := make(map[string]struct{})
	for _, a := range s.Activities {
		if a.Page != "" {
			seen[a.Page] = struct{}{}
		}
	}
	return len(seen)
}

// Export is the downloadable report for one session.
type Export struct {
	SessionInfo ExportInfo  `json:"sessionInfo"`
	Activities  []Activity  `json:"activities"`
	Statistics  ExportStats `json:"statistics"`
}

// ExportInfo is the session summary block of an export.
type ExportInfo struct {
	ID        string     `json:"id"`
	AccountID string     `json:"userId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  int64      `json:"duration"`
	Device    DeviceInfo `json:"deviceInfo"`
	Location  string     `json:"location,omitempty"`
}

// ExportStats is the statistics block of an export.
type ExportStats struct {
	TotalActivities int `json:"totalActivities"`
	UniquePages     int `json:"uniquePages"`
	CartItems       int `json:"cartItems"`
	WishlistItems   int `json:"wishlistItems"`
}

// AggregateStats summarizes all sessions for the admin dashboard.
type AggregateStats struct {
	TotalSessions   int          `json:"totalSessions"`
	ActiveSessions  int          `json:"activeSessions"`
	AverageDuration int64        `json:"averageDuration"`
	MostActivePages []PageCount  `json:"mostActivePages"`
	PeakHours       []HourCount  `json:"peakActivityTimes"`
}

// PageCount pairs a page with how often it was visited.
type PageCount struct {
	Page  string `json:"page"`
	Count int    `json:"count"`
}

// HourCount pairs an hour of day with its activity volume.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// IdleState describes where the current session sits against the idle
// warning and expiry thresholds.
type IdleState string

const (
	// IdleOK means the session is within the warning threshold.
	IdleOK IdleState = "ok"
	// IdleWarned means the warning threshold was crossed.
	IdleWarned IdleState = "warned"
	// IdleExpired means the session was ended for inactivity.
	IdleExpired IdleState = "expired"
	// IdleNone means no session is open.
	IdleNone IdleState = "none"
)
