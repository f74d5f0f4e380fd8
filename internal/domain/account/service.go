// internal/domain/account/service.go
package account

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/analytics"
	"github.com/dailybasket/storefront/internal/domain/cart"
	"github.com/dailybasket/storefront/internal/domain/session"
	"github.com/dailybasket/storefront/internal/domain/wishlist"
	"github.com/dailybasket/storefront/internal/pkg/auth"
	"github.com/dailybasket/storefront/internal/pkg/validate"
	"github.com/dailybasket/storefront/internal/store"
)

const (
	accountsKey       = "accounts"
	currentAccountKey = "account:current"
)

// LoginResult bundles everything a successful sign-in produces.
type LoginResult struct {
	Account      Account          `json:"account"`
	Session      *session.Session `json:"session"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
}

// Service handles account directory business logic
type Service struct {
	store     store.Store
	passwords *auth.PasswordManager
	tokens    *auth.JWTManager
	sessions  *session.Service
	analytics *analytics.Service
	cfg       *config.Config
	mu        sync.Mutex
	now       func() time.Time
}

// NewService creates a new account service
func NewService(st store.Store, sessions *session.Service, an *analytics.Service, cfg *config.Config) *Service {
	return &Service{
		store:     st,
		passwords: auth.NewPasswordManager(cfg),
		tokens:    auth.NewJWTManager(cfg),
		sessions:  sessions,
		analytics: an,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) loadAccounts(ctx context.Context) (map[string]record, error) {
	accounts := make(map[string]record)
	if _, err := store.LoadJSON(ctx, s.store, accountsKey, &accounts); err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	if accounts == nil {
		accounts = make(map[string]record)
	}
	return accounts, nil
}

func (s *Service) saveAccounts(ctx context.Context, accounts map[string]record) error {
	if err := store.SetJSON(ctx, s.store, accountsKey, accounts); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

// Register creates a new account. It does not sign the account in.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := validate.Sanitize(input.Name)
	if !validate.Name(name) {
		return nil, &ValidationError{Field: "name"}
	}
	email := validate.Sanitize(input.Email)
	if !validate.Email(email) {
		return nil, &ValidationError{Field: "email"}
	}
	phone := validate.Sanitize(input.Phone)
	if phone != "" && !validate.Phone(phone) {
		return nil, &ValidationError{Field: "phone"}
	}
	if report := validate.Password(input.Password); !report.Valid() {
		return nil, &ValidationError{Field: "password", Missing: report.Missing()}
	}

	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range accounts {
		if rec.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := s.passwords.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	acct := Account{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Role:         "customer",
		CreatedAt:    s.now().UTC(),
		Cart:         []cart.Line{},
		Wishlist:     []wishlist.Entry{},
		Orders:       []string{},
	}
	accounts[acct.ID] = toRecord(acct)
	if err := s.saveAccounts(ctx, accounts); err != nil {
		return nil, err
	}

	if err := s.analytics.RecordSecurityEvent(ctx, analytics.SecurityEvent{
		Event: "account_registered",
		Email: email,
	}); err != nil {
		logrus.WithError(err).Warn("Failed to record registration event")
	}

	view := acct.View()
	return &view, nil
}

// Login authenticates an account, opens a session, and issues tokens.
// Failed attempts bump the account's attempt counter; a success resets it.
func (s *Service) Login(ctx context.Context, email, password string, device session.DeviceInfo) (*LoginResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = validate.Sanitize(email)
	if !validate.Email(email) {
		return nil, &ValidationError{Field: "email"}
	}

	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var rec *record
	var recID string
	for id, candidate := range accounts {
		if candidate.Email == email {
			c := candidate
			rec = &c
			recID = id
			break
		}
	}
	if rec == nil {
		if err := s.analytics.RecordSecurityEvent(ctx, analytics.SecurityEvent{
			Event:   "login_failed",
			Email:   email,
			Details: "unknown account",
		}); err != nil {
			logrus.WithError(err).Warn("Failed to record login failure")
		}
		return nil, ErrAccountNotFound
	}

	now := s.now().UTC()
	if err := s.passwords.VerifyPassword(password, rec.PasswordHash); err != nil {
		rec.LoginAttempts++
		rec.LastLoginAttempt = now
		accounts[recID] = *rec
		if err := s.saveAccounts(ctx, accounts); err != nil {
			return nil, err
		}
		if err := s.analytics.RecordSecurityEvent(ctx, analytics.SecurityEvent{
			Event:   "login_failed",
			Email:   email,
			Details: "password mismatch",
		}); err != nil {
			logrus.WithError(err).Warn("Failed to record login failure")
		}
		return nil, ErrInvalidCredentials
	}

	rec.LoginAttempts = 0
	rec.LastLogin = now
	rec.Statistics.TotalLogins++
	rec.Statistics.TotalSessions++
	rec.Statistics.LastActivity = now
	accounts[recID] = *rec
	if err := s.saveAccounts(ctx, accounts); err != nil {
		return nil, err
	}
	if err := store.SetJSON(ctx, s.store, currentAccountKey, recID); err != nil {
		return nil, fmt.Errorf("failed to set current account: %w", err)
	}

	sess, err := s.sessions.Create(ctx, recID, rec.Email, rec.Name, device)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.GenerateAccessToken(recID, rec.Email, sess.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(recID, rec.Email)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": recID,
		"session_id": sess.ID,
	}).Info("Account signed in")

	return &LoginResult{
		Account:      rec.account().View(),
		Session:      sess,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout ends the current session and clears the signed-in pointer. It is
// safe to call when nobody is signed in.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.End(ctx, "logout"); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, currentAccountKey); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to clear current account: %w", err)
	}
	return nil
}

// Current returns the signed-in account, credential stripped.
func (s *Service) Current(ctx context.Context) (*Account, error) {
	var id string
	found, err := store.LoadJSON(ctx, s.store, currentAccountKey, &id)
	if err != nil {
		return nil, fmt.Errorf("failed to load current account pointer: %w", err)
	}
	if !found || id == "" {
		return nil, ErrNotAuthenticated
	}
	return s.ByID(ctx, id)
}

// ByID returns an account by id, credential stripped.
func (s *Service) ByID(ctx context.Context, id string) (*Account, error) {
	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	view := rec.account().View()
	return &view, nil
}

// ByEmail returns an account by exact email match, credential stripped.
func (s *Service) ByEmail(ctx context.Context, email string) (*Account, error) {
	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range accounts {
		if rec.Email == email {
			view := rec.account().View()
			return &view, nil
		}
	}
	return nil, ErrAccountNotFound
}

// UpdateProfile applies the set fields of a profile update.
func (s *Service) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, id, func(rec *record) error {
		if update.Name != nil {
			name := validate.Sanitize(*update.Name)
			if !validate.Name(name) {
				return &ValidationError{Field: "name"}
			}
			rec.Name = name
		}
		if update.Phone != nil {
			phone := validate.Sanitize(*update.Phone)
			if phone != "" && !validate.Phone(phone) {
				return &ValidationError{Field: "phone"}
			}
			rec.Phone = phone
		}
		if update.Preferences != nil {
			rec.Preferences = *update.Preferences
		}
		return nil
	})
}

// SyncCart mirrors saved cart lines onto the account record.
func (s *Service) SyncCart(ctx context.Context, accountID string, lines []cart.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.mutate(ctx, accountID, func(rec *record) error {
		rec.Cart = lines
		rec.Statistics.LastActivity = s.now().UTC()
		return nil
	})
	if err != nil {
		return err
	}

	s.refreshSessionCounts(ctx, acct)
	return nil
}

// SyncWishlist mirrors saved wishlist entries onto the account record.
func (s *Service) SyncWishlist(ctx context.Context, accountID string, entries []wishlist.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.mutate(ctx, accountID, func(rec *record) error {
		rec.Wishlist = entries
		rec.Statistics.LastActivity = s.now().UTC()
		return nil
	})
	if err != nil {
		return err
	}

	s.refreshSessionCounts(ctx, acct)
	return nil
}

// refreshSessionCounts pushes the mirrored cart and wishlist sizes onto the
// active session. No session is not an error here.
func (s *Service) refreshSessionCounts(ctx context.Context, acct *Account) {
	items := 0
	for _, line := range acct.Cart {
		items += line.Quantity
	}
	if err := s.sessions.UpdateCounts(ctx, items, len(acct.Wishlist)); err != nil && !errors.Is(err, session.ErrNoActiveSession) {
		logrus.WithError(err).Warn("Failed to update session counters")
	}
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*record) error) (*Account, error) {
	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	if err := fn(&rec); err != nil {
		return nil, err
	}
	accounts[id] = rec
	if err := s.saveAccounts(ctx, accounts); err != nil {
		return nil, err
	}
	view := rec.account().View()
	return &view, nil
}
