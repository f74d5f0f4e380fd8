package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/account"
	"github.com/dailybasket/storefront/internal/domain/analytics"
	"github.com/dailybasket/storefront/internal/domain/cart"
	"github.com/dailybasket/storefront/internal/domain/catalog"
	"github.com/dailybasket/storefront/internal/domain/session"
	"github.com/dailybasket/storefront/internal/pkg/ratelimit"
	"github.com/dailybasket/storefront/internal/store"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()

	st := store.NewMemory()
	cfg := &config.Config{
		Security: config.SecurityConfig{
			BcryptCost:       4,
			LoginAttempts:    5,
			LoginWindow:      5 * time.Minute,
			RegisterAttempts: 3,
			RegisterWindow:   10 * time.Minute,
		},
		Cart: config.CartConfig{
			AutoSaveInterval: 30 * time.Second,
			MinQuantity:      1,
			MaxQuantity:      99,
		},
	}

	an := analytics.NewService(st, cfg)
	sessions := session.NewService(st, an, cfg)
	accounts := account.NewService(st, sessions, an, cfg)
	cat := catalog.NewServiceWithSeed(store.NewMemory(), 1)
	require.NoError(t, cat.Init(context.Background()))
	carts := cart.NewService(store.NewMemory(), store.NewMemory(), cat, cfg)

	return NewAuthHandler(accounts, carts, ratelimit.NewLimiter(st, cfg), cfg)
}

func TestUpdateProfileUnknownAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("account_id", "acct-missing")
	c.Request = httptest.NewRequest(http.MethodPut, "/api/v1/auth/me", strings.NewReader(`{"name":"New Name"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.UpdateProfile(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Account not found")
}
