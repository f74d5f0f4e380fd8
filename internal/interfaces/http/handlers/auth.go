// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/account"
	"github.com/dailybasket/storefront/internal/domain/cart"
	"github.com/dailybasket/storefront/internal/domain/session"
	"github.com/dailybasket/storefront/internal/interfaces/http/middleware"
	"github.com/dailybasket/storefront/internal/pkg/ratelimit"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	accounts *account.Service
	carts    *cart.Service
	limiter  *ratelimit.Limiter
	config   *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts *account.Service, carts *cart.Service, limiter *ratelimit.Limiter, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		carts:    carts,
		limiter:  limiter,
		config:   cfg,
	}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	allowed, err := h.limiter.AllowRegistration(c.Request.Context(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check rate limit",
		})
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many registration attempts, try again later",
		})
		return
	}

	var req account.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	acct, err := h.accounts.Register(c.Request.Context(), req)
	if err != nil {
		var verr *account.ValidationError
		switch {
		case errors.As(err, &verr):
			resp := gin.H{"error": verr.Error(), "field": verr.Field}
			if len(verr.Missing) > 0 {
				resp["missing"] = verr.Missing
			}
			c.JSON(http.StatusBadRequest, resp)
		case errors.Is(err, account.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email already registered",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create account",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    acct,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	allowed, err := h.limiter.AllowLogin(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check rate limit",
		})
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many login attempts, try again later",
		})
		return
	}

	device := session.DeviceInfo{
		UserAgent: c.Request.UserAgent(),
		Language:  c.GetHeader("Accept-Language"),
		IP:        c.ClientIP(),
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password, device)
	if err != nil {
		var verr *account.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": verr.Error(),
			})
		case errors.Is(err, account.ErrAccountNotFound), errors.Is(err, account.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to sign in",
			})
		}
		return
	}

	if err := h.limiter.Reset(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset rate limit",
		})
		return
	}

	if err := h.carts.StartAutoSave(c.Request.Context(), result.Account.ID); err != nil {
		logrus.WithError(err).Warn("Cart auto-save failed to start")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"data":    result,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if accountID, ok := middleware.GetAccountIDFromContext(c); ok {
		h.carts.StopAutoSave(accountID)
	}

	if err := h.accounts.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to sign out",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out successfully",
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	acct, err := h.accounts.ByID(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Account not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account retrieved successfully",
		"data":    acct,
	})
}

// UpdateProfile handles PUT /auth/me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req account.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	acct, err := h.accounts.UpdateProfile(c.Request.Context(), accountID, req)
	if err != nil {
		var verr *account.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": verr.Error(),
			})
		case errors.Is(err, account.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update profile",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    acct,
	})
}
