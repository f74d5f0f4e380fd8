// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/analytics"
	"github.com/dailybasket/storefront/internal/interfaces/http/middleware"
)

// AnalyticsHandler handles analytics endpoints
type AnalyticsHandler struct {
	analytics *analytics.Service
	config    *config.Config
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(an *analytics.Service, cfg *config.Config) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: an,
		config:    cfg,
	}
}

// RecordActivityRequest is the activity recording payload
type RecordActivityRequest struct {
	Action  string `json:"action" binding:"required"`
	Details string `json:"details"`
	Page    string `json:"page"`
}

// RecordActivity handles POST /analytics/activities
func (h *AnalyticsHandler) RecordActivity(c *gin.Context) {
	var req RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	activity := analytics.Activity{
		Action:  req.Action,
		Details: req.Details,
		Page:    req.Page,
	}
	if accountID, ok := middleware.GetAccountIDFromContext(c); ok {
		activity.AccountID = accountID
	}
	if sessionID, ok := middleware.GetSessionIDFromContext(c); ok {
		activity.SessionID = sessionID
	}

	if err := h.analytics.RecordActivity(c.Request.Context(), activity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to record activity",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Activity recorded successfully",
	})
}

// GetActivityFeed handles GET /analytics/activities
func (h *AnalyticsHandler) GetActivityFeed(c *gin.Context) {
	feed, err := h.analytics.ActivityFeed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve activity feed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Activity feed retrieved successfully",
		"data":    feed,
		"count":   len(feed),
	})
}

// GetSessionEvents handles GET /analytics/session-events
func (h *AnalyticsHandler) GetSessionEvents(c *gin.Context) {
	events, err := h.analytics.SessionEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve session events",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session events retrieved successfully",
		"data":    events,
		"count":   len(events),
	})
}

// GetSecurityLog handles GET /analytics/security-log
func (h *AnalyticsHandler) GetSecurityLog(c *gin.Context) {
	events, err := h.analytics.SecurityLog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve security log",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Security log retrieved successfully",
		"data":    events,
		"count":   len(events),
	})
}
