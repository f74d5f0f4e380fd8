// internal/interfaces/http/handlers/session.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/session"
	"github.com/dailybasket/storefront/internal/interfaces/http/middleware"
	"github.com/dailybasket/storefront/internal/pkg/pdf"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	sessions *session.Service
	pdf      *pdf.Service
	config   *config.Config
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Service, pdfService *pdf.Service, cfg *config.Config) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		pdf:      pdfService,
		config:   cfg,
	}
}

// TrackRequest is the activity tracking payload
type TrackRequest struct {
	Action  string `json:"action" binding:"required"`
	Page    string `json:"page"`
	Details string `json:"details"`
}

// GetCurrent handles GET /sessions/current
func (h *SessionHandler) GetCurrent(c *gin.Context) {
	sess, err := h.sessions.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active session",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session retrieved successfully",
		"data":    sess,
	})
}

// Track handles POST /sessions/current/activities
func (h *SessionHandler) Track(c *gin.Context) {
	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.sessions.Track(c.Request.Context(), req.Action, req.Page, req.Details); err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active session",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to track activity",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Activity tracked successfully",
	})
}

// GetIdleState handles GET /sessions/current/idle
func (h *SessionHandler) GetIdleState(c *gin.Context) {
	state, err := h.sessions.CheckIdle(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check idle state",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Idle state retrieved successfully",
		"data":    gin.H{"state": state},
	})
}

// ListMine handles GET /sessions
func (h *SessionHandler) ListMine(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	sessions, err := h.sessions.ForAccount(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve sessions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sessions retrieved successfully",
		"data":    sessions,
		"count":   len(sessions),
	})
}

// GetStats handles GET /sessions/stats
func (h *SessionHandler) GetStats(c *gin.Context) {
	stats, err := h.sessions.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute session statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session statistics retrieved successfully",
		"data":    stats,
	})
}

// ExportSession handles GET /sessions/:id/export
func (h *SessionHandler) ExportSession(c *gin.Context) {
	export, err := h.sessions.ExportSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Session not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to export session",
		})
		return
	}

	if c.DefaultQuery("format", "json") == "pdf" {
		buf, err := h.pdf.GenerateSessionReport(export)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to generate PDF report",
			})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=session-%s.pdf", export.SessionInfo.ID))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session exported successfully",
		"data":    export,
	})
}

// EndCurrent handles DELETE /sessions/current
func (h *SessionHandler) EndCurrent(c *gin.Context) {
	if err := h.sessions.End(c.Request.Context(), "manual"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to end session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session ended successfully",
	})
}
