// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/cart"
	"github.com/dailybasket/storefront/internal/domain/catalog"
	"github.com/dailybasket/storefront/internal/domain/wishlist"
	"github.com/dailybasket/storefront/internal/interfaces/http/middleware"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlists *wishlist.Service
	config    *config.Config
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlists *wishlist.Service, cfg *config.Config) *WishlistHandler {
	return &WishlistHandler{
		wishlists: wishlists,
		config:    cfg,
	}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	entries, err := h.wishlists.Entries(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve wishlist",
		})
		return
	}

	summary, err := h.wishlists.Summarize(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to summarize wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data": gin.H{
			"items":   entries,
			"summary": summary,
		},
	})
}

// Toggle handles POST /wishlist/:id
func (h *WishlistHandler) Toggle(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	added, err := h.wishlists.Toggle(c.Request.Context(), accountID, c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update wishlist",
		})
		return
	}

	message := "Product added to wishlist"
	if !added {
		message = "Product removed from wishlist"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    gin.H{"added": added},
	})
}

// MoveToCart handles POST /wishlist/:id/move-to-cart
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	err := h.wishlists.MoveToCart(c.Request.Context(), accountID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, wishlist.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not on wishlist",
			})
		case errors.Is(err, cart.ErrOutOfStock):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Insufficient stock",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to move product to cart",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product moved to cart successfully",
	})
}

// ClearWishlist handles DELETE /wishlist
func (h *WishlistHandler) ClearWishlist(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	if err := h.wishlists.Clear(c.Request.Context(), accountID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist cleared successfully",
	})
}
