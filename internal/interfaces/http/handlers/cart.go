// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/cart"
	"github.com/dailybasket/storefront/internal/domain/catalog"
	"github.com/dailybasket/storefront/internal/interfaces/http/middleware"
	"github.com/dailybasket/storefront/internal/store"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	carts  *cart.Service
	config *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Service, cfg *config.Config) *CartHandler {
	return &CartHandler{
		carts:  carts,
		config: cfg,
	}
}

// AddItemRequest is the add-to-cart payload
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// SetQuantityRequest is the quantity update payload
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CouponRequest is the coupon payload
type CouponRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *CartHandler) open(c *gin.Context) (*cart.Cart, bool) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return nil, false
	}

	crt, err := h.carts.Open(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load cart",
		})
		return nil, false
	}
	return crt, true
}

func (h *CartHandler) persist(c *gin.Context, crt *cart.Cart, message string) {
	if err := crt.Save(c.Request.Context()); err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Cart was changed elsewhere, reload and retry",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"items":   crt.Lines(),
			"summary": crt.Summary(),
		},
	})
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	crt, ok := h.open(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data": gin.H{
			"items":   crt.Lines(),
			"summary": crt.Summary(),
		},
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	crt, ok := h.open(c)
	if !ok {
		return
	}

	if err := crt.Add(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		h.writeCartError(c, err)
		return
	}
	h.persist(c, crt, "Item added to cart successfully")
}

// SetQuantity handles PUT /cart/items/:id
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	crt, ok := h.open(c)
	if !ok {
		return
	}

	if err := crt.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
		h.writeCartError(c, err)
		return
	}
	h.persist(c, crt, "Cart item updated successfully")
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	crt, ok := h.open(c)
	if !ok {
		return
	}

	if err := crt.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.writeCartError(c, err)
		return
	}
	h.persist(c, crt, "Item removed from cart successfully")
}

// ApplyCoupon handles POST /cart/coupon
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	crt, ok := h.open(c)
	if !ok {
		return
	}

	if err := crt.ApplyCoupon(req.Code); err != nil {
		h.writeCartError(c, err)
		return
	}
	h.persist(c, crt, "Coupon applied successfully")
}

// RemoveCoupon handles DELETE /cart/coupon
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	crt, ok := h.open(c)
	if !ok {
		return
	}

	crt.RemoveCoupon()
	h.persist(c, crt, "Coupon removed successfully")
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	crt, ok := h.open(c)
	if !ok {
		return
	}

	if err := crt.Clear(c.Request.Context()); err != nil {
		h.writeCartError(c, err)
		return
	}
	h.persist(c, crt, "Cart cleared successfully")
}

// Checkout handles POST /cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	crt, ok := h.open(c)
	if !ok {
		return
	}

	order, err := crt.SaveForCheckout(c.Request.Context())
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to start checkout",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout started successfully",
		"data":    order,
	})
}

func (h *CartHandler) writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, cart.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Insufficient stock",
		})
	case errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not in cart",
		})
	case errors.Is(err, cart.ErrQuantityRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Quantity out of range",
		})
	case errors.Is(err, cart.ErrInvalidCoupon):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid coupon code",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Cart operation failed",
		})
	}
}
