// internal/domain/cart/entity.go
package cart

import (
	"strconv"
	"strings"
	"time"
)

// Line is one product entry in a cart.
type Line struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Category  string    `json:"category,omitempty"`
	Quantity  int       `json:"quantity"`
	Offer     string    `json:"offer,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// LineTotal returns price times quantity for the line.
func (l *Line) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// OfferPercent returns the line's discount percentage, or 0 when the
// offer string is empty or does not parse.
func (l *Line) OfferPercent() float64 {
	if l.Offer == "" {
		return 0
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(l.Offer, "%"), 64)
	if err != nil {
		return 0
	}
	return value
}

// Summary is the derived totals block for a cart. ItemDiscount is the sum
// of per-line offer discounts, Discount the coupon discount on top.
type Summary struct {
	ItemCount     int     `json:"itemCount"`
	Subtotal      float64 `json:"subtotal"`
	ItemDiscount  float64 `json:"itemDiscount"`
	CouponCode    string  `json:"couponCode,omitempty"`
	CouponPercent float64 `json:"couponPercent,omitempty"`
	Discount      float64 `json:"discount"`
	Total         float64 `json:"total"`
}

// Coupons maps accepted coupon codes to their discount percentage.
// Applying a new code replaces any previously applied one.
var Coupons = map[string]float64{
	"SAVE10":  10,
	"SAVE20":  20,
	"WELCOME": 15,
	"SPECIAL": 25,
}

// snapshot is the persisted form of a cart. Revision guards concurrent
// writers sharing the same slot.
type snapshot struct {
	AccountID string    `json:"accountId"`
	Lines     []Line    `json:"items"`
	Coupon    string    `json:"coupon,omitempty"`
	Revision  int64     `json:"revision"`
	SavedAt   time.Time `json:"savedAt"`
}

// CheckoutOrder is the cart state handed off to checkout.
type CheckoutOrder struct {
	AccountID string    `json:"accountId"`
	Lines     []Line    `json:"items"`
	Summary   Summary   `json:"summary"`
	SavedAt   time.Time `json:"savedAt"`
}
