// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"github.com/dailybasket/storefront/internal/domain/catalog"
)

// Entry is one saved product on a wishlist. It snapshots the product
// fields at the time it was added.
type Entry struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Category  string    `json:"category,omitempty"`
	Offer     string    `json:"offer,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// Summary aggregates a wishlist for display.
type Summary struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
}

// DedupPolicy decides whether a product already has an entry on the
// wishlist. Toggle removes the matched entry instead of adding one.
type DedupPolicy func(existing Entry, product *catalog.Product) bool

// DedupByName treats products with the same name as duplicates. This is
// the storefront default so near-identical listings collapse.
func DedupByName(existing Entry, product *catalog.Product) bool {
	return existing.Name == product.Name
}

// DedupByID treats only the exact product as a duplicate.
func DedupByID(existing Entry, product *catalog.Product) bool {
	return existing.ProductID == product.ID
}
