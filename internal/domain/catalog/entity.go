// internal/domain/catalog/entity.go
package catalog

import (
	"strconv"
	"strings"
	"time"
)

// Product represents a catalog product record
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       float64         `json:"price"`
	Currency    string          `json:"currency"`
	Unit        string          `json:"unit"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	Offer       string          `json:"offer,omitempty"`
	Tags        []string        `json:"tags"`
	Nutrition   *NutritionFacts `json:"nutritionalInfo,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty"`
}

// NutritionFacts holds per-serving nutrition values for edible products
type NutritionFacts struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Category represents a product category
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// HasOffer reports whether the product carries a discount offer.
func (p *Product) HasOffer() bool {
	return p.Offer != ""
}

// OfferPercent returns the numeric discount percentage, or 0 when the
// product has no offer or the offer string does not parse.
func (p *Product) OfferPercent() float64 {
	if p.Offer == "" {
		return 0
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(p.Offer, "%"), 64)
	if err != nil {
		return 0
	}
	return value
}

// MatchesText reports whether the product matches a case-insensitive
// substring search over name, description, and tags.
func (p *Product) MatchesText(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// SharesTag reports whether the two products have at least one tag in common.
func (p *Product) SharesTag(other *Product) bool {
	for _, tag := range p.Tags {
		for _, otherTag := range other.Tags {
			if tag == otherTag {
				return true
			}
		}
	}
	return false
}

// StockMode selects how AdjustStock applies a quantity.
type StockMode string

const (
	// StockSet replaces the stock level outright.
	StockSet StockMode = "set"
	// StockAdd increments the stock level.
	StockAdd StockMode = "add"
	// StockSubtract decrements the stock level, flooring at zero.
	StockSubtract StockMode = "subtract"
)

// QueryFilter narrows a catalog query. Zero-valued fields are ignored;
// all set fields must match.
type QueryFilter struct {
	Category  string   `json:"category,omitempty" form:"category"`
	MinPrice  *float64 `json:"min_price,omitempty" form:"min_price"`
	MaxPrice  *float64 `json:"max_price,omitempty" form:"max_price"`
	MinRating *float64 `json:"min_rating,omitempty" form:"min_rating"`
	OfferOnly bool     `json:"offer_only,omitempty" form:"offer_only"`
	InStock   bool     `json:"in_stock,omitempty" form:"in_stock"`
}

// Stats summarizes the catalog for the admin dashboard.
type Stats struct {
	TotalProducts      int                          `json:"total_products"`
	TotalCategories    int                          `json:"total_categories"`
	AveragePrice       float64                      `json:"average_price"`
	AverageRating      float64                      `json:"average_rating"`
	TotalStock         int                          `json:"total_stock"`
	ProductsWithOffers int                          `json:"products_with_offers"`
	CategoryBreakdown  map[string]CategoryBreakdown `json:"category_breakdown"`
}

// CategoryBreakdown counts the products in one category.
type CategoryBreakdown struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
