// internal/interfaces/http/handlers/deps.go
package handlers

import (
	"github.com/dailybasket/storefront/internal/domain/account"
	"github.com/dailybasket/storefront/internal/domain/analytics"
	"github.com/dailybasket/storefront/internal/domain/cart"
	"github.com/dailybasket/storefront/internal/domain/catalog"
	"github.com/dailybasket/storefront/internal/domain/session"
	"github.com/dailybasket/storefront/internal/domain/wishlist"
	"github.com/dailybasket/storefront/internal/pkg/pdf"
	"github.com/dailybasket/storefront/internal/pkg/ratelimit"
)

// Dependencies bundles the services the HTTP layer is built on.
type Dependencies struct {
	Accounts  *account.Service
	Sessions  *session.Service
	Catalog   *catalog.Service
	Carts     *cart.Service
	Wishlists *wishlist.Service
	Analytics *analytics.Service
	Limiter   *ratelimit.Limiter
	PDF       *pdf.Service
}
