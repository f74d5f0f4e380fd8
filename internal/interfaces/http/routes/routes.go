// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/interfaces/http/handlers"
	"github.com/dailybasket/storefront/internal/interfaces/http/middleware"
)

// SetupRoutes wires every API route group onto the router.
func SetupRoutes(rg *gin.RouterGroup, deps *handlers.Dependencies, cfg *config.Config) {
	setupAuthRoutes(rg, deps, cfg)
	setupCatalogRoutes(rg, deps, cfg)
	setupCartRoutes(rg, deps, cfg)
	setupWishlistRoutes(rg, deps, cfg)
	setupSessionRoutes(rg, deps, cfg)
	setupAnalyticsRoutes(rg, deps, cfg)
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, deps *handlers.Dependencies, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(deps.Accounts, deps.Carts, deps.Limiter, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)
			protected.PUT("/me", authHandler.UpdateProfile)
		}
	}
}

// setupCatalogRoutes sets up product and category routes
func setupCatalogRoutes(rg *gin.RouterGroup, deps *handlers.Dependencies, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(deps.Catalog, cfg)

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/featured", productHandler.GetFeatured)
		products.GET("/discounted", productHandler.GetDiscounted)
		products.GET("/best-selling", productHandler.GetBestSelling)
		products.GET("/stats", productHandler.GetStats)
		products.GET("/export", productHandler.ExportProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/related", productHandler.GetRelated)

		stock := products.Group("")
		stock.Use(middleware.AuthMiddleware(cfg))
		{
			stock.PUT("/:id/stock", productHandler.UpdateStock)
		}
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", productHandler.ListCategories)
		categories.GET("/:id/products", productHandler.GetProductsByCategory)
	}
}

// setupCartRoutes sets up cart routes
func setupCartRoutes(rg *gin.RouterGroup, deps *handlers.Dependencies, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(deps.Carts, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.SetQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.POST("/coupon", cartHandler.ApplyCoupon)
		cart.DELETE("/coupon", cartHandler.RemoveCoupon)
		cart.POST("/checkout", cartHandler.Checkout)
	}
}

// setupWishlistRoutes sets up wishlist routes
func setupWishlistRoutes(rg *gin.RouterGroup, deps *handlers.Dependencies, cfg *config.Config) {
	wishlistHandler := handlers.NewWishlistHandler(deps.Wishlists, cfg)

	wishlist := rg.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware(cfg))
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.DELETE("", wishlistHandler.ClearWishlist)
		wishlist.POST("/:id", wishlistHandler.Toggle)
		wishlist.POST("/:id/move-to-cart", wishlistHandler.MoveToCart)
	}
}

// setupSessionRoutes sets up session routes
func setupSessionRoutes(rg *gin.RouterGroup, deps *handlers.Dependencies, cfg *config.Config) {
	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.PDF, cfg)

	sessions := rg.Group("/sessions")
	sessions.Use(middleware.AuthMiddleware(cfg))
	{
		sessions.GET("", sessionHandler.ListMine)
		sessions.GET("/stats", sessionHandler.GetStats)
		sessions.GET("/current", sessionHandler.GetCurrent)
		sessions.DELETE("/current", sessionHandler.EndCurrent)
		sessions.POST("/current/activities", sessionHandler.Track)
		sessions.GET("/current/idle", sessionHandler.GetIdleState)
		sessions.GET("/:id/export", sessionHandler.ExportSession)
	}
}

// setupAnalyticsRoutes sets up analytics routes
func setupAnalyticsRoutes(rg *gin.RouterGroup, deps *handlers.Dependencies, cfg *config.Config) {
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics, cfg)

	analytics := rg.Group("/analytics")
	analytics.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		analytics.POST("/activities", analyticsHandler.RecordActivity)
		analytics.GET("/activities", analyticsHandler.GetActivityFeed)
	}

	protected := rg.Group("/analytics")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/session-events", analyticsHandler.GetSessionEvents)
		protected.GET("/security-log", analyticsHandler.GetSecurityLog)
	}
}
