// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/account"
	"github.com/dailybasket/storefront/internal/domain/analytics"
	"github.com/dailybasket/storefront/internal/domain/cart"
	"github.com/dailybasket/storefront/internal/domain/catalog"
	"github.com/dailybasket/storefront/internal/domain/session"
	"github.com/dailybasket/storefront/internal/domain/wishlist"
	"github.com/dailybasket/storefront/internal/infrastructure/database/postgres"
	"github.com/dailybasket/storefront/internal/infrastructure/database/redis"
	"github.com/dailybasket/storefront/internal/interfaces/http"
	"github.com/dailybasket/storefront/internal/interfaces/http/handlers"
	"github.com/dailybasket/storefront/internal/pkg/pdf"
	"github.com/dailybasket/storefront/internal/pkg/ratelimit"
	"github.com/dailybasket/storefront/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Health check
	if err := db.Health(); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Durable state lives in PostgreSQL, session-scoped state in Redis
	durable, err := store.NewGorm(db.GetDB())
	if err != nil {
		log.Fatalf("Failed to prepare durable store: %v", err)
	}
	ephemeral := store.NewRedis(redisClient.GetClient(), cfg.Redis.SlotTTL)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Wire domain services
	analyticsService := analytics.NewService(durable, cfg)

	catalogService := catalog.NewService(durable)
	if err := catalogService.Init(ctx); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	sessionService := session.NewService(ephemeral, analyticsService, cfg)
	go sessionService.RunMonitor(ctx)

	cartService := cart.NewService(ephemeral, durable, catalogService, cfg)
	sessionService.OnExpire(func(sessionID string) {
		logrus.WithField("session_id", sessionID).Info("Session expired due to inactivity")
		if sess, err := sessionService.ByID(ctx, sessionID); err == nil {
			cartService.StopAutoSave(sess.AccountID)
		}
	})
	wishlistService := wishlist.NewService(durable, catalogService, cartService)

	accountService := account.NewService(durable, sessionService, analyticsService, cfg)
	cartService.SetAccountSync(accountService)
	wishlistService.SetAccountSync(accountService)

	limiter := ratelimit.NewLimiter(ephemeral, cfg)
	pdfService := pdf.NewService(cfg)

	deps := &handlers.Dependencies{
		Accounts:  accountService,
		Sessions:  sessionService,
		Catalog:   catalogService,
		Carts:     cartService,
		Wishlists: wishlistService,
		Analytics: analyticsService,
		Limiter:   limiter,
		PDF:       pdfService,
	}

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, deps, db.GetDB(), redisClient.GetClient())

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")
	stop()

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}
