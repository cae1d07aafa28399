package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"eventhub-be/internal/cache"
	"eventhub-be/internal/config"
	"eventhub-be/internal/controllers"
	"eventhub-be/internal/database"
	"eventhub-be/internal/logger"
	"eventhub-be/internal/middleware"
	"eventhub-be/internal/repository"
	"eventhub-be/internal/router"
	"eventhub-be/internal/security"
	"eventhub-be/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, nil, cfg.IsDevelopment())

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err})
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	var (
		userRepo    repository.UserRepository
		eventRepo   repository.EventRepository
		mongoClient *mongo.Client
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("Using in-memory store; data is lost on restart", nil)
		userRepo = repository.NewMemoryUserRepository()
		eventRepo = repository.NewMemoryEventRepository()
	default:
		client, err := database.NewConnection(ctx, cfg.MongoURI, cfg.MongoTimeout)
		if err != nil {
			log.Fatal("Failed to connect to database", map[string]interface{}{"error": err})
		}
		mongoClient = client
		log.Info("Connected to MongoDB", map[string]interface{}{"database": cfg.MongoDatabase})

		db := client.Database(cfg.MongoDatabase)
		indexCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
		if err := database.EnsureIndexes(indexCtx, db); err != nil {
			log.Warn("Failed to create indexes", map[string]interface{}{"error": err})
		}
		cancel()

		userRepo = repository.NewUserRepository(db)
		eventRepo = repository.NewEventRepository(db)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		c, err := cache.NewRedisCache(cfg.RedisURL, "eventhub")
		if err != nil {
			log.Warn("Failed to connect to Redis. Continuing without cache.", map[string]interface{}{"error": err})
		} else {
			cacheClient = c
			log.Info("Connected to Redis cache", nil)
		}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, security.NewBcryptHasher(cfg.BcryptCost))
	eventService := service.NewEventService(eventRepo, cacheClient, cfg.CacheTTL, log)

	// Initialize controllers
	ctrl := router.Controllers{
		Auth:   controllers.NewAuthController(authService, log),
		Events: controllers.NewEventController(eventService, log),
		QRCode: controllers.NewQRCodeController(eventService, cfg.FrontendURL, log),
	}

	// Initialize rate limiters
	limiters := router.Limiters{
		General: middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		Auth:    middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst),
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(log, cfg.AllowedOrigins, ctrl, limiters),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", map[string]interface{}{"port": cfg.Port, "store": cfg.StoreDriver})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", map[string]interface{}{"error": err})
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shut down", map[string]interface{}{"error": err})
	}

	if cacheClient != nil {
		if err := cacheClient.Close(); err != nil {
			log.Warn("Failed to close Redis client", map[string]interface{}{"error": err})
		}
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Warn("Failed to disconnect from MongoDB", map[string]interface{}{"error": err})
		}
	}

	log.Info("Server exited", nil)
}
