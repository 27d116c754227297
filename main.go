package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/coachdesk/coach-service/internal/cache"
	"github.com/coachdesk/coach-service/internal/config"
	"github.com/coachdesk/coach-service/internal/events"
	"github.com/coachdesk/coach-service/internal/handlers"
	"github.com/coachdesk/coach-service/internal/repositories"
	"github.com/coachdesk/coach-service/internal/repositories/jsonfile"
	"github.com/coachdesk/coach-service/internal/repositories/memory"
	"github.com/coachdesk/coach-service/internal/repositories/postgres"
	"github.com/coachdesk/coach-service/internal/services"
	"github.com/coachdesk/coach-service/internal/utils"
	"github.com/coachdesk/coach-service/internal/validator"
	"github.com/coachdesk/coach-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize repository backend
	repo, err := newRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}
	cacheHelper := cache.NewCacheHelper(redisClient, "coaches:")

	// Initialize event bus and change logger
	bus := events.NewBus(slogLogger)
	busCtx, busCancel := context.WithCancel(context.Background())
	defer busCancel()
	if err := bus.RunChangeLogger(busCtx); err != nil {
		log.Fatalf("Failed to start change logger: %v", err)
	}

	// Initialize validator
	v := validator.New()

	// Initialize services
	coachService := services.NewCoachService(repo, cacheHelper, bus, slogLogger, v, cfg.CacheTTL)

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(coachService, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	handlers.SetupMiddleware(router, logger)

	// Setup routes
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "backend", cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Stop the event bus
	busCancel()
	if err := bus.Close(); err != nil {
		log.Printf("Failed to close event bus: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}

// newRepository selects the storage backend from configuration.
func newRepository(cfg *config.Config) (repositories.CoachRepository, error) {
	switch cfg.StorageBackend {
	case "file", "":
		return jsonfile.New(cfg.DataFile)
	case "memory":
		return memory.New(), nil
	case "postgres":
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewCoachRepository(db)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.StorageBackend)
	}
}
