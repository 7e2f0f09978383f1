package main

// @title Agency Service API
// @version 1.0.0
// @description Identity and geospatial-profile service for disaster-response agencies.
// @description
// @description Capabilities:
// @description - Agency registration with address-to-coordinate geocoding
// @description - Credential authentication with signed session tokens
// @description - Password change and fill-if-provided profile updates
// @description - Read-side joins of an agency with its resources and disasters

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/agency-service/docs"
	"github.com/agency-service/internal/config"
	httpDelivery "github.com/agency-service/internal/delivery/http"
	"github.com/agency-service/internal/delivery/http/handler"
	"github.com/agency-service/internal/infrastructure/mapbox"
	"github.com/agency-service/internal/pkg/auth"
	"github.com/agency-service/internal/pkg/logger"
	"github.com/agency-service/internal/repository/cache"
	"github.com/agency-service/internal/repository/postgres"
	redisRepo "github.com/agency-service/internal/repository/redis"
	"github.com/agency-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Agency Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Apply schema migrations
	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer migrateCancel()

	if err := db.Migrate(migrateCtx); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// 7. Initialize repositories and clients
	agencyRepo := postgres.NewAgencyRepository(db, log)
	disasterRepo := postgres.NewDisasterRepository(db, log)
	resourceRepo := postgres.NewResourceRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	geocoder := mapbox.NewGeocodingClient(&cfg.Mapbox, log)

	log.Info("Repositories initialized")

	// 8. Initialize auth primitives
	hasher := auth.NewBcryptHasher()
	tokens, err := auth.NewTokenIssuer(&cfg.Auth)
	if err != nil {
		log.Fatal("Failed to initialize token issuer", zap.Error(err))
	}

	// 9. Initialize use cases
	agencyUC := usecase.NewAgencyUseCase(
		agencyRepo,
		geocoder,
		hasher,
		tokens,
		streamRepo,
		log,
	)

	queryUC := usecase.NewAgencyQueryUseCase(
		agencyRepo,
		resourceRepo,
		disasterRepo,
		cacheRepo,
		log,
		cfg.Cache.LocationsCacheTTL,
	)

	log.Info("Use cases initialized")

	// 10. Initialize HTTP handlers and server
	agencyHandler := handler.NewAgencyHandler(agencyUC, log)
	queryHandler := handler.NewQueryHandler(queryUC, log)

	server := httpDelivery.NewServer(
		cfg,
		log,
		tokens,
		agencyHandler,
		queryHandler,
	)

	log.Info("HTTP server initialized")

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
