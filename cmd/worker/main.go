package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/agency-service/internal/config"
	"github.com/agency-service/internal/pkg/logger"
	"github.com/agency-service/internal/repository/cache"
	redisRepo "github.com/agency-service/internal/repository/redis"
	"github.com/agency-service/internal/worker"
	"github.com/agency-service/internal/worker/agency"
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

	log.Info("Starting Agency Service worker")

	if !cfg.Worker.Enabled {
		log.Info("Worker disabled by configuration, exiting")
		return
	}

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Health check
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("Redis connection healthy")

	// 5. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Register workers
	manager := worker.NewManager(log)
	manager.Register(agency.NewEventsWorker(
		streamRepo,
		cacheRepo,
		cfg.Worker.ConsumerGroup,
		log,
	))

	// 7. Start workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if err := manager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("Workers started successfully",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup))

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down workers gracefully...")

	workerCancel()
	if err := manager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}

	log.Info("Workers stopped successfully")
}
