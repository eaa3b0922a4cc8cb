package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/receiptify/backend/config"
	"github.com/pageza/receiptify/backend/internal/database"
	"github.com/pageza/receiptify/backend/internal/metrics"
	"github.com/pageza/receiptify/backend/internal/server"
	"github.com/pageza/receiptify/backend/internal/service"
	"github.com/pageza/receiptify/backend/internal/shopping"
	"github.com/pageza/receiptify/backend/pkg/logger"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zapLog, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Environment == config.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	if err := run(cfg, zapLog); err != nil {
		zapLog.Fatal("server error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, log); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.SnapshotBackend == config.SnapshotRedis || cfg.RedisURL != "" || cfg.RedisHost != "" {
		redisClient, err = database.NewRedisClient(cfg, log)
		if err != nil {
			if cfg.SnapshotBackend == config.SnapshotRedis {
				return err
			}
			log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var snapshots shopping.SnapshotStore
	switch cfg.SnapshotBackend {
	case config.SnapshotMemory:
		snapshots = shopping.NewMemorySnapshotStore()
	case config.SnapshotRedis:
		snapshots = shopping.NewRedisSnapshotStore(redisClient, cfg.SnapshotTTL)
	default:
		snapshots = shopping.NewDBSnapshotStore(db)
	}

	var exports service.ExportStorage
	if cfg.S3BucketName != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Warn("object storage unavailable, sharing disabled", zap.Error(err))
		} else {
			exports = s3cfg
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	recipes := service.NewRecipeService(db, log)
	srv := server.New(cfg, server.Deps{
		DB:      db,
		Redis:   redisClient,
		Auth:    service.NewAuthService(cfg.JWTSecret, 24*time.Hour),
		Recipes: recipes,
		ShoppingList: service.NewShoppingListService(recipes, snapshots, exports, collector, log,
			service.ShoppingListConfig{
				AutoSave:     cfg.AutoSave,
				ShareLinkTTL: cfg.ShareLinkTTL,
			}),
		Metrics: collector,
		Logger:  log,
	})

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
