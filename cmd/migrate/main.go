package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/pageza/receiptify/backend/config"
	"github.com/pageza/receiptify/backend/internal/database"
	"github.com/pageza/receiptify/backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLog, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	db, err := database.Open(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.RunMigrations(db, zapLog); err != nil {
		zapLog.Fatal("migration failed", zap.Error(err))
	}
	zapLog.Info("migrations applied", zap.String("driver", cfg.DBDriver))
}
