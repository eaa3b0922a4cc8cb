package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/receiptify/backend/internal/models"
)

// RunMigrations brings the recipe and shopping list snapshot tables up to date
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("running auto-migration", zap.String("dialect", db.Dialector.Name()))

	if err := db.AutoMigrate(
		&models.Recipe{},
		&models.ShoppingListSnapshot{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
