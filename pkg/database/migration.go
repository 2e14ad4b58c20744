package database

import (
	"github.com/Payphone-Digital/storefront/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.StorageEntry{},
	)
}
