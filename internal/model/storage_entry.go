package model

import (
	"time"

	"gorm.io/datatypes"
)

// StorageEntry is one key of an origin's durable storage. Values are opaque
// strings; the ones the storefront writes are JSON documents.
type StorageEntry struct {
	ID        uint           `gorm:"primaryKey"`
	Origin    string         `gorm:"column:origin;size:64;not null;uniqueIndex:idx_storage_origin_key"`
	Key       string         `gorm:"column:storage_key;size:128;not null;uniqueIndex:idx_storage_origin_key"`
	Value     datatypes.JSON `gorm:"column:value;type:text;not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
