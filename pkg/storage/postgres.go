package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Payphone-Digital/storefront/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresProvider keeps every origin's keys in the storage_entries table.
type PostgresProvider struct {
	db *gorm.DB
}

func NewPostgresProvider(db *gorm.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) Scope(origin string) Storage {
	return &postgresScope{db: p.db, origin: origin}
}

func (p *PostgresProvider) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (p *PostgresProvider) Name() string {
	return BackendPostgres
}

type postgresScope struct {
	db     *gorm.DB
	origin string
}

func (s *postgresScope) GetItem(ctx context.Context, key string) (string, bool, error) {
	if s.origin == "" || key == "" {
		return "", false, ErrInvalidKey
	}

	var entry model.StorageEntry
	err := s.db.WithContext(ctx).
		Where("origin = ? AND storage_key = ?", s.origin, key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read storage entry: %w", err)
	}
	return string(entry.Value), true, nil
}

func (s *postgresScope) SetItem(ctx context.Context, key, value string) error {
	if s.origin == "" || key == "" {
		return ErrInvalidKey
	}

	now := time.Now().UTC()
	entry := model.StorageEntry{
		Origin:    s.origin,
		Key:       key,
		Value:     datatypes.JSON(value),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "origin"}, {Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write storage entry: %w", err)
	}
	return nil
}

func (s *postgresScope) RemoveItem(ctx context.Context, key string) error {
	if s.origin == "" || key == "" {
		return ErrInvalidKey
	}

	err := s.db.WithContext(ctx).
		Where("origin = ? AND storage_key = ?", s.origin, key).
		Delete(&model.StorageEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete storage entry: %w", err)
	}
	return nil
}
