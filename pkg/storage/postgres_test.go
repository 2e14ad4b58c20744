package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestPostgresProvider_GetItem(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewPostgresProvider(db)

	rows := sqlmock.NewRows([]string{"id", "origin", "storage_key", "value"}).
		AddRow(1, "abc", "cart", `[{"id":1}]`)
	mock.ExpectQuery(`SELECT (.+) FROM "storage_entries"`).WillReturnRows(rows)

	v, ok, err := p.Scope("abc").GetItem(context.Background(), "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProvider_GetItemMissing(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewPostgresProvider(db)

	mock.ExpectQuery(`SELECT (.+) FROM "storage_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, ok, err := p.Scope("abc").GetItem(context.Background(), "cart")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProvider_GetItemError(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewPostgresProvider(db)

	mock.ExpectQuery(`SELECT (.+) FROM "storage_entries"`).
		WillReturnError(errors.New("connection reset"))

	_, _, err := p.Scope("abc").GetItem(context.Background(), "cart")
	assert.Error(t, err)
}

func TestPostgresProvider_SetItemUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewPostgresProvider(db)

	mock.ExpectQuery(`INSERT INTO "storage_entries" (.+) ON CONFLICT`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := p.Scope("abc").SetItem(context.Background(), "cart", "[]")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProvider_RemoveItem(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewPostgresProvider(db)

	mock.ExpectExec(`DELETE FROM "storage_entries"`).
		WithArgs("abc", "cart").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := p.Scope("abc").RemoveItem(context.Background(), "cart")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProvider_Name(t *testing.T) {
	db, _ := newMockDB(t)
	assert.Equal(t, BackendPostgres, NewPostgresProvider(db).Name())
}
