// Package storage provides durable per-origin key/value storage, the server
// side counterpart of a browser's local storage.
package storage

import (
	"context"
	"errors"
)

// ErrInvalidKey is returned for an empty origin or key.
var ErrInvalidKey = errors.New("storage: origin and key must not be empty")

// Storage is one origin's key/value space.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Provider hands out Storage scoped to an origin.
type Provider interface {
	Scope(origin string) Storage
	Ping(ctx context.Context) error
	Name() string
}

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)
