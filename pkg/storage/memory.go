package storage

import (
	"context"
	"sync"
)

type memoryKey struct {
	origin string
	key    string
}

// MemoryProvider keeps every origin in one process-local map. Data is lost
// on restart.
type MemoryProvider struct {
	items map[memoryKey]string
	mu    sync.RWMutex
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		items: make(map[memoryKey]string),
	}
}

func (p *MemoryProvider) Scope(origin string) Storage {
	return &memoryScope{provider: p, origin: origin}
}

func (p *MemoryProvider) Ping(context.Context) error {
	return nil
}

func (p *MemoryProvider) Name() string {
	return BackendMemory
}

// Len returns the number of stored keys across all origins.
func (p *MemoryProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

type memoryScope struct {
	provider *MemoryProvider
	origin   string
}

func (s *memoryScope) GetItem(_ context.Context, key string) (string, bool, error) {
	if s.origin == "" || key == "" {
		return "", false, ErrInvalidKey
	}
	s.provider.mu.RLock()
	defer s.provider.mu.RUnlock()

	v, ok := s.provider.items[memoryKey{s.origin, key}]
	return v, ok, nil
}

func (s *memoryScope) SetItem(_ context.Context, key, value string) error {
	if s.origin == "" || key == "" {
		return ErrInvalidKey
	}
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	s.provider.items[memoryKey{s.origin, key}] = value
	return nil
}

func (s *memoryScope) RemoveItem(_ context.Context, key string) error {
	if s.origin == "" || key == "" {
		return ErrInvalidKey
	}
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	delete(s.provider.items, memoryKey{s.origin, key})
	return nil
}
