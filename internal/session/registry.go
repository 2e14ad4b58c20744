package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Payphone-Digital/storefront/internal/cart"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry keeps live sessions in memory and drops the ones left idle. A
// dropped session is reopened from durable storage on its next request.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	provider storage.Provider
	idleTTL  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRegistry(provider storage.Provider, idleTTL time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		provider: provider,
		idleTTL:  idleTTL,
		logger:   logger,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Create starts a new session with a random id.
func (r *Registry) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	s := open(ctx, id, r.provider.Scope(id), r.now(), r.logger)
	if err := s.saveMeta(ctx); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrServiceUnavailable, fmt.Errorf("save session: %w", err))
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	r.logger.Info("Session created", zap.String("session_id", id))
	return s, nil
}

// Get returns the live session for id, reopening it from storage when it was
// evicted or the process restarted.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrSessionNotFound
	}

	now := r.now()
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		s.touch(now)
		return s, nil
	}

	fresh := open(ctx, id, r.provider.Scope(id), now, r.logger)
	found, err := fresh.loadMeta(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrServiceUnavailable, fmt.Errorf("load session: %w", err))
	}
	if !found {
		if err := fresh.saveMeta(ctx); err != nil {
			r.logger.Warn("Failed to save session metadata", zap.String("session_id", id), zap.Error(err))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[id]; ok {
		existing.touch(now)
		return existing, nil
	}
	r.sessions[id] = fresh
	r.logger.Debug("Session reopened", zap.String("session_id", id), zap.Bool("had_metadata", found))
	return fresh, nil
}

// Remove ends the session for id: it leaves the registry and its cart and
// metadata are erased from durable storage.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()

	st := r.provider.Scope(id)
	for _, key := range []string{cart.StorageKey, metaKey} {
		if err := st.RemoveItem(ctx, key); err != nil {
			return apperrors.WrapError(apperrors.ErrServiceUnavailable, fmt.Errorf("remove session %s: %w", key, err))
		}
	}
	r.logger.Info("Session ended", zap.String("session_id", id))
	return nil
}

// EvictIdle drops sessions unused for longer than the idle TTL and returns
// how many were dropped. Sessions with an open event stream are kept.
func (r *Registry) EvictIdle() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) && !s.Streaming() {
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Debug("Evicted idle sessions", zap.Int("count", evicted), zap.Int("remaining", len(r.sessions)))
	}
	return evicted
}

// Start runs EvictIdle every interval until Stop is called.
func (r *Registry) Start(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.EvictIdle()
			case <-r.stop:
				return
			}
		}
	}()
}

func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Provider returns the durable storage backing the sessions.
func (r *Registry) Provider() storage.Provider {
	return r.provider
}
