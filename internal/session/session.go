// Package session binds the per-origin stores together: one durable storage
// scope, one event bus, the cart and the modal.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Payphone-Digital/storefront/internal/cart"
	"github.com/Payphone-Digital/storefront/internal/modal"
	"github.com/Payphone-Digital/storefront/pkg/broadcast"
	"github.com/Payphone-Digital/storefront/pkg/storage"
	"go.uber.org/zap"
)

// metaKey holds session metadata next to the cart in durable storage.
const metaKey = "session"

// Viewport tracks whether background scrolling is suppressed.
type Viewport struct {
	mu     sync.RWMutex
	locked bool
}

func (v *Viewport) SetScrollLocked(locked bool) {
	v.mu.Lock()
	v.locked = locked
	v.mu.Unlock()
}

func (v *Viewport) ScrollLocked() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.locked
}

// Session is one shopper origin.
type Session struct {
	ID        string
	CreatedAt time.Time

	Bus      *broadcast.Bus
	Storage  storage.Storage
	Cart     *cart.Store
	Modal    *modal.Store
	Viewport *Viewport

	lastSeen atomic.Int64
}

type meta struct {
	CreatedAt time.Time `json:"created_at"`
}

// open builds the session over its storage scope, loading the persisted cart.
func open(ctx context.Context, id string, st storage.Storage, now time.Time, logger *zap.Logger) *Session {
	logger = logger.With(zap.String("session_id", id))
	bus := broadcast.NewBus(logger)
	viewport := &Viewport{}

	s := &Session{
		ID:        id,
		CreatedAt: now,
		Bus:       bus,
		Storage:   st,
		Viewport:  viewport,
	}
	s.Cart = cart.NewStore(ctx, st, bus, logger.Named("cart"))
	s.Modal = modal.NewStore(viewport, bus, logger.Named("modal"))
	s.touch(now)
	return s
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen is the time of the last request that used the session.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Streaming reports whether a client holds an open cart event stream.
func (s *Session) Streaming() bool {
	return s.Bus.ListenerCount(cart.EventUpdated) > 0
}

func (s *Session) saveMeta(ctx context.Context) error {
	b, err := json.Marshal(meta{CreatedAt: s.CreatedAt})
	if err != nil {
		return err
	}
	return s.Storage.SetItem(ctx, metaKey, string(b))
}

// loadMeta restores CreatedAt. It reports whether metadata was found.
func (s *Session) loadMeta(ctx context.Context) (bool, error) {
	raw, ok, err := s.Storage.GetItem(ctx, metaKey)
	if err != nil || !ok {
		return false, err
	}
	var m meta
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return false, nil
	}
	s.CreatedAt = m.CreatedAt
	return true, nil
}
