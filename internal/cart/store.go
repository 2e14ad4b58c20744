// Package cart holds a shopper's line items, persists them after every change
// and announces each committed change on the session bus.
package cart

import (
	"context"
	"sync"

	"github.com/Payphone-Digital/storefront/pkg/broadcast"
	"github.com/Payphone-Digital/storefront/pkg/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EventUpdated is emitted after every committed mutation and after the
// initial load.
const EventUpdated = "cartUpdated"

// Store owns the line items of one origin.
type Store struct {
	mu      sync.RWMutex
	items   []LineItem
	storage storage.Storage
	bus     *broadcast.Bus
	logger  *zap.Logger
}

// NewStore loads the persisted cart. A missing, unreadable or malformed value
// yields an empty cart; it is logged and never returned as an error.
func NewStore(ctx context.Context, st storage.Storage, bus *broadcast.Bus, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bus == nil {
		bus = broadcast.NewBus(logger)
	}
	s := &Store{
		items:   []LineItem{},
		storage: st,
		bus:     bus,
		logger:  logger,
	}
	s.load(ctx)
	s.bus.Emit(EventUpdated)
	return s
}

func (s *Store) load(ctx context.Context) {
	if s.storage == nil {
		return
	}
	raw, ok, err := s.storage.GetItem(ctx, StorageKey)
	if err != nil {
		s.logger.Warn("Failed to read persisted cart, starting empty", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	items, err := decode(raw)
	if err != nil {
		s.logger.Warn("Discarding malformed persisted cart", zap.Error(err))
		return
	}
	s.items = items
	s.logger.Debug("Cart restored", zap.Int("items", len(items)))
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}
	raw, err := encode(s.items)
	if err != nil {
		s.logger.Warn("Failed to encode cart", zap.Error(err))
		return
	}
	if err := s.storage.SetItem(ctx, StorageKey, raw); err != nil {
		s.logger.Warn("Failed to persist cart", zap.Error(err))
	}
}

// mutate runs fn under the write lock. When fn reports a change the cart is
// persisted and EventUpdated is emitted once the lock is released.
func (s *Store) mutate(ctx context.Context, fn func() bool) {
	s.mu.Lock()
	changed := fn()
	if changed {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if changed {
		s.bus.Emit(EventUpdated)
	}
}

func (s *Store) indexOf(id int) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// AddToCart increments the quantity of an existing line or appends a new one.
// A quantity below 1 adds one unit.
func (s *Store) AddToCart(ctx context.Context, id int, data ProductSnapshot, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mutate(ctx, func() bool {
		if i := s.indexOf(id); i >= 0 {
			s.items[i].Quantity += quantity
			return true
		}
		s.items = append(s.items, LineItem{ID: id, Quantity: quantity, Data: data.clone()})
		return true
	})
}

// RemoveFromCart deletes the line for id. Absent ids are ignored.
func (s *Store) RemoveFromCart(ctx context.Context, id int) {
	s.mutate(ctx, func() bool {
		return s.removeLocked(id)
	})
}

func (s *Store) removeLocked(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// UpdateQuantity sets an absolute quantity. Zero or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, id int, quantity int) {
	s.mutate(ctx, func() bool {
		if quantity <= 0 {
			return s.removeLocked(id)
		}
		i := s.indexOf(id)
		if i < 0 || s.items[i].Quantity == quantity {
			return false
		}
		s.items[i].Quantity = quantity
		return true
	})
}

func (s *Store) ClearCart(ctx context.Context) {
	s.mutate(ctx, func() bool {
		if len(s.items) == 0 {
			return false
		}
		s.items = []LineItem{}
		return true
	})
}

func (s *Store) IsInCart(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// ItemQuantity returns 0 for ids not in the cart.
func (s *Store) ItemQuantity(id int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

func (s *Store) TotalQuantity() int {
	return s.Snapshot().TotalQuantity
}

func (s *Store) TotalPrice() decimal.Decimal {
	return s.Snapshot().TotalPrice
}

// Count is the number of distinct line items.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Item returns a copy of the line for id.
func (s *Store) Item(id int) (LineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].clone(), true
	}
	return LineItem{}, false
}

// Items returns a deep copy of the line items in cart order.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LineItem, len(s.items))
	for i, it := range s.items {
		out[i] = it.clone()
	}
	return out
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return summarize(s.items)
}

// Bus returns the bus EventUpdated is emitted on.
func (s *Store) Bus() *broadcast.Bus {
	return s.bus
}
