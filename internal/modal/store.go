// Package modal tracks the single modal dialog a shopper has open.
package modal

import (
	"sync"

	"github.com/Payphone-Digital/storefront/pkg/broadcast"
	"go.uber.org/zap"
)

// EventChanged is emitted whenever a modal opens, is replaced or closes.
const EventChanged = "modalChanged"

// Kinds opened by the cart and order flows.
const (
	KindRemoveItem  = "removeItem"
	KindClearCart   = "clearCart"
	KindOrderPlaced = "orderPlaced"
	KindCoupon      = "coupon"
	KindQuickView   = "quickView"
)

// State is the open modal and its optional payload.
type State struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// ScrollLocker suppresses background scrolling while a modal is open.
type ScrollLocker interface {
	SetScrollLocked(locked bool)
}

type Store struct {
	mu      sync.RWMutex
	current *State
	locker  ScrollLocker
	bus     *broadcast.Bus
	logger  *zap.Logger
}

func NewStore(locker ScrollLocker, bus *broadcast.Bus, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bus == nil {
		bus = broadcast.NewBus(logger)
	}
	return &Store{locker: locker, bus: bus, logger: logger}
}

// Open shows a modal, replacing any modal already open.
func (s *Store) Open(kind string, payload map[string]any) {
	s.mu.Lock()
	if s.current != nil {
		s.logger.Debug("Replacing open modal",
			zap.String("previous", s.current.Type),
			zap.String("next", kind),
		)
	}
	s.current = &State{Type: kind, Payload: payload}
	if s.locker != nil {
		s.locker.SetScrollLocked(true)
	}
	s.mu.Unlock()

	s.bus.Emit(EventChanged)
}

// Close hides the open modal. Closing with nothing open does nothing.
func (s *Store) Close() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current = nil
	if s.locker != nil {
		s.locker.SetScrollLocked(false)
	}
	s.mu.Unlock()

	s.bus.Emit(EventChanged)
}

func (s *Store) Current() (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return State{}, false
	}
	return *s.current, true
}

func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}
