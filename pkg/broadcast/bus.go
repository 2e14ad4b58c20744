// Package broadcast is a payload-less publish/subscribe bus. Events are
// fire-and-forget: listeners re-query whatever store they care about.
package broadcast

import (
	"sync"

	"go.uber.org/zap"
)

// Listener is invoked once per emitted event.
type Listener func()

type subscription struct {
	id       uint64
	listener Listener
}

// Bus fans events out to subscribers.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]subscription
	nextID    uint64
	logger    *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		listeners: make(map[string][]subscription),
		logger:    logger,
	}
}

// Subscribe registers l for event. The returned function unsubscribes and is
// safe to call more than once.
func (b *Bus) Subscribe(event string, l Listener) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners[event] = append(b.listeners[event], subscription{id: id, listener: l})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(event, id) })
	}
}

func (b *Bus) remove(event string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.listeners[event]
	for i, s := range subs {
		if s.id == id {
			b.listeners[event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.listeners[event]) == 0 {
		delete(b.listeners, event)
	}
}

// Emit calls every listener of event in subscription order on the caller's
// goroutine. A panicking listener is logged and does not stop the others.
func (b *Bus) Emit(event string) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.listeners[event]...)
	b.mu.RUnlock()

	for _, s := range subs {
		b.call(event, s.listener)
	}
}

func (b *Bus) call(event string, l Listener) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event listener panicked",
				zap.String("event", event),
				zap.Any("panic", r),
			)
		}
	}()
	l()
}

// Channel subscribes a buffered channel to event. Emissions that find the
// buffer full are dropped; since events carry no payload, a pending signal
// already tells the reader to re-query.
func (b *Bus) Channel(event string, buffer int) (<-chan struct{}, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan struct{}, buffer)

	var mu sync.Mutex
	closed := false
	unsubscribe := b.Subscribe(event, func() {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- struct{}{}:
		default:
		}
	})

	return ch, func() {
		unsubscribe()
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			closed = true
			close(ch)
		}
	}
}

// ListenerCount returns the number of subscribers for event.
func (b *Bus) ListenerCount(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[event])
}
