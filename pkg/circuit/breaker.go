// Package circuit trips after repeated backend failures and fails fast until
// a cooldown has passed.
package circuit

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State represents circuit breaker state
type State int

const (
	StateClosed   State = iota // calls pass through
	StateOpen                  // calls fail fast
	StateHalfOpen              // a few probe calls decide
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many probe requests in half-open state")
)

type Config struct {
	Threshold        int           // consecutive failures that open the circuit
	Cooldown         time.Duration // open time before probing
	SuccessThreshold int           // probe successes that close it again
	MaxHalfOpen      int           // concurrent probes
}

func DefaultConfig() Config {
	return Config{
		Threshold:        5,
		Cooldown:         30 * time.Second,
		SuccessThreshold: 2,
		MaxHalfOpen:      1,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.Cooldown <= 0 {
		c.Cooldown = d.Cooldown
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = d.SuccessThreshold
	}
	if c.MaxHalfOpen <= 0 {
		c.MaxHalfOpen = d.MaxHalfOpen
	}
	return c
}

// Snapshot is a point-in-time view for health reporting.
type Snapshot struct {
	Name        string    `json:"name"`
	State       string    `json:"state"`
	Failures    int       `json:"failures"`
	LastFailure time.Time `json:"last_failure,omitempty"`
}

type Breaker struct {
	mu          sync.Mutex
	name        string
	config      Config
	state       State
	failures    int
	successes   int
	probes      int
	lastFailure time.Time
	now         func() time.Time
	logger      *zap.Logger
}

func NewBreaker(name string, config Config, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Breaker{
		name:   name,
		config: config.normalized(),
		state:  StateClosed,
		now:    time.Now,
		logger: logger,
	}
}

// Execute runs fn when the circuit admits it and records the outcome.
// Cancellation by the caller is not held against the backend.
func (b *Breaker) Execute(ctx context.Context, fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		b.release()
		return err
	}
	b.Record(err)
	return err
}

// Allow admits a call or reports why it is refused. An admitted call must be
// followed by Record.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Sub(b.lastFailure) < b.config.Cooldown {
			return ErrCircuitOpen
		}
		b.transitionTo(StateHalfOpen)
		b.probes = 1
		return nil
	case StateHalfOpen:
		if b.probes >= b.config.MaxHalfOpen {
			return ErrTooManyRequests
		}
		b.probes++
		return nil
	default:
		return nil
	}
}

func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen && b.probes > 0 {
		b.probes--
	}
	if err != nil {
		b.recordFailure()
		return
	}
	b.recordSuccess()
}

func (b *Breaker) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateHalfOpen && b.probes > 0 {
		b.probes--
	}
}

func (b *Breaker) recordFailure() {
	b.failures++
	b.successes = 0
	b.lastFailure = b.now()

	switch b.state {
	case StateClosed:
		if b.failures >= b.config.Threshold {
			b.transitionTo(StateOpen)
		}
	case StateHalfOpen:
		b.transitionTo(StateOpen)
	}
}

func (b *Breaker) recordSuccess() {
	switch b.state {
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.transitionTo(StateClosed)
		}
	case StateClosed:
		b.failures = 0
	}
}

// transitionTo must be called with the lock held.
func (b *Breaker) transitionTo(next State) {
	prev := b.state
	b.state = next
	b.probes = 0
	b.successes = 0
	if next == StateClosed {
		b.failures = 0
	}

	log := b.logger.Info
	if next == StateOpen {
		log = b.logger.Warn
	}
	log("Circuit breaker state changed",
		zap.String("name", b.name),
		zap.String("from", prev.String()),
		zap.String("to", next.String()),
		zap.Int("failures", b.failures),
	)
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Name:        b.name,
		State:       b.state.String(),
		Failures:    b.failures,
		LastFailure: b.lastFailure,
	}
}

// Reset closes the circuit.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateClosed {
		b.transitionTo(StateClosed)
	}
	b.failures = 0
}
