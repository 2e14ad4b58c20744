package circuit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend down")

func newTestBreaker(cfg Config) (*Breaker, *time.Time) {
	b := NewBreaker("test", cfg, nil)
	clock := time.Now()
	b.now = func() time.Time { return clock }
	return b, &clock
}

func fail() error    { return errBackend }
func succeed() error { return nil }

func TestBreaker_DefaultsForZeroConfig(t *testing.T) {
	b := NewBreaker("test", Config{}, nil)
	assert.Equal(t, DefaultConfig(), b.config)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 3, Cooldown: time.Minute})
	ctx := context.Background()

	assert.ErrorIs(t, b.Execute(ctx, fail), errBackend)
	assert.ErrorIs(t, b.Execute(ctx, fail), errBackend)
	require.NoError(t, b.Execute(ctx, succeed), "a success resets the count")
	assert.Equal(t, StateClosed, b.State())

	for i := 0; i < 3; i++ {
		_ = b.Execute(ctx, fail)
	}
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(ctx, func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called, "open circuit fails fast")
}

func TestBreaker_HalfOpenProbesCloseIt(t *testing.T) {
	b, clock := newTestBreaker(Config{Threshold: 1, Cooldown: time.Minute, SuccessThreshold: 2, MaxHalfOpen: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	require.Equal(t, StateOpen, b.State())

	*clock = clock.Add(time.Minute)
	require.NoError(t, b.Execute(ctx, succeed))
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Execute(ctx, succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, clock := newTestBreaker(Config{Threshold: 1, Cooldown: time.Minute})
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	*clock = clock.Add(time.Minute)

	assert.ErrorIs(t, b.Execute(ctx, fail), errBackend)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Execute(ctx, succeed), ErrCircuitOpen)
}

func TestBreaker_LimitsConcurrentProbes(t *testing.T) {
	b, clock := newTestBreaker(Config{Threshold: 1, Cooldown: time.Minute, MaxHalfOpen: 1})

	b.Record(errBackend)
	*clock = clock.Add(time.Minute)

	require.NoError(t, b.Allow())
	assert.ErrorIs(t, b.Allow(), ErrTooManyRequests)

	b.Record(nil)
	assert.NoError(t, b.Allow())
}

func TestBreaker_CallerCancellationIsNotAFailure(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 1, Cooldown: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Execute(ctx, func() error { return ctx.Err() })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_SnapshotAndReset(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 1, Cooldown: time.Minute})
	_ = b.Execute(context.Background(), fail)

	snap := b.Snapshot()
	assert.Equal(t, "test", snap.Name)
	assert.Equal(t, "OPEN", snap.State)
	assert.Equal(t, 1, snap.Failures)

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.Snapshot().Failures)
}
