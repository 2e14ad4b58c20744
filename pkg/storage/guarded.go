package storage

import (
	"context"
	"errors"

	"github.com/Payphone-Digital/storefront/pkg/circuit"
)

// GuardedProvider fronts a remote provider with a circuit breaker. While the
// circuit is open every call returns circuit.ErrCircuitOpen without touching
// the backend.
type GuardedProvider struct {
	inner   Provider
	breaker *circuit.Breaker
}

func NewGuardedProvider(inner Provider, breaker *circuit.Breaker) *GuardedProvider {
	return &GuardedProvider{inner: inner, breaker: breaker}
}

func (p *GuardedProvider) Scope(origin string) Storage {
	return &guardedScope{inner: p.inner.Scope(origin), breaker: p.breaker}
}

func (p *GuardedProvider) Ping(ctx context.Context) error {
	return p.breaker.Execute(ctx, func() error { return p.inner.Ping(ctx) })
}

func (p *GuardedProvider) Name() string {
	return p.inner.Name()
}

// Breaker exposes the circuit for health reporting.
func (p *GuardedProvider) Breaker() *circuit.Breaker {
	return p.breaker
}

type guardedScope struct {
	inner   Storage
	breaker *circuit.Breaker
}

// run executes call under the breaker. Invalid keys are the caller's fault
// and do not count against the backend.
func (s *guardedScope) run(ctx context.Context, call func() error) error {
	var callerErr error
	err := s.breaker.Execute(ctx, func() error {
		err := call()
		if errors.Is(err, ErrInvalidKey) {
			callerErr = err
			return nil
		}
		return err
	})
	if callerErr != nil {
		return callerErr
	}
	return err
}

func (s *guardedScope) GetItem(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.run(ctx, func() error {
		var getErr error
		value, ok, getErr = s.inner.GetItem(ctx, key)
		return getErr
	})
	if err != nil {
		return "", false, err
	}
	return value, ok, nil
}

func (s *guardedScope) SetItem(ctx context.Context, key, value string) error {
	return s.run(ctx, func() error { return s.inner.SetItem(ctx, key, value) })
}

func (s *guardedScope) RemoveItem(ctx context.Context, key string) error {
	return s.run(ctx, func() error { return s.inner.RemoveItem(ctx, key) })
}
