// Package urlstate keeps view state (page, tab, filters) in the query string so
// it survives reloads and can be bookmarked or shared.
package urlstate

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Store is a typed view over a query string. Every write commits exactly one
// navigation; reads see the last committed state.
//
// Navigators are called with the store lock held and must not call back into
// the store.
type Store struct {
	mu     sync.RWMutex
	params Params
	nav    Navigator
	mode   HistoryMode
	logger *zap.Logger
}

type Option func(*Store)

// WithHistoryMode overrides the default Replace mode.
func WithHistoryMode(mode HistoryMode) Option {
	return func(s *Store) { s.mode = mode }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a store over rawQuery. A nil navigator discards navigations.
func New(rawQuery string, nav Navigator, opts ...Option) *Store {
	s := &Store{
		params: ParseQuery(rawQuery),
		nav:    nav,
		mode:   Replace,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the first value for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.Get(key)
}

// GetAll returns every value for key, or an empty slice.
func (s *Store) GetAll(key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.GetAll(key)
}

// AllParams snapshots every key. Single-valued keys map to a string,
// multi-valued keys to a []string.
func (s *Store) AllParams() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, s.params.Len())
	for _, k := range s.params.keys {
		vs := s.params.values[k]
		if len(vs) == 1 {
			out[k] = vs[0]
			continue
		}
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// Query returns the committed query string.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.Encode()
}

// Mode returns the history mode used for navigations.
func (s *Store) Mode() HistoryMode {
	return s.mode
}

// Set replaces key with value and navigates once.
func (s *Store) Set(key string, value Value) {
	s.SetParams(map[string]Value{key: value})
}

// SetParams applies all writes and commits them as a single navigation.
// Keys are applied in sorted order so new keys land deterministically.
func (s *Store) SetParams(values map[string]Value) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.params.Clone()
	for _, k := range keys {
		v := values[k]
		if v.IsNull() {
			next.Delete(k)
			continue
		}
		next.Replace(k, v.values)
	}
	s.params = next

	query := next.Encode()
	s.logger.Debug("Query state committed",
		zap.Strings("keys", keys),
		zap.String("query", query),
		zap.String("history_mode", s.mode.String()),
	)
	if s.nav != nil {
		s.nav.Navigate(query, s.mode)
	}
}
