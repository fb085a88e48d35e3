// Package props holds the launch properties declared by the configuration
// resource. The dispatcher fills the store before the application entry
// point runs; the hosted application reads it through the context.
package props

import (
	"context"
	"strconv"
	"sync"
)

// TrueValue is the value assigned to a property declared as a bare key.
const TrueValue = "true"

// Store is a mutex-guarded string property map. Writes follow last-write-wins
// semantics.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore returns an empty property store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Set assigns value to key, replacing any previous value.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get returns the value for key and whether it is present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Bool reports whether key is present and holds the true value.
func (s *Store) Bool(key string) bool {
	value, ok := s.Get(key)
	return ok && value == TrueValue
}

// Int64 returns the value for key parsed as a base-10 integer, or def when
// the key is absent or does not parse.
func (s *Store) Int64(key string, def int64) int64 {
	value, ok := s.Get(key)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

// Len returns the number of stored properties.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Snapshot returns a copy of the stored properties.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// storeKey is an unexported context key type for the store.
type storeKey struct{}

// WithStore returns a new context carrying the store.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext extracts the store from the context. Contexts without a store
// yield an empty one, so reads are always safe.
func FromContext(ctx context.Context) *Store {
	if s, ok := ctx.Value(storeKey{}).(*Store); ok {
		return s
	}
	return NewStore()
}
