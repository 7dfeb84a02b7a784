package persist

import (
	"context"
	"sync"

	"github.com/goliatone/go-persist/pkg/reactive"
)

// Store wraps a single key in a backing adapter with an in-memory observable
// value. The value starts at the configured default, is loaded from the
// adapter through Init, and every mutation is written through to the adapter
// as part of the call that applies it.
type Store[T any] struct {
	key          string
	defaultValue T
	adapter      Adapter[T]
	cell         *reactive.Cell[T]
	cfg          storeConfig

	// mu guards the load state machine; writeMu serialises mutations so
	// notifications and write-throughs happen in call order.
	mu          sync.Mutex
	writeMu     sync.Mutex
	initialized bool
	loading     chan struct{}
	loadErr     error

	filterMu   sync.Mutex
	filterEval FilterEvaluator
}

type storeConfig struct {
	autoInit     bool
	initCtx      context.Context
	logger       StoreLogger
	filterEval   FilterEvaluator
	programCache ProgramCache
}

// StoreOption configures a Store at construction time.
type StoreOption func(*storeConfig)

// Key returns the backing-store identifier the Store was created with.
func (s *Store[T]) Key() string {
	return s.key
}

// Default returns the value used until a load succeeds.
func (s *Store[T]) Default() T {
	return s.defaultValue
}

// Initialized reports whether a load attempt has completed, including the
// case where the backing key was absent.
func (s *Store[T]) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Loading reports whether a deferred load is outstanding.
func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading != nil
}
