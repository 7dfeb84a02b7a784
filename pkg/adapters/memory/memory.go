// Package memory provides a map-backed adapter intended for tests and
// examples. Lookups are immediate by default; WithPending switches reads to
// the deferred path so callers can exercise asynchronous load handling.
package memory

import (
	"context"
	"sync"

	persist "github.com/goliatone/go-persist"
)

// Option configures the adapter.
type Option func(*config)

type config struct {
	pending bool
}

// WithPending makes Get return a pending lookup that settles from a
// goroutine instead of an immediate result.
func WithPending() Option {
	return func(cfg *config) {
		cfg.pending = true
	}
}

// Adapter is an in-memory persist.Adapter implementation.
type Adapter[T any] struct {
	mu      sync.RWMutex
	records map[string]T
	pending bool
}

// New constructs an empty adapter.
func New[T any](opts ...Option) *Adapter[T] {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Adapter[T]{
		records: map[string]T{},
		pending: cfg.pending,
	}
}

// Seed stores value under key without going through the adapter contract,
// so tests can arrange pre-existing backing data.
func (a *Adapter[T]) Seed(key string, value T) {
	a.mu.Lock()
	a.records[key] = value
	a.mu.Unlock()
}

// Get implements persist.Adapter.
func (a *Adapter[T]) Get(ctx context.Context, key string) persist.Lookup[T] {
	if !a.pending {
		return a.lookup(key)
	}
	ch := make(chan persist.LookupResult[T], 1)
	go func() {
		res, _ := a.lookup(key).Resolved()
		ch <- res
	}()
	return persist.Pending(ch)
}

func (a *Adapter[T]) lookup(key string) persist.Lookup[T] {
	a.mu.RLock()
	value, ok := a.records[key]
	a.mu.RUnlock()
	if !ok {
		return persist.ImmediateMissing[T]()
	}
	return persist.Immediate(value)
}

// Set implements persist.Adapter.
func (a *Adapter[T]) Set(_ context.Context, key string, value T) error {
	a.mu.Lock()
	a.records[key] = value
	a.mu.Unlock()
	return nil
}

// Remove implements persist.Adapter.
func (a *Adapter[T]) Remove(_ context.Context, key string) error {
	a.mu.Lock()
	delete(a.records, key)
	a.mu.Unlock()
	return nil
}

// Len reports the number of stored keys.
func (a *Adapter[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.records)
}
