package persist

import "sync"

// DefaultFunc produces the default value for a key's store.
type DefaultFunc[T any] func(key string) T

// Registry maps keys to Store instances with creation on first use, for
// applications that keep one store per settings namespace at process scope.
// All stores share the registry's adapter and options.
type Registry[T any] struct {
	mu       sync.Mutex
	adapter  Adapter[T]
	defaults DefaultFunc[T]
	options  []StoreOption
	stores   map[string]*Store[T]
}

// NewRegistry constructs a Registry. defaults may be nil, in which case
// every store starts at T's zero value.
func NewRegistry[T any](adapter Adapter[T], defaults DefaultFunc[T], opts ...StoreOption) *Registry[T] {
	return &Registry[T]{
		adapter:  adapter,
		defaults: defaults,
		options:  opts,
		stores:   map[string]*Store[T]{},
	}
}

// Get returns the store for key, creating it on first use. Creation runs
// the registry's store options, so auto-init applies unless disabled.
func (r *Registry[T]) Get(key string) *Store[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if store, ok := r.stores[key]; ok {
		return store
	}
	var defaultValue T
	if r.defaults != nil {
		defaultValue = r.defaults(key)
	}
	store := New(key, defaultValue, r.adapter, r.options...)
	r.stores[key] = store
	return store
}

// Lookup returns the store for key only if it already exists.
func (r *Registry[T]) Lookup(key string) (*Store[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[key]
	return store, ok
}

// Range calls fn for every live store until fn returns false.
func (r *Registry[T]) Range(fn func(key string, store *Store[T]) bool) {
	r.mu.Lock()
	snapshot := make(map[string]*Store[T], len(r.stores))
	for key, store := range r.stores {
		snapshot[key] = store
	}
	r.mu.Unlock()

	for key, store := range snapshot {
		if !fn(key, store) {
			return
		}
	}
}

// Len reports the number of stores created so far.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
