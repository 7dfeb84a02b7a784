package reactive

import "sync"

// Observer receives the complete new value on every cell write.
type Observer[T any] interface {
	Notify(value T)
}

// ObserverFunc allows plain functions to satisfy Observer.
type ObserverFunc[T any] func(value T)

// Notify dispatches to the underlying function.
func (fn ObserverFunc[T]) Notify(value T) {
	if fn != nil {
		fn(value)
	}
}

// Cell holds a value and fans out writes to registered observers. Writes
// notify synchronously so a subscriber observes every mutation, in order,
// with no coalescing.
type Cell[T any] struct {
	mu        sync.RWMutex
	value     T
	observers map[string]Observer[T]
	order     []string
}

// NewCell constructs a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value:     initial,
		observers: map[string]Observer[T]{},
	}
}

// Get returns the current value without registering any observation.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores value and notifies every observer before returning. Callers
// serialise Set invocations when ordering across writers matters.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	c.value = value
	observers := make([]Observer[T], 0, len(c.order))
	for _, id := range c.order {
		if o, ok := c.observers[id]; ok {
			observers = append(observers, o)
		}
	}
	c.mu.Unlock()

	for _, o := range observers {
		o.Notify(value)
	}
}

// Observe registers o under id. Registering an id twice replaces the previous
// observer but keeps its original position in notification order.
func (c *Cell[T]) Observe(id string, o Observer[T]) {
	if id == "" || o == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.observers[id]; !ok {
		c.order = append(c.order, id)
	}
	c.observers[id] = o
}

// Track registers o under id and returns the current value in one step, so a
// computation can start from the present state without missing the next
// write.
func (c *Cell[T]) Track(id string, o Observer[T]) T {
	c.Observe(id, o)
	return c.Get()
}

// Forget removes the observer registered under id.
func (c *Cell[T]) Forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.observers[id]; !ok {
		return
	}
	delete(c.observers, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of registered observers.
func (c *Cell[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.observers)
}
