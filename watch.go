package persist

import (
	"github.com/google/uuid"
	"github.com/goliatone/go-persist/pkg/reactive"
)

// Subscription is the handle returned by Watch and WatchFilter.
type Subscription struct {
	id     string
	cancel func(id string)
}

// ID returns the subscription identifier.
func (s Subscription) ID() string {
	return s.id
}

// Cancel removes the subscription. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel(s.id)
	}
}

// Watch registers fn to receive the complete new value on every mutation,
// synchronously and in call order, one notification per Set/Merge/Update/
// Derive/Reset. fn runs on the mutating goroutine and must not call the
// store's mutation methods.
func (s *Store[T]) Watch(fn func(value T)) Subscription {
	id := uuid.NewString()
	s.cell.Observe(id, reactive.ObserverFunc[T](fn))
	return Subscription{id: id, cancel: s.cell.Forget}
}

// WatchNow behaves like Watch and additionally returns the current value, so
// a computation can start from present state without missing the next write.
func (s *Store[T]) WatchNow(fn func(value T)) (T, Subscription) {
	id := uuid.NewString()
	value := s.cell.Track(id, reactive.ObserverFunc[T](fn))
	return value, Subscription{id: id, cancel: s.cell.Forget}
}
