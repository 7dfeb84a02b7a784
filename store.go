package persist

import (
	"context"
	"time"

	"github.com/goliatone/go-persist/pkg/reactive"
)

// New constructs a Store for key backed by adapter. The in-memory value
// starts at defaultValue. Unless disabled via WithAutoInit(false) the
// backing store is loaded immediately; failures on that path are surfaced
// through the store logger since there is no caller to return them to.
func New[T any](key string, defaultValue T, adapter Adapter[T], opts ...StoreOption) *Store[T] {
	cfg := applyStoreOptions(opts)
	s := &Store[T]{
		key:          key,
		defaultValue: defaultValue,
		adapter:      adapter,
		cell:         reactive.NewCell(defaultValue),
		cfg:          cfg,
	}
	if cfg.autoInit {
		// Init logs every load attempt, so the returned error is already
		// accounted for.
		_ = s.Init(cfg.initCtx)
	}
	return s
}

// Init drives the load state machine.
//
// Without Force it is idempotent: once initialized, or while a load is
// outstanding, it returns immediately without touching the adapter. An
// immediate adapter result is applied inline before Init returns; a pending
// result is applied when it settles, and reads keep returning the pre-load
// value until then.
//
// A first successful load replaces the in-memory value outright; the
// adapter is the source of truth once present. A forced reload instead
// merges the loaded value over the current in-memory value, so mutations
// made since the last load survive for keys the backing store does not
// carry. An absent key leaves the value untouched on both paths.
//
// Load failures leave the store uninitialized: the immediate path returns
// them, the pending path reports them through the store logger and Wait.
func (s *Store[T]) Init(ctx context.Context, opts ...InitOption) error {
	initCfg := applyInitOptions(opts)

	s.mu.Lock()
	if !initCfg.force && (s.initialized || s.loading != nil) {
		s.mu.Unlock()
		return nil
	}
	// Reload merging only applies when a previous load completed; a forced
	// init on a fresh store is still a first load.
	mergeLoad := initCfg.force && s.initialized
	s.mu.Unlock()

	start := time.Now()
	lookup := s.adapter.Get(ctx, s.key)
	if res, settled := lookup.Resolved(); settled {
		err := s.applyLoad(res, mergeLoad)
		s.log(OpLoad, time.Since(start), err)
		return err
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.loading = done
	s.mu.Unlock()

	go func() {
		res := lookup.Await(ctx)
		err := s.applyLoad(res, mergeLoad)
		s.mu.Lock()
		if s.loading == done {
			s.loading = nil
		}
		s.loadErr = err
		s.mu.Unlock()
		s.log(OpLoad, time.Since(start), err)
		close(done)
	}()
	return nil
}

// applyLoad applies a settled lookup. Outstanding loads are not ordered
// against each other, so the last resolution applied wins.
func (s *Store[T]) applyLoad(res LookupResult[T], mergeLoad bool) error {
	if res.Err != nil {
		return &LoadError{Key: s.key, Err: res.Err}
	}

	s.writeMu.Lock()
	if res.Found {
		next := res.Value
		if mergeLoad {
			merged, err := mergeInto(s.cell.Get(), res.Value)
			if err != nil {
				s.writeMu.Unlock()
				return &LoadError{Key: s.key, Err: err}
			}
			next = merged
		}
		s.cell.Set(next)
	}
	s.writeMu.Unlock()

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
	return nil
}

// Wait blocks until any outstanding deferred load settles and returns its
// result, giving the asynchronous load path a synchronous caller. It returns
// immediately when no load is outstanding.
func (s *Store[T]) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.loading
	err := s.loadErr
	s.mu.Unlock()
	if done == nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-done:
		s.mu.Lock()
		err = s.loadErr
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get returns the current in-memory value by identity. Before the first
// successful load this is the default value.
func (s *Store[T]) Get() T {
	return s.cell.Get()
}

// Set replaces the current value outright and writes it through to the
// adapter. The in-memory update and its notification happen before the
// adapter write, and a write failure never rolls them back.
func (s *Store[T]) Set(ctx context.Context, value T) error {
	return s.writeThrough(ctx, value)
}

// Reset returns the value to the default and removes the backing key.
func (s *Store[T]) Reset(ctx context.Context) error {
	s.writeMu.Lock()
	s.cell.Set(s.defaultValue)
	s.writeMu.Unlock()

	start := time.Now()
	err := s.adapter.Remove(ctx, s.key)
	if err != nil {
		err = &WriteError{Key: s.key, Op: OpRemove, Err: err}
	}
	s.log(OpRemove, time.Since(start), err)
	return err
}

func (s *Store[T]) writeThrough(ctx context.Context, value T) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.writeLocked(ctx, value)
}

// writeLocked applies value to the cell and writes it through. Callers hold
// writeMu so notification and adapter write order match call order.
func (s *Store[T]) writeLocked(ctx context.Context, value T) error {
	s.cell.Set(value)

	start := time.Now()
	err := s.adapter.Set(ctx, s.key, value)
	if err != nil {
		err = &WriteError{Key: s.key, Op: OpWrite, Err: err}
	}
	s.log(OpWrite, time.Since(start), err)
	return err
}
