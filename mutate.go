package persist

import (
	"context"
	"fmt"
)

// Mutator mutates a structural clone of the current value. The original is
// never touched; effective changes are captured as a partial and merged.
type Mutator[T any] func(draft *T) error

// Deriver computes a partial from a read-only copy of the current value.
type Deriver[T any] func(current T) any

// Merge deep-merges partial into the current value and writes the resulting
// whole value through to the adapter. partial is any JSON-shaped value,
// typically a map[string]any or a struct whose zero fields are omitted from
// encoding; keys absent from it are left untouched at every depth.
func (s *Store[T]) Merge(ctx context.Context, partial any) error {
	part, err := snapshotOf(partial)
	if err != nil {
		return fmt.Errorf("persist: merge key=%q: %w", s.key, err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.mergeLocked(ctx, part)
}

// Update clones the current value, applies fn to the clone, captures the
// effective changes as a partial, and merges it exactly as Merge would. An
// error from fn aborts before anything is written or notified.
func (s *Store[T]) Update(ctx context.Context, fn Mutator[T]) error {
	if fn == nil {
		return fmt.Errorf("persist: update key=%q: mutator is required", s.key)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	base, err := snapshotOf(s.cell.Get())
	if err != nil {
		return fmt.Errorf("persist: update key=%q: %w", s.key, err)
	}
	draft, err := decodeAs[T](base)
	if err != nil {
		return fmt.Errorf("persist: update key=%q: %w", s.key, err)
	}
	if err := fn(&draft); err != nil {
		return err
	}
	after, err := snapshotOf(draft)
	if err != nil {
		return fmt.Errorf("persist: update key=%q: %w", s.key, err)
	}
	part, _ := diffValues(base, after)
	return s.mergeLocked(ctx, part)
}

// Derive hands a read-only copy of the current value to fn and merges the
// partial it returns.
func (s *Store[T]) Derive(ctx context.Context, fn Deriver[T]) error {
	if fn == nil {
		return fmt.Errorf("persist: derive key=%q: deriver is required", s.key)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	base, err := snapshotOf(s.cell.Get())
	if err != nil {
		return fmt.Errorf("persist: derive key=%q: %w", s.key, err)
	}
	current, err := decodeAs[T](base)
	if err != nil {
		return fmt.Errorf("persist: derive key=%q: %w", s.key, err)
	}
	part, err := snapshotOf(fn(current))
	if err != nil {
		return fmt.Errorf("persist: derive key=%q: %w", s.key, err)
	}
	return s.mergeLocked(ctx, part)
}

// mergeLocked merges a structural partial over the current value and writes
// the result through. Callers hold writeMu.
func (s *Store[T]) mergeLocked(ctx context.Context, part any) error {
	base, err := snapshotOf(s.cell.Get())
	if err != nil {
		return fmt.Errorf("persist: merge key=%q: %w", s.key, err)
	}
	merged := base
	if part != nil {
		merged = overlay(base, part)
	}
	next, err := decodeAs[T](merged)
	if err != nil {
		return fmt.Errorf("persist: merge key=%q: %w", s.key, err)
	}
	return s.writeLocked(ctx, next)
}
