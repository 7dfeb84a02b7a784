package persist

import (
	"fmt"
	"strings"
)

// FilterEvaluator compiles watch predicates. Implementations should reuse
// compiled programs through a ProgramCache when one is configured.
type FilterEvaluator interface {
	Compile(expression string) (CompiledFilter, error)
}

// CompiledFilter decides whether a predicate matches one snapshot. The
// predicate sees `key` (the store key) and `value` (the plain structural
// snapshot).
type CompiledFilter interface {
	Match(key string, snapshot any) (bool, error)
}

// ProgramCache stores compiled predicate programs keyed by expression
// strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WatchFilter registers fn to receive only the snapshots for which the
// compiled predicate returns true. The expression is compiled up front so a
// broken predicate fails at subscribe time; per-notification evaluation
// errors are reported to the store logger and the notification is skipped.
//
// The engine defaults to CEL and can be swapped via WithFilterEvaluator.
func (s *Store[T]) WatchFilter(expression string, fn func(snapshot any)) (Subscription, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return Subscription{}, fmt.Errorf("persist: watch filter key=%q: expression must not be empty", s.key)
	}
	filter, err := s.resolveFilterEvaluator().Compile(expression)
	if err != nil {
		return Subscription{}, fmt.Errorf("persist: watch filter key=%q: %w", s.key, err)
	}

	return s.Watch(func(value T) {
		snapshot, err := snapshotOf(value)
		if err != nil {
			s.log(OpFilter, 0, fmt.Errorf("persist: watch filter key=%q: %w", s.key, err))
			return
		}
		match, err := filter.Match(s.key, snapshot)
		if err != nil {
			s.log(OpFilter, 0, fmt.Errorf("persist: watch filter key=%q: %w", s.key, err))
			return
		}
		if match {
			fn(snapshot)
		}
	}), nil
}

func (s *Store[T]) resolveFilterEvaluator() FilterEvaluator {
	if s.cfg.filterEval != nil {
		return s.cfg.filterEval
	}
	s.filterMu.Lock()
	defer s.filterMu.Unlock()
	if s.filterEval == nil {
		s.filterEval = NewCELFilter(CELFilterWithCache(s.cfg.programCache))
	}
	return s.filterEval
}
