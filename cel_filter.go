package persist

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
)

// CELFilterOption configures the CEL filter engine.
type CELFilterOption func(*celFilter)

// CELFilterWithCache wires a ProgramCache into the CEL engine.
func CELFilterWithCache(cache ProgramCache) CELFilterOption {
	return func(f *celFilter) {
		f.cache = cache
	}
}

type celFilter struct {
	cache ProgramCache
}

// NewCELFilter constructs a FilterEvaluator backed by cel-go. Predicates
// are CEL expressions over `key` (string) and `value` (the snapshot).
func NewCELFilter(opts ...CELFilterOption) FilterEvaluator {
	f := &celFilter{}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

func (f *celFilter) Compile(expression string) (CompiledFilter, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	program, err := f.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &celCompiledFilter{program: program}, nil
}

func (f *celFilter) loadOrCompile(expression string) (celgo.Program, error) {
	if f.cache != nil {
		if cached, ok := f.cache.Get(expression); ok {
			if program, ok := cached.(celgo.Program); ok {
				return program, nil
			}
		}
	}

	env, err := celgo.NewEnv(
		celgo.Variable("key", celgo.StringType),
		celgo.Variable("value", celgo.DynType),
	)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	program, err := env.Program(checked)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.Set(expression, program)
	}
	return program, nil
}

type celCompiledFilter struct {
	program celgo.Program
}

func (r *celCompiledFilter) Match(key string, snapshot any) (bool, error) {
	out, _, err := r.program.Eval(map[string]any{
		"key":   key,
		"value": snapshot,
	})
	if err != nil {
		return false, err
	}
	match, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("predicate must return bool, got %T", out.Value())
	}
	return match, nil
}
