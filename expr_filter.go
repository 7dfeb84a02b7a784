package persist

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprFilterOption configures the expr filter engine.
type ExprFilterOption func(*exprFilter)

// ExprFilterWithCache wires a ProgramCache into the expr engine.
func ExprFilterWithCache(cache ProgramCache) ExprFilterOption {
	return func(f *exprFilter) {
		f.cache = cache
	}
}

// exprFilter compiles predicates with github.com/expr-lang/expr.
type exprFilter struct {
	cache ProgramCache
}

// NewExprFilter constructs a FilterEvaluator backed by expr-lang/expr.
func NewExprFilter(opts ...ExprFilterOption) FilterEvaluator {
	f := &exprFilter{}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

func (f *exprFilter) Compile(expression string) (CompiledFilter, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	program, err := f.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &exprCompiledFilter{program: program}, nil
}

func (f *exprFilter) loadOrCompile(expression string) (*exprvm.Program, error) {
	if f.cache != nil {
		if cached, ok := f.cache.Get(expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	program, err := exprlang.Compile(expression)
	if err != nil {
		return nil, err
	}
	if f.cache != nil {
		f.cache.Set(expression, program)
	}
	return program, nil
}

type exprCompiledFilter struct {
	program *exprvm.Program
}

func (r *exprCompiledFilter) Match(key string, snapshot any) (bool, error) {
	result, err := exprlang.Run(r.program, map[string]any{
		"key":   key,
		"value": snapshot,
	})
	if err != nil {
		return false, err
	}
	match, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("predicate must return bool, got %T", result)
	}
	return match, nil
}
