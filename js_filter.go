//go:build js_eval

package persist

import (
	"fmt"

	"github.com/dop251/goja"
)

// jsFilter compiles predicates as JavaScript expressions with goja.
type jsFilter struct {
	cache ProgramCache
}

// NewJSFilter constructs a FilterEvaluator backed by goja. Predicates are
// JavaScript expressions over `key` and `value`.
func NewJSFilter(opts ...JSFilterOption) FilterEvaluator {
	cfg := applyJSFilterOptions(opts)
	return &jsFilter{cache: cfg.cache}
}

func (f *jsFilter) Compile(expression string) (CompiledFilter, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	program, err := f.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &jsCompiledFilter{program: program}, nil
}

func (f *jsFilter) loadOrCompile(expression string) (*goja.Program, error) {
	if f.cache != nil {
		if cached, ok := f.cache.Get(expression); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", wrapJSExpression(expression), false)
	if err != nil {
		return nil, err
	}
	if f.cache != nil {
		f.cache.Set(expression, program)
	}
	return program, nil
}

func wrapJSExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

type jsCompiledFilter struct {
	program *goja.Program
}

func (r *jsCompiledFilter) Match(key string, snapshot any) (bool, error) {
	vm := goja.New()
	vm.Set("key", key)
	vm.Set("value", snapshot)
	result, err := vm.RunProgram(r.program)
	if err != nil {
		return false, err
	}
	match, ok := result.Export().(bool)
	if !ok {
		return false, fmt.Errorf("predicate must return bool, got %T", result.Export())
	}
	return match, nil
}

func jsFilterAvailable() bool {
	return true
}
