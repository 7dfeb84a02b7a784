package persist

import "context"

// Adapter is the backing key-value contract a Store persists through.
// Implementations own encoding and transport; absence is reported through
// LookupResult.Found, never through an error. Get may settle immediately or
// hand back a pending channel when the backing store is asynchronous.
type Adapter[T any] interface {
	Get(ctx context.Context, key string) Lookup[T]
	Set(ctx context.Context, key string, value T) error
	Remove(ctx context.Context, key string) error
}

// LookupResult is the settled outcome of an adapter read.
type LookupResult[T any] struct {
	Value T
	Found bool
	Err   error
}

// Lookup is the explicit sum of an immediate and a pending adapter read, so
// synchronous and asynchronous adapters flow through one branch in Init
// instead of duck-typing on the return value.
type Lookup[T any] struct {
	settled bool
	result  LookupResult[T]
	pending <-chan LookupResult[T]
}

// Immediate wraps a value that was read synchronously.
func Immediate[T any](value T) Lookup[T] {
	return Lookup[T]{settled: true, result: LookupResult[T]{Value: value, Found: true}}
}

// ImmediateMissing reports synchronously that the key has never been written.
func ImmediateMissing[T any]() Lookup[T] {
	return Lookup[T]{settled: true}
}

// ImmediateErr wraps a synchronous read failure.
func ImmediateErr[T any](err error) Lookup[T] {
	return Lookup[T]{settled: true, result: LookupResult[T]{Err: err}}
}

// Pending wraps a read that settles later. The adapter must send exactly one
// result on ch.
func Pending[T any](ch <-chan LookupResult[T]) Lookup[T] {
	return Lookup[T]{pending: ch}
}

// Resolved returns the settled result when the lookup was immediate.
func (l Lookup[T]) Resolved() (LookupResult[T], bool) {
	return l.result, l.settled
}

// Await blocks until the lookup settles or ctx is done.
func (l Lookup[T]) Await(ctx context.Context) LookupResult[T] {
	if l.settled {
		return l.result
	}
	if l.pending == nil {
		return LookupResult[T]{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case res := <-l.pending:
		return res
	case <-ctx.Done():
		return LookupResult[T]{Err: ctx.Err()}
	}
}
