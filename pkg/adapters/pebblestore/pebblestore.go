// Package pebblestore persists store values in a Pebble database, one key
// per store, values JSON-encoded. Reads are immediate; Pebble serves them
// synchronously from the LSM.
package pebblestore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"

	persist "github.com/goliatone/go-persist"
)

// Options configures the Pebble-backed adapter.
type Options struct {
	// DataDir is the path to the Pebble database directory.
	DataDir string
	// Sync requests a WAL fsync on each write.
	Sync bool
	// PebbleOptions allows advanced tuning. If nil, Pebble defaults apply.
	PebbleOptions *pebble.Options
}

// Adapter is a Pebble-backed persist.Adapter implementation.
type Adapter[T any] struct {
	mu     sync.Mutex
	db     *pebble.DB
	writes *pebble.WriteOptions
}

// Open creates or opens the Pebble database at opts.DataDir.
func Open[T any](opts Options) (*Adapter[T], error) {
	if opts.DataDir == "" {
		return nil, errors.New("pebblestore: Options.DataDir is required")
	}
	po := opts.PebbleOptions
	if po == nil {
		po = &pebble.Options{}
	}
	db, err := pebble.Open(opts.DataDir, po)
	if err != nil {
		return nil, err
	}
	writes := pebble.NoSync
	if opts.Sync {
		writes = pebble.Sync
	}
	return &Adapter[T]{db: db, writes: writes}, nil
}

// Close closes the underlying database.
func (a *Adapter[T]) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// Get implements persist.Adapter. A key Pebble has never seen maps to an
// absent value, not an error.
func (a *Adapter[T]) Get(_ context.Context, key string) persist.Lookup[T] {
	raw, closer, err := a.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return persist.ImmediateMissing[T]()
		}
		return persist.ImmediateErr[T](err)
	}
	payload := append([]byte(nil), raw...)
	if err := closer.Close(); err != nil {
		return persist.ImmediateErr[T](err)
	}

	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		return persist.ImmediateErr[T](err)
	}
	return persist.Immediate(value)
}

// Set implements persist.Adapter.
func (a *Adapter[T]) Set(_ context.Context, key string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return a.db.Set([]byte(key), payload, a.writes)
}

// Remove implements persist.Adapter.
func (a *Adapter[T]) Remove(_ context.Context, key string) error {
	return a.db.Delete([]byte(key), a.writes)
}
