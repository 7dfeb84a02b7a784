// Package sqlitestore persists store values as JSON blobs in a single
// SQLite table, one row per store key.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	_ "modernc.org/sqlite" // pure go sqlite driver

	persist "github.com/goliatone/go-persist"
)

// Adapter is a SQLite-backed persist.Adapter implementation.
type Adapter[T any] struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at path and ensures the
// settings table exists.
func Open[T any](path string) (*Adapter[T], error) {
	if path == "" {
		return nil, errors.New("sqlitestore: path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Adapter[T]{db: db}, nil
}

// Close closes the underlying database.
func (a *Adapter[T]) Close() error {
	return a.db.Close()
}

// Get implements persist.Adapter. A row that does not exist maps to an
// absent value, not an error.
func (a *Adapter[T]) Get(ctx context.Context, key string) persist.Lookup[T] {
	var payload []byte
	err := a.db.QueryRowContext(ctx, `SELECT payload FROM settings WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persist.ImmediateMissing[T]()
		}
		return persist.ImmediateErr[T](err)
	}
	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		return persist.ImmediateErr[T](err)
	}
	return persist.Immediate(value)
}

// Set implements persist.Adapter.
func (a *Adapter[T]) Set(ctx context.Context, key string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = a.db.ExecContext(ctx, `INSERT INTO settings (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`, key, payload)
	return err
}

// Remove implements persist.Adapter.
func (a *Adapter[T]) Remove(ctx context.Context, key string) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	return err
}
