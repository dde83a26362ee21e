// Package kv is the durable string-keyed store every Tamamla record lives in.
//
// Values are opaque strings; callers serialize whole collections into one
// value per key. Two implementations exist, both over dbx.DBTX so they can run
// inside a transaction: SQLiteStore (the default, a local file) and
// PostgresStore.
package kv

import "context"

// Store is a string key/value store.
type Store interface {
	// GetString returns the value under key. ok is false when the key is absent.
	GetString(ctx context.Context, key string) (value string, ok bool, err error)

	// SetString inserts or replaces the value under key.
	SetString(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
