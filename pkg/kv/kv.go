// Package kv defines the key/value capability the contract store persists
// through, plus the bundled adapters (memory, file, SQLite, Redis, S3).
//
// The store uses a single fixed key and full-replace writes, so any medium
// that can hold one opaque blob per key satisfies the interface.
package kv

import "context"

// Store is a durable or in-memory key/value medium.
type Store interface {
	// Read returns the value stored under key. ok is false when the key has
	// never been written; err is reserved for medium failures.
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Write replaces the value stored under key.
	Write(ctx context.Context, key string, value []byte) error
}
