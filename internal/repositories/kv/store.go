// Package kv is the persistence substrate of notekeeper: a key -> string
// store with get, set and remove. A read returns the last written value or
// reports absence; a write replaces the value as a whole.
//
// Backends: SQLite (the default on-device storage), Redis and an in-memory
// map. Every backend wraps its failures with common.ErrStorage.
package kv

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// Store is the key-value substrate both collections and the session slot
// live in.
type Store interface {
	// Get returns the value under key. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value under key.
	Set(ctx context.Context, key string, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}

func storageError(op, key string, err error) error {
	return fmt.Errorf("failed to %s value[%s]: %w: %w", op, key, common.ErrStorage, err)
}
