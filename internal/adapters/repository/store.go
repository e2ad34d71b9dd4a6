// Package repository defines the save-file store interface and its
// in-memory, file, and Postgres implementations. Saves are opaque JSON
// blobs keyed by a save key; the store never inspects them.
package repository

import "context"

// SaveStore provides durable storage for serialized save files.
type SaveStore interface {
	// Load returns the blob stored under key.
	// Returns ErrNotFound when no save exists for the key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save writes the blob under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the save under key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}
