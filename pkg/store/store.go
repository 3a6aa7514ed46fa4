package store

import "context"

// Store saves and loads state values by key.
type Store interface {
	// Save encodes v and writes it under key, replacing any previous value.
	Save(ctx context.Context, key Key, v any) error
	// Load decodes the value under key into dst. Returns ErrNotFound when
	// nothing is stored.
	Load(ctx context.Context, key Key, dst any) error
	// Delete removes the value under key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key Key) error
}
