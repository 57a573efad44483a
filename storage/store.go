package storage

import "context"

// Store is a durable key-value entry store backing the session state.
// Implementations: file.Client (default), redis.Client (REDIS_URL set),
// memory.Client (tests and -dev runs without a data folder).
type Store interface {
	Set(ctx context.Context, key string, value []byte) error
	// Get returns errors.ErrKeyNotFound when the key has never been set
	// or has been deleted.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
