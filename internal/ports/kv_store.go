package ports

import "context"

// KVStore is the durable key to string-blob medium behind every repository
type KVStore interface {
	// Get returns the value stored under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Atomic runs fn against a transactional view of the store. Writes made
	// through tx are persisted only if fn returns nil.
	Atomic(ctx context.Context, fn func(tx KVStore) error) error
}

// ClosableKVStore is a KVStore holding resources that must be released
type ClosableKVStore interface {
	KVStore
	Close() error
}
