package repository

import "context"

// Entry is one key/value pair written by KVStore.Put. A nil Value deletes
// the key.
type Entry struct {
	Key   string
	Value []byte
}

// KVStore is the persistent key-value store the application state lives in.
// Put applies all entries atomically.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, entries ...Entry) error
	Close() error
}
