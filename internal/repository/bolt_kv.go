package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucket = "punchcard"

// BoltKVStore implements KVStore on a single bbolt bucket.
type BoltKVStore struct {
	storage *bbolt.DB
}

// NewBoltKVStore opens (or creates) a bbolt database at path.
func NewBoltKVStore(path string) (*BoltKVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating bolt directory: %w", err)
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	}); err != nil {
		_ = instance.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltKVStore{storage: instance}, nil
}

func (b *BoltKVStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.storage.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucket)).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		// v is only valid for the life of the transaction.
		value = cloneBytes(v)
		return nil
	})
	return value, err
}

func (b *BoltKVStore) Put(ctx context.Context, entries ...Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucket))
		for _, e := range entries {
			if e.Value == nil {
				if err := bucket.Delete([]byte(e.Key)); err != nil {
					return fmt.Errorf("deleting key %q: %w", e.Key, err)
				}
				continue
			}
			if err := bucket.Put([]byte(e.Key), e.Value); err != nil {
				return fmt.Errorf("writing key %q: %w", e.Key, err)
			}
		}
		return nil
	})
}

func (b *BoltKVStore) Close() error {
	return b.storage.Close()
}
