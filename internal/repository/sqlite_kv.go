package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/punchcard/internal/db"
)

// SQLiteKVStore implements KVStore on the kv_entries table.
type SQLiteKVStore struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// NewSQLiteKVStore creates a KVStore over a migrated database.
func NewSQLiteKVStore(database *sql.DB) *SQLiteKVStore {
	return &SQLiteKVStore{db: database, uow: db.NewSQLiteUnitOfWork(database)}
}

func (s *SQLiteKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteKVStore) Put(ctx context.Context, entries ...Entry) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, e := range entries {
			if err := putEntry(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

// Revision returns how many times key has been written.
func (s *SQLiteKVStore) Revision(ctx context.Context, key string) (int, error) {
	var rev int
	err := s.db.QueryRowContext(ctx, `SELECT revision FROM kv_entries WHERE key = ?`, key).Scan(&rev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return 0, fmt.Errorf("reading revision of %q: %w", key, err)
	}
	return rev, nil
}

func (s *SQLiteKVStore) Close() error {
	return s.db.Close()
}

func putEntry(ctx context.Context, tx db.DBTX, e Entry) error {
	if e.Value == nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, e.Key); err != nil {
			return fmt.Errorf("deleting key %q: %w", e.Key, err)
		}
		return nil
	}

	query := `INSERT INTO kv_entries (key, value, updated_at, revision) VALUES (?, ?, ?, 1)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at,
			revision = kv_entries.revision + 1`
	if _, err := tx.ExecContext(ctx, query, e.Key, e.Value, nowUTC()); err != nil {
		return fmt.Errorf("writing key %q: %w", e.Key, err)
	}
	return nil
}
