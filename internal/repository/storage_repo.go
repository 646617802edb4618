package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type StorageSQLite struct {
	db *sql.DB
}

func NewStorageSQLite(db *sql.DB) *StorageSQLite {
	return &StorageSQLite{db: db}
}

var _ LocalStorage = (*StorageSQLite)(nil)

const (
	upsertItemSQL = `
		INSERT INTO local_storage (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`
	selectItemSQL = `SELECT value FROM local_storage WHERE key = ?`
	deleteItemSQL = `DELETE FROM local_storage WHERE key = ?`
)

// GetItem returns ("", false, nil) when the key is absent.
func (r *StorageSQLite) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, selectItemSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select item %q: %w", key, err)
	}
	return value, true, nil
}

// SetItem inserts or replaces the value stored under key.
func (r *StorageSQLite) SetItem(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, upsertItemSQL, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert item %q: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (r *StorageSQLite) RemoveItem(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteItemSQL, key); err != nil {
		return fmt.Errorf("delete item %q: %w", key, err)
	}
	return nil
}
