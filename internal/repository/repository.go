package repository

import (
	"context"
	"database/sql"
)

// LocalStorage is a durable string key/value store that survives restarts.
type LocalStorage interface {
	// GetItem returns the stored value and whether the key exists.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type Repository struct {
	Storage LocalStorage
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Storage: NewStorageSQLite(db),
	}
}
