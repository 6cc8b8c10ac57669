package repository

import (
	"context"
	"database/sql"
	"errors"
)

// MetadataKeyFileNames holds the JSON-encoded sorted list of every file name
// successfully ingested.
const MetadataKeyFileNames = "fileNames"

type MetadataSQLite struct {
	db *sql.DB
}

func NewMetadataSQLite(db *sql.DB) *MetadataSQLite {
	return &MetadataSQLite{db: db}
}

var _ MetadataRepo = (*MetadataSQLite)(nil)

const (
	selectMetadataSQL = `SELECT value FROM metadata WHERE key = ?`
	upsertMetadataSQL = `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value
	`
)

// Get returns the stored value for key; ok=false when the key was never set.
func (r *MetadataSQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, selectMetadataSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *MetadataSQLite) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, upsertMetadataSQL, key, value)
	return err
}
