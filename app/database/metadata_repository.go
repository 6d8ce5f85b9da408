package database

import (
	"database/sql"
	"fmt"
	"time"
)

// metadataRowID is the fixed id of the singleton run-completion row.
const metadataRowID = 1

// MetadataRepository handles the singleton run metadata row
type MetadataRepository struct {
	db *DB
}

func NewMetadataRepository(db *DB) *MetadataRepository {
	return &MetadataRepository{db: db}
}

// SetUpdatedAt stamps the run-completion timestamp, overwriting any
// previous value.
func (r *MetadataRepository) SetUpdatedAt(t time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO metadata (id, updated_at) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at
	`, metadataRowID, t.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to stamp run completion: %w", err)
	}

	return nil
}

// GetUpdatedAt returns the last run-completion timestamp, or the empty
// string when no run has completed yet.
func (r *MetadataRepository) GetUpdatedAt() (string, error) {
	var updatedAt string
	err := r.db.QueryRow("SELECT updated_at FROM metadata WHERE id = ?", metadataRowID).Scan(&updatedAt)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get run metadata: %w", err)
	}

	return updatedAt, nil
}
