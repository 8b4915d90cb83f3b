// internal/localstore/pqstore.go
package localstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PQStore is a BlobStore backed by a single Postgres table, for
// deployments that want state to outlive the host machine.
type PQStore struct {
	db *sql.DB
}

// NewPQStore wraps an open connection. The caller owns the connection.
func NewPQStore(db *sql.DB) *PQStore {
	return &PQStore{db: db}
}

// OpenPQStore connects to Postgres and ensures the blobs table exists.
func OpenPQStore(ctx context.Context, databaseURL string) (*PQStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := NewPQStore(db)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the blobs table if it is missing.
func (s *PQStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS blobs (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create blobs table: %w", err)
	}
	return nil
}

// Get reads the blob for key.
func (s *PQStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE key = $1`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read blob %q: %w", key, err)
	}
	return data, true, nil
}

// Put upserts the blob for key.
func (s *PQStore) Put(ctx context.Context, key string, data []byte) error {
	// pq encodes []byte as bytea, which jsonb rejects; send text instead.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (key, data) VALUES ($1, $2::jsonb)
		ON CONFLICT (key) DO UPDATE SET data = $2::jsonb, updated_at = NOW()
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("write blob %q: %w", key, err)
	}
	return nil
}

// Delete removes the blob for key; deleting an absent key is a no-op.
func (s *PQStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *PQStore) Close() error {
	return s.db.Close()
}
