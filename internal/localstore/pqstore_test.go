package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to a PostgreSQL database for testing and skips
// the test if no server is reachable.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	pgUser := envOr("PGUSER", "user")
	pgPassword := envOr("PGPASSWORD", "password")
	pgHost := envOr("PGHOST", "localhost")
	pgPort := envOr("PGPORT", "5432")
	pgDB := envOr("PGDATABASE", "testdb")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pgHost, pgPort, pgUser, pgPassword, pgDB)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)

	if err := db.Ping(); err != nil {
		t.Skipf("skipping postgres tests: could not connect: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func TestPQStoreRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	s := NewPQStore(db)
	require.NoError(t, s.EnsureSchema(ctx))

	key := fmt.Sprintf("test-cart-%d", os.Getpid())
	defer s.Delete(ctx, key)

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, key, []byte(`[{"productId":1,"quantity":2}]`)))

	data, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"productId":1,"quantity":2}]`, string(data))

	// Upsert replaces the whole blob.
	require.NoError(t, s.Put(ctx, key, []byte(`[]`)))
	data, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(data))

	require.NoError(t, s.Delete(ctx, key))
	_, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
