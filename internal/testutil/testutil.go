// Package testutil builds throwaway databases and caches for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
)

// NewTestDB opens a private in-memory SQLite database with the schema applied.
func NewTestDB(t *testing.T) *database.DB {
	t.Helper()

	sqlDB, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)

	db := database.NewDB(sqlDB, database.DialectSQLite)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, database.EnsureSchema(ctx, db))

	return db
}

// NewTestCache starts a miniredis server and returns a cache connected to it.
func NewTestCache(t *testing.T) (*infraCache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rc := infraCache.NewRedisCache(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })

	require.NoError(t, rc.Connect(context.Background()))
	return rc, mr
}
