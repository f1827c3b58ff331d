package storage_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/orderbot/internal/storage"
)

func openRaw(t *testing.T) *sql.DB {
	db, err := storage.OpenDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestApplyMigrations(t *testing.T) {
	db := openRaw(t)
	ctx := context.Background()

	require.NoError(t, storage.ApplyMigrations(ctx, db))

	var version string
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version ORDER BY applied_at DESC LIMIT 1").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, storage.CurrentSchemaVersion, version)

	for _, table := range []string{"categories", "products", "orders"} {
		assert.True(t, tableExists(t, db, table), "table %s should exist", table)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db := openRaw(t)
	ctx := context.Background()

	require.NoError(t, storage.ApplyMigrations(ctx, db))
	require.NoError(t, storage.ApplyMigrations(ctx, db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestOrderStatusDefault(t *testing.T) {
	db := openRaw(t)
	ctx := context.Background()
	require.NoError(t, storage.ApplyMigrations(ctx, db))

	_, err := db.Exec("INSERT INTO orders (user_id, items, total) VALUES (1, '[]', 0)")
	require.NoError(t, err)

	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM orders").Scan(&status))
	assert.Equal(t, "new", status)
}

func TestRollbackMigration(t *testing.T) {
	db := openRaw(t)
	ctx := context.Background()

	require.NoError(t, storage.ApplyMigrations(ctx, db))
	require.NoError(t, storage.RollbackMigration(ctx, db))

	assert.False(t, tableExists(t, db, "orders"))
	assert.False(t, tableExists(t, db, "schema_version"))
}
