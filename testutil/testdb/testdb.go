// Package testdb opens a migrated in-memory SQLite database for tests.
package testdb

import (
	"testing"

	"github.com/cse-dept/cms-api/database"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh database with every table migrated. The pool holds a
// single connection, which is what keeps the in-memory database alive.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	store, err := database.Open(
		sqlite.Open("file::memory:?_pragma=foreign_keys(1)"),
		logger.Default.LogMode(logger.Silent),
		database.PoolConfig{MaxOpenConns: 1},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Init())
	return store.GetDB()
}
