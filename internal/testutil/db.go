// Package testutil opens throwaway databases and inserts fixtures for
// tests that need a real store.
package testutil

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/evoting-api/internal/db"
	"github.com/vietanh2810/evoting-api/internal/repository/dao"
)

var ErrInjected = errors.New("injected failure")

// NewDB returns a migrated SQLite database that lives for the duration of
// the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "evoting.db"))
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}

// FailDeletesOn makes every DELETE against table fail with ErrInjected.
func FailDeletesOn(t testing.TB, gdb *gorm.DB, table string) {
	t.Helper()

	err := gdb.Callback().Delete().Before("gorm:delete").Register("testutil:fail_delete_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(ErrInjected)
		}
	})
	require.NoError(t, err)
}

// FailQueriesOn makes every SELECT against table fail with ErrInjected.
func FailQueriesOn(t testing.TB, gdb *gorm.DB, table string) {
	t.Helper()

	err := gdb.Callback().Query().Before("gorm:query").Register("testutil:fail_query_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(ErrInjected)
		}
	})
	require.NoError(t, err)
}

func Count(t testing.TB, gdb *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, gdb.Model(model).Where(query, args...).Count(&n).Error)

	return n
}
