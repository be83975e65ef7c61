package db_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/evoting-api/internal/config"
	"github.com/vietanh2810/evoting-api/internal/db"
)

func TestOpen_SQLite(t *testing.T) {
	conf := &config.AppConfig{
		Database: &config.DatabaseConfig{Driver: config.DriverSQLite},
		SQLite:   &config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "evoting.db")},
	}

	gdb, err := db.Open(conf, "postgres://ignored")
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpenPostgresWithURL_Unreachable(t *testing.T) {
	_, err := db.OpenPostgresWithURL("host=127.0.0.1 port=1 user=x password=x dbname=x sslmode=disable connect_timeout=1")
	assert.Error(t, err)
}
