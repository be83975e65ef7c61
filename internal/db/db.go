package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vietanh2810/evoting-api/internal/config"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         newZapLogger(gormlogger.Warn),
		TranslateError: true,
	}
}

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return OpenPostgresWithURL(conf.DSN())
}

func OpenPostgresWithURL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("sqlDB.Ping -> %w", err)
	}

	return db, nil
}

// OpenSQLite opens a SQLite database through the pure Go driver. SQLite
// serialises writers, so the pool is pinned to a single connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func Open(conf *config.AppConfig, databaseURL string) (*gorm.DB, error) {
	switch conf.Database.Driver {
	case config.DriverSQLite:
		return OpenSQLite(conf.SQLite.Path)
	default:
		if databaseURL != "" {
			return OpenPostgresWithURL(databaseURL)
		}

		return OpenPostgres(conf.Postgres)
	}
}
