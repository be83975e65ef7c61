package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// zapLogger sends gorm's output to the global zap logger. Lookups that
// find nothing and unique violations are reported to callers as errors
// they handle, so they are not logged here.
type zapLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newZapLogger(level gormlogger.LogLevel) *zapLogger {
	return &zapLogger{level: level, slowThreshold: slowQueryThreshold}
}

func (l *zapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level

	return &clone
}

func (l *zapLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		zap.S().Infof(msg, args...)
	}
}

func (l *zapLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		zap.S().Warnf(msg, args...)
	}
}

func (l *zapLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		zap.S().Errorf(msg, args...)
	}
}

func (l *zapLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !expectedError(err):
		sql, rows := fc()
		zap.L().Error("query failed",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		zap.L().Warn("slow query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		zap.L().Debug("query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		)
	}
}

func expectedError(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
