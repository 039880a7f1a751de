package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renato0307/studycal/internal/logging"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger forwards GORM output to the studycal logger
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) log() *slog.Logger {
	return logging.Logger.With("component", "gorm")
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		l.log().InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		l.log().WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		l.log().ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []any{"duration", elapsed, "sql", sql, "rows", rows}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log().ErrorContext(ctx, "gorm query error", append(attrs, "error", err)...)
	case elapsed > slowQueryThreshold:
		l.log().WarnContext(ctx, "slow query", attrs...)
	default:
		l.log().DebugContext(ctx, "gorm query", attrs...)
	}
}

func newGormLogger() logger.Interface {
	if logging.DebugEnabled() {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}
