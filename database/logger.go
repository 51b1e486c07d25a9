package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger routes gorm output through zerolog
type GormLogger struct {
	slowThreshold time.Duration
	logQueries    bool
}

func NewGormLogger(logQueries bool) *GormLogger {
	return &GormLogger{slowThreshold: 200 * time.Millisecond, logQueries: logQueries}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Info().Interface("data", data).Msg(msg)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Warn().Interface("data", data).Msg(msg)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Error().Interface("data", data).Msg(msg)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		log.Error().
			Err(err).
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("GORM error")
	case elapsed > l.slowThreshold:
		sql, rows := fc()
		log.Warn().
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("GORM slow query")
	case l.logQueries:
		sql, rows := fc()
		log.Debug().
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("GORM query")
	}
}
