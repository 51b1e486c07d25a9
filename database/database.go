package database

import (
	"context"
	"fmt"
	"time"

	"transit-dashboard/config"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the SQLite file named in cfg and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.Path
	if dsn == "" {
		dsn = "transit.db"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  NewGormLogger(cfg.LogQueries),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dsn, err)
	}

	if dsn == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	log.Info().Str("path", dsn).Msg("Database ready")
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get sql.DB for close")
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
		return
	}
	log.Info().Msg("Database closed")
}

// Ping checks the connection and reports how long the round trip took
func Ping(ctx context.Context, db *gorm.DB) (time.Duration, error) {
	start := time.Now()
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return 0, err
	}
	if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
