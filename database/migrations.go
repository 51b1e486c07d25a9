package database

import (
	"context"
	"fmt"

	"transit-dashboard/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RunMigrations creates the schema and the composite indexes the analytics queries use
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	enableSQLiteOptimizations(ctx, db)

	if err := db.WithContext(ctx).AutoMigrate(model.Entities()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	createAdditionalIndexes(ctx, db)
	return nil
}

func enableSQLiteOptimizations(ctx context.Context, db *gorm.DB) {
	optimizations := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range optimizations {
		if err := db.WithContext(ctx).Exec(pragma).Error; err != nil {
			log.Warn().Err(err).Str("pragma", pragma).Msg("Failed to execute pragma")
		} else {
			log.Debug().Str("pragma", pragma).Msg("Executed pragma")
		}
	}
}

func createAdditionalIndexes(ctx context.Context, db *gorm.DB) {
	additionalIndexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_search_logs_route_ts ON search_logs(route_id, timestamp)",
		"CREATE INDEX IF NOT EXISTS idx_complaints_route_ts ON complaints(route_id, timestamp)",
		"CREATE INDEX IF NOT EXISTS idx_complaints_status_ts ON complaints(status, timestamp)",
		"CREATE INDEX IF NOT EXISTS idx_route_paths_route_order ON route_paths(route_id, point_order)",
		"CREATE INDEX IF NOT EXISTS idx_location_shares_user_created ON location_shares(user_id, created_at)",
	}

	for _, indexSQL := range additionalIndexes {
		if err := db.WithContext(ctx).Exec(indexSQL).Error; err != nil {
			log.Warn().Err(err).Str("sql", indexSQL).Msg("Failed to create index")
		}
	}
}
