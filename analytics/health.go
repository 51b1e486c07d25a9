package analytics

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"transit-dashboard/database"
	"transit-dashboard/metrics"
	"transit-dashboard/model"

	"github.com/rs/zerolog/log"
)

const backupMaxAge = 24 * time.Hour

// System recommendation texts
const (
	RecEnableCaching  = "Consider implementing caching for frequently accessed data"
	RecArchiveData    = "Database size is growing, consider archiving old data"
	RecRefreshBackup  = "Database backup is older than 24 hours"
	RecInvestigate5xx = "API error rate is above 5%, investigate failing requests"
)

// SystemHealth checks the database and cache, summarizes API traffic and storage usage
func (s *Service) SystemHealth(ctx context.Context) (*model.SystemHealth, error) {
	now := s.clock()

	dbHealth := &model.ComponentHealth{Status: model.StatusHealthy, ConnectionPool: "optimal"}
	if rtt, err := database.Ping(ctx, s.db); err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		dbHealth.Status = model.StatusUnhealthy
		dbHealth.ConnectionPool = "unavailable"
	} else {
		dbHealth.ResponseTimeMS = model.Float(millis(rtt))
	}

	cacheHealth := &model.ComponentHealth{Status: model.StatusDisabled}
	if s.health.Cache != nil {
		rtt, enabled, err := s.health.Cache.Ping(ctx)
		switch {
		case !enabled:
			// no remote tier configured
		case err != nil:
			log.Error().Err(err).Msg("Cache health check failed")
			cacheHealth.Status = model.StatusUnhealthy
		default:
			cacheHealth.Status = model.StatusHealthy
			cacheHealth.ResponseTimeMS = model.Float(millis(rtt))
		}
	}

	traffic := metrics.Summary{AvailabilityPct: 100}
	if s.health.Requests != nil {
		traffic = s.health.Requests.Summary()
	}

	dbSize := fileSizeMB(s.health.DatabasePath)
	backup := backupStatus(s.health.BackupPath, now)

	var critical int64
	for _, c := range []*model.ComponentHealth{dbHealth, cacheHealth} {
		if c.Status == model.StatusUnhealthy {
			critical++
		}
	}

	overall := model.HealthExcellent
	switch {
	case dbHealth.Status == model.StatusUnhealthy:
		overall = model.HealthPoor
	case critical > 0, traffic.ErrorRate > 0.05, backup == model.BackupOutdated:
		overall = model.HealthDegraded
	}

	recs := []string{}
	if traffic.AvgResponseMS > 200 {
		recs = append(recs, RecEnableCaching)
	}
	if dbSize > 100 {
		recs = append(recs, RecArchiveData)
	}
	if backup == model.BackupOutdated {
		recs = append(recs, RecRefreshBackup)
	}
	if traffic.ErrorRate > 0.05 {
		recs = append(recs, RecInvestigate5xx)
	}

	return &model.SystemHealth{
		Timestamp:     now.Format(time.RFC3339),
		OverallHealth: overall,
		PerformanceMetrics: &model.PerformanceMetrics{
			Database: dbHealth,
			Cache:    cacheHealth,
			API: &model.APIHealth{
				AvgResponseTimeMS: model.Float(round(traffic.AvgResponseMS, 2)),
				ErrorRate:         model.Float(round(traffic.ErrorRate, 4)),
				UptimePercentage:  model.Float(round(traffic.AvailabilityPct, 2)),
				RequestsLastHour:  model.Int64(traffic.Requests),
			},
			Storage: &model.StorageHealth{
				DatabaseSizeMB: model.Float(dbSize),
				LogSizeMB:      model.Float(fileSizeMB(s.health.LogPath)),
				BackupStatus:   backup,
			},
		},
		ErrorAnalysis: &model.ErrorAnalysis{
			RecentErrors:   model.Int64(traffic.Errors),
			ErrorTrend:     errorTrend(traffic.Errors, traffic.PreviousErrors),
			CriticalIssues: model.Int64(critical),
		},
		Recommendations: recs,
	}, nil
}

func millis(d time.Duration) float64 {
	return round(float64(d.Microseconds())/1000, 2)
}

// fileSizeMB is 0 for an empty path, a missing file or an in-memory database
func fileSizeMB(path string) float64 {
	if path == "" || path == ":memory:" {
		return 0
	}
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("Failed to stat file")
		}
		return 0
	}
	return round(float64(info.Size())/(1<<20), 2)
}

func backupStatus(path string, now time.Time) string {
	if path == "" {
		return model.BackupMissing
	}
	info, err := os.Stat(path)
	if err != nil {
		return model.BackupMissing
	}
	if now.Sub(info.ModTime()) > backupMaxAge {
		return model.BackupOutdated
	}
	return model.BackupUpToDate
}

func errorTrend(current, previous int64) string {
	switch {
	case current > previous:
		return model.TrendIncreasing
	case current < previous:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}
