package analytics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"transit-dashboard/metrics"
	"transit-dashboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	rtt     time.Duration
	enabled bool
	err     error
}

func (p stubPinger) Ping(context.Context) (time.Duration, bool, error) {
	return p.rtt, p.enabled, p.err
}

type stubRequests metrics.Summary

func (r stubRequests) Summary() metrics.Summary { return metrics.Summary(r) }

func writeFile(t *testing.T, path string, size int, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestSystemHealth_Excellent(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "backup.db")
	logFile := filepath.Join(dir, "app.log")
	writeFile(t, backup, 10, testNow.Add(-time.Hour))
	writeFile(t, logFile, 1<<20, testNow)

	s, _ := newTestService(t, WithHealthSources(HealthSources{
		Cache:      stubPinger{rtt: 2 * time.Millisecond, enabled: true},
		Requests:   stubRequests{Requests: 100, Errors: 1, PreviousErrors: 3, AvgResponseMS: 42.123, ErrorRate: 0.01, AvailabilityPct: 99},
		LogPath:    logFile,
		BackupPath: backup,
	}))

	h, err := s.SystemHealth(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.HealthExcellent, h.OverallHealth)
	pm := h.PerformanceMetrics
	assert.Equal(t, model.StatusHealthy, pm.Database.Status)
	assert.NotNil(t, pm.Database.ResponseTimeMS)
	assert.Equal(t, model.StatusHealthy, pm.Cache.Status)
	assert.Equal(t, 2.0, *pm.Cache.ResponseTimeMS)

	assert.Equal(t, 42.12, *pm.API.AvgResponseTimeMS)
	assert.Equal(t, 0.01, *pm.API.ErrorRate)
	assert.Equal(t, 99.0, *pm.API.UptimePercentage)
	assert.Equal(t, int64(100), *pm.API.RequestsLastHour)

	assert.Zero(t, *pm.Storage.DatabaseSizeMB)
	assert.Equal(t, 1.0, *pm.Storage.LogSizeMB)
	assert.Equal(t, model.BackupUpToDate, pm.Storage.BackupStatus)

	assert.Equal(t, int64(1), *h.ErrorAnalysis.RecentErrors)
	assert.Equal(t, model.TrendDecreasing, h.ErrorAnalysis.ErrorTrend)
	assert.Zero(t, *h.ErrorAnalysis.CriticalIssues)
	assert.Empty(t, h.Recommendations)
	assert.NotNil(t, h.Recommendations)
}

func TestSystemHealth_Degraded(t *testing.T) {
	backup := filepath.Join(t.TempDir(), "backup.db")
	writeFile(t, backup, 10, testNow.Add(-48*time.Hour))

	s, _ := newTestService(t, WithHealthSources(HealthSources{
		Cache:      stubPinger{enabled: true, err: errors.New("connection refused")},
		Requests:   stubRequests{Requests: 10, Errors: 2, PreviousErrors: 0, AvgResponseMS: 250, ErrorRate: 0.2, AvailabilityPct: 80},
		BackupPath: backup,
	}))

	h, err := s.SystemHealth(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.HealthDegraded, h.OverallHealth)
	assert.Equal(t, model.StatusUnhealthy, h.PerformanceMetrics.Cache.Status)
	assert.Equal(t, model.BackupOutdated, h.PerformanceMetrics.Storage.BackupStatus)
	assert.Equal(t, int64(1), *h.ErrorAnalysis.CriticalIssues)
	assert.Equal(t, model.TrendIncreasing, h.ErrorAnalysis.ErrorTrend)
	assert.Equal(t, []string{RecEnableCaching, RecRefreshBackup, RecInvestigate5xx}, h.Recommendations)
}

func TestSystemHealth_DatabaseDown(t *testing.T) {
	s, db := newTestService(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	h, err := s.SystemHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.HealthPoor, h.OverallHealth)
	assert.Equal(t, model.StatusUnhealthy, h.PerformanceMetrics.Database.Status)
	assert.Nil(t, h.PerformanceMetrics.Database.ResponseTimeMS)
	assert.Equal(t, model.StatusDisabled, h.PerformanceMetrics.Cache.Status)
	assert.Equal(t, model.BackupMissing, h.PerformanceMetrics.Storage.BackupStatus)
	assert.Equal(t, 100.0, *h.PerformanceMetrics.API.UptimePercentage)
	assert.Equal(t, model.TrendStable, h.ErrorAnalysis.ErrorTrend)
}

func TestFileSizeMB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	writeFile(t, path, 3<<19, testNow)

	assert.Equal(t, 1.5, fileSizeMB(path))
	assert.Zero(t, fileSizeMB(""))
	assert.Zero(t, fileSizeMB(":memory:"))
	assert.Zero(t, fileSizeMB(filepath.Join(t.TempDir(), "missing")))
}
