package analytics

import (
	"context"
	"testing"

	"transit-dashboard/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshots_OnSeededData(t *testing.T) {
	s, db := newTestService(t)
	opts := database.DefaultSeedOptions(testNow)
	opts.Users = 60
	opts.Days = 20
	opts.SearchesPerDay = 40
	require.NoError(t, database.Seed(context.Background(), db, opts))

	dash, err := s.DashboardSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, dash.RealTimeStats)
	assert.Equal(t, int64(60), *dash.RealTimeStats.Users.Total)
	assert.Equal(t, int64(5), *dash.RealTimeStats.Routes.Total)
	require.NotNil(t, dash.RouteAnalytics)
	assert.Equal(t, "week", dash.RouteAnalytics.Period)
	assert.Len(t, dash.RouteAnalytics.Analytics, 5)
	for i := 1; i < len(dash.RouteAnalytics.Analytics); i++ {
		prev, cur := dash.RouteAnalytics.Analytics[i-1], dash.RouteAnalytics.Analytics[i]
		assert.GreaterOrEqual(t, *prev.PerformanceScore, *cur.PerformanceScore)
	}
	require.NotNil(t, dash.UserBehavior)
	assert.LessOrEqual(t, len(dash.UserBehavior.UsagePatterns), usagePatternLimit)

	adv, err := s.AdvancedSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, adv.Predictive)
	assert.Len(t, adv.Predictive.Predictions.PredictedGrowth, 7)
	require.NotNil(t, adv.Geographic)
	assert.NotEmpty(t, adv.Geographic.Hotspots)
	assert.Len(t, adv.Geographic.Coverage, 5)
	assert.NotEmpty(t, adv.Geographic.Mobility)
	require.NotNil(t, adv.Complaints)
	assert.NotEmpty(t, adv.Complaints.Trends)
	assert.NotEmpty(t, adv.Complaints.Categories)
	require.NotNil(t, adv.System)
	assert.NotEmpty(t, adv.System.OverallHealth)
}
