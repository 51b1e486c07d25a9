package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"transit-dashboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyHistory(counts ...int64) []model.DailyUsers {
	out := make([]model.DailyUsers, 0, len(counts))
	for i, n := range counts {
		out = append(out, model.DailyUsers{Date: fmt.Sprintf("2024-02-%02d", i+1), NewUsers: n})
	}
	return out
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name    string
		history []model.DailyUsers
		want    float64
	}{
		{"too little history", dailyHistory(5, 5, 5, 5, 5, 5), 0},
		{"no previous week", dailyHistory(1, 2, 3, 4, 5, 6, 7), 2800},
		{"doubled", dailyHistory(10, 10, 10, 10, 10, 10, 10, 20, 20, 20, 20, 20, 20, 20), 100},
		{"halved", dailyHistory(2, 10, 10, 10, 10, 10, 10, 10, 5, 5, 5, 5, 5, 5, 5), -50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, growthRate(tt.history), 1e-9)
		})
	}
}

func TestForecast(t *testing.T) {
	points := forecast(testNow, 15420, 156, 12.5, 3)
	require.Len(t, points, 3)

	assert.Equal(t, model.ForecastPoint{Date: "2024-03-11", PredictedUsers: 15576, GrowthFactor: 1.125}, points[0])
	assert.Equal(t, model.ForecastPoint{Date: "2024-03-12", PredictedUsers: 15732, GrowthFactor: 1.016}, points[1])
	assert.Equal(t, model.ForecastPoint{Date: "2024-03-13", PredictedUsers: 15888, GrowthFactor: 1.002}, points[2])
}

func TestPredictiveRecommendations(t *testing.T) {
	busy := []model.HourCount{{Hour: 8, Count: 150}}
	calm := []model.HourCount{{Hour: 8, Count: 40}}

	assert.Equal(t, []string{RecScaleInfrastructure, RecPeakHours}, predictiveRecommendations(25, busy))
	assert.Equal(t, []string{RecSlowGrowth}, predictiveRecommendations(2, calm))
	assert.Empty(t, predictiveRecommendations(10, calm))
}

func TestPredictiveInsights(t *testing.T) {
	s, db := newTestService(t)

	mustCreate(t, db, &[]model.User{
		{Username: "old", Email: "old@example.com", CreatedAt: ago(days(60))},
		{Username: "a", Email: "a@example.com", CreatedAt: ago(days(2))},
		{Username: "b", Email: "b@example.com", CreatedAt: ago(days(1))},
		{Username: "c", Email: "c@example.com", CreatedAt: ago(days(1) + time.Hour)},
	})
	morning := startOfDay(testNow).Add(8 * time.Hour)
	for i := 0; i < 3; i++ {
		mustCreate(t, db, searchAt(nil, nil, morning.Add(time.Duration(i)*time.Minute)))
	}
	mustCreate(t, db, searchAt(nil, nil, ago(days(1)).Add(5*time.Hour))) // 17:00 yesterday

	insights, err := s.PredictiveInsights(context.Background(), 3)
	require.NoError(t, err)

	g := insights.GrowthAnalytics
	assert.Equal(t, int64(4), *g.CurrentUsers)
	assert.Zero(t, *g.GrowthRate)
	assert.Equal(t, 1.5, *g.AvgDailyGrowth)
	assert.Equal(t, []model.DailyUsers{
		{Date: "2024-03-08", NewUsers: 1},
		{Date: "2024-03-09", NewUsers: 2},
	}, g.HistoricalData)

	p := insights.Predictions
	assert.Equal(t, int64(3), *p.ForecastPeriod)
	assert.Equal(t, model.ConfidenceMedium, p.ConfidenceLevel)
	require.Len(t, p.PredictedGrowth, 3)
	assert.Equal(t, int64(6), p.PredictedGrowth[0].PredictedUsers)
	assert.Equal(t, int64(7), p.PredictedGrowth[1].PredictedUsers)
	assert.Equal(t, int64(9), p.PredictedGrowth[2].PredictedUsers)
	assert.Equal(t, 1.0, p.PredictedGrowth[0].GrowthFactor)

	sp := insights.SeasonalPatterns
	assert.Equal(t, []model.HourCount{{Hour: 8, Count: 3}, {Hour: 17, Count: 1}}, sp.PeakHours)
	assert.Equal(t, []model.DailySearches{
		{Date: "2024-03-09", Searches: 1},
		{Date: "2024-03-10", Searches: 3},
	}, sp.UsageTrend)

	assert.Equal(t, []string{RecSlowGrowth}, insights.Recommendations)
}

func TestPredictiveInsights_HighConfidence(t *testing.T) {
	s, db := newTestService(t)
	for d := 1; d <= 14; d++ {
		mustCreate(t, db, &model.User{
			Username:  fmt.Sprintf("u%d", d),
			Email:     fmt.Sprintf("u%d@example.com", d),
			CreatedAt: ago(days(d)),
		})
	}

	insights, err := s.PredictiveInsights(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, model.ConfidenceHigh, insights.Predictions.ConfidenceLevel)
	assert.Len(t, insights.Predictions.PredictedGrowth, 7)
	assert.Len(t, insights.GrowthAnalytics.HistoricalData, 14)
}
