package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"transit-dashboard/model"
)

const historyDays = 30

// Predictive recommendation texts
const (
	RecScaleInfrastructure = "Fast growth: prepare to scale the infrastructure"
	RecSlowGrowth          = "Slow growth: review the marketing strategy"
	RecPeakHours           = "High peak hours: increase service during these hours"
)

// PredictiveInsights forecasts user growth for forecastDays days from the last 30 days of sign-ups
func (s *Service) PredictiveInsights(ctx context.Context, forecastDays int) (*model.PredictiveInsights, error) {
	now := s.clock()
	since := now.AddDate(0, 0, -historyDays)
	db := s.db.WithContext(ctx)

	var users []model.User
	if err := db.Select("created_at").Where("created_at >= ?", since).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load new users: %w", err)
	}
	perDay := make(map[string]int64)
	for _, u := range users {
		perDay[dateKey(u.CreatedAt)]++
	}
	history := make([]model.DailyUsers, 0, len(perDay))
	for _, d := range sortedDates(perDay) {
		history = append(history, model.DailyUsers{Date: d, NewUsers: perDay[d]})
	}

	var searches []model.SearchLog
	if err := db.Select("timestamp").Where("timestamp >= ?", since).Find(&searches).Error; err != nil {
		return nil, fmt.Errorf("failed to load searches: %w", err)
	}
	searchesPerDay := make(map[string]int64)
	hours := make(map[int]int64)
	for _, sl := range searches {
		searchesPerDay[dateKey(sl.Timestamp)]++
		hours[sl.Timestamp.UTC().Hour()]++
	}
	trend := make([]model.DailySearches, 0, len(searchesPerDay))
	for _, d := range sortedDates(searchesPerDay) {
		trend = append(trend, model.DailySearches{Date: d, Searches: searchesPerDay[d]})
	}

	current, err := s.count(ctx, &model.User{}, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	rate := growthRate(history)
	var sum int64
	for _, d := range history {
		sum += d.NewUsers
	}
	avg := float64(sum) / float64(max(len(history), 1))

	confidence := model.ConfidenceMedium
	if len(history) >= 14 {
		confidence = model.ConfidenceHigh
	}

	peaks := topHours(hours, 3)
	return &model.PredictiveInsights{
		GrowthAnalytics: &model.GrowthAnalytics{
			CurrentUsers:   model.Int64(current),
			GrowthRate:     model.Float(round(rate, 2)),
			AvgDailyGrowth: model.Float(round(avg, 2)),
			HistoricalData: history,
		},
		Predictions: &model.Predictions{
			ForecastPeriod:  model.Int(forecastDays),
			PredictedGrowth: forecast(now, current, avg, rate, forecastDays),
			ConfidenceLevel: confidence,
		},
		SeasonalPatterns: &model.SeasonalPatterns{
			PeakHours:  peaks,
			UsageTrend: trend,
		},
		Recommendations: predictiveRecommendations(rate, peaks),
	}, nil
}

// growthRate compares the sign-ups of the last seven data points with the seven before them
func growthRate(history []model.DailyUsers) float64 {
	n := len(history)
	if n < 7 {
		return 0
	}
	var recent, previous int64
	for _, d := range history[n-7:] {
		recent += d.NewUsers
	}
	for _, d := range history[max(0, n-14) : n-7] {
		previous += d.NewUsers
	}
	return float64(recent-previous) / float64(max(previous, 1)) * 100
}

func forecast(now time.Time, current int64, avg, rate float64, days int) []model.ForecastPoint {
	points := make([]model.ForecastPoint, 0, days)
	for i := 1; i <= days; i++ {
		points = append(points, model.ForecastPoint{
			Date:           dateKey(now.AddDate(0, 0, i)),
			PredictedUsers: int64(math.Round(float64(current) + avg*float64(i))),
			GrowthFactor:   round(1+math.Pow(rate/100, float64(i)), 3),
		})
	}
	return points
}

func predictiveRecommendations(rate float64, peaks []model.HourCount) []string {
	var recs []string
	switch {
	case rate > 20:
		recs = append(recs, RecScaleInfrastructure)
	case rate < 5:
		recs = append(recs, RecSlowGrowth)
	}
	for _, p := range peaks {
		if p.Count > 100 {
			recs = append(recs, RecPeakHours)
			break
		}
	}
	return recs
}
