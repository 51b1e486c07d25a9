package analytics

import (
	"context"
	"fmt"
	"time"

	"transit-dashboard/model"
)

const liveLocationWindow = 5 * time.Minute

// RealTimeStats computes the live counters of the overview tab
func (s *Service) RealTimeStats(ctx context.Context) (*model.RealTimeStats, error) {
	now := s.clock()
	today := startOfDay(now)
	weekAgo := now.AddDate(0, 0, -7)
	dayAgo := now.Add(-24 * time.Hour)

	type counter struct {
		dst   *int64
		m     any
		query string
		args  []any
	}

	var (
		totalUsers, activeToday, newToday, newWeek int64
		totalRoutes                                int64
		searchesToday, searchesWeek                int64
		complaintsToday, pending, totalComplaints  int64
		activeShares, liveLocations                int64
	)

	counters := []counter{
		{&totalUsers, &model.User{}, "", nil},
		{&activeToday, &model.User{}, "updated_at >= ?", []any{today}},
		{&newToday, &model.User{}, "created_at >= ?", []any{today}},
		{&newWeek, &model.User{}, "created_at >= ?", []any{weekAgo}},
		{&totalRoutes, &model.Route{}, "", nil},
		{&searchesToday, &model.SearchLog{}, "timestamp >= ?", []any{today}},
		{&searchesWeek, &model.SearchLog{}, "timestamp >= ?", []any{weekAgo}},
		{&complaintsToday, &model.Complaint{}, "timestamp >= ?", []any{today}},
		{&pending, &model.Complaint{}, "status = ?", []any{model.ComplaintPending}},
		{&totalComplaints, &model.Complaint{}, "", nil},
		{&activeShares, &model.LocationShare{}, "status = ?", []any{model.ShareActive}},
		{&liveLocations, &model.VehicleLocation{}, "timestamp >= ?", []any{now.Add(-liveLocationWindow)}},
	}
	for _, c := range counters {
		n, err := s.count(ctx, c.m, c.query, c.args...)
		if err != nil {
			return nil, fmt.Errorf("failed to count %T: %w", c.m, err)
		}
		*c.dst = n
	}

	// a route is active when someone searched it in the last 24 hours
	var activeRoutes int64
	err := s.db.WithContext(ctx).
		Model(&model.SearchLog{}).
		Where("timestamp >= ? AND route_id IS NOT NULL", dayAgo).
		Distinct("route_id").
		Count(&activeRoutes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active routes: %w", err)
	}

	return &model.RealTimeStats{
		Timestamp: now.Format(time.RFC3339),
		Users: &model.UserStats{
			Total:       model.Int64(totalUsers),
			ActiveToday: model.Int64(activeToday),
			NewToday:    model.Int64(newToday),
			NewWeek:     model.Int64(newWeek),
			GrowthRate:  model.Float(percent(newWeek, totalUsers-newWeek)),
		},
		Routes: &model.RouteStats{
			Total:           model.Int64(totalRoutes),
			Active:          model.Int64(activeRoutes),
			UtilizationRate: model.Float(percent(activeRoutes, totalRoutes)),
		},
		Searches: &model.SearchStats{
			Today:    model.Int64(searchesToday),
			Week:     model.Int64(searchesWeek),
			AvgDaily: model.Float(round(float64(searchesWeek)/7, 2)),
		},
		Complaints: &model.ComplaintStats{
			Today:          model.Int64(complaintsToday),
			Pending:        model.Int64(pending),
			ResolutionRate: model.Float(percent(totalComplaints-pending, totalComplaints)),
		},
		LocationSharing: &model.SharingStats{
			ActiveShares:  model.Int64(activeShares),
			LiveLocations: model.Int64(liveLocations),
		},
	}, nil
}
