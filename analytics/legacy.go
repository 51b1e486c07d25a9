package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"transit-dashboard/model"
	"transit-dashboard/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TopRoutes ranks routes by all-time search count, including routes never searched
func (s *Service) TopRoutes(ctx context.Context, limit int) ([]model.TopRoute, error) {
	out := []model.TopRoute{}
	err := s.db.WithContext(ctx).
		Table("routes").
		Select("routes.id AS route_id, routes.name AS route_name, COUNT(search_logs.id) AS search_count").
		Joins("LEFT JOIN search_logs ON search_logs.route_id = routes.id").
		Group("routes.id, routes.name").
		Order("search_count DESC, routes.id").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank routes: %w", err)
	}
	return out, nil
}

func (s *Service) UsageStatistics(ctx context.Context) (*model.UsageStatistics, error) {
	var out model.UsageStatistics
	var err error
	if out.UsersCount, err = s.count(ctx, &model.User{}, ""); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if out.RoutesCount, err = s.count(ctx, &model.Route{}, ""); err != nil {
		return nil, fmt.Errorf("failed to count routes: %w", err)
	}
	if out.ComplaintsCount, err = s.count(ctx, &model.Complaint{}, ""); err != nil {
		return nil, fmt.Errorf("failed to count complaints: %w", err)
	}
	return &out, nil
}

// Complaints lists complaints newest first, optionally filtered by status and route
func (s *Service) Complaints(ctx context.Context, status string, routeID *uint) ([]model.Complaint, error) {
	q := s.db.WithContext(ctx).Order("timestamp DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if routeID != nil {
		q = q.Where("route_id = ?", *routeID)
	}
	out := []model.Complaint{}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return out, nil
}

// UpdateComplaintStatus changes the status of a complaint. Resolving stamps
// resolved_at, re-resolving keeps the first stamp and any other status clears it.
func (s *Service) UpdateComplaintStatus(ctx context.Context, id uint, status string) (*model.ComplaintStatusUpdate, error) {
	var c model.Complaint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrComplaintNotFound
			}
			return err
		}
		resolvedAt := c.ResolvedAt
		switch {
		case status != model.ComplaintResolved:
			resolvedAt = nil
		case c.Status != model.ComplaintResolved || resolvedAt == nil:
			now := s.clock()
			resolvedAt = &now
		}
		c.Status = status
		c.ResolvedAt = resolvedAt
		return tx.Model(&c).Select("status", "resolved_at").Updates(&c).Error
	})
	if err != nil {
		if errors.Is(err, utils.ErrComplaintNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update complaint %d: %w", id, err)
	}
	return &model.ComplaintStatusUpdate{Message: "Complaint status updated", ID: c.ID, Status: c.Status}, nil
}

// HeatmapData returns search origins and destinations between start and end, both optional and inclusive
func (s *Service) HeatmapData(ctx context.Context, start, end *time.Time) ([]model.HeatmapPoint, error) {
	q := s.db.WithContext(ctx).Model(&model.SearchLog{}).Order("timestamp")
	if start != nil {
		q = q.Where("timestamp >= ?", start.UTC())
	}
	if end != nil {
		q = q.Where("timestamp <= ?", end.UTC())
	}
	var logs []model.SearchLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to load heatmap data: %w", err)
	}
	out := make([]model.HeatmapPoint, 0, len(logs))
	for _, l := range logs {
		out = append(out, model.HeatmapPoint{
			StartLat:  l.StartLat,
			StartLng:  l.StartLng,
			EndLat:    l.EndLat,
			EndLng:    l.EndLng,
			Timestamp: l.Timestamp.UTC(),
		})
	}
	return out, nil
}

// Summary is the compact totals view, with recent meaning the last 7 days
func (s *Service) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	now := s.clock()
	weekAgo := now.AddDate(0, 0, -7)
	out := model.DashboardSummary{Timestamp: now}

	counts := []struct {
		dst   *int64
		m     any
		query string
		args  []any
	}{
		{&out.TotalUsers, &model.User{}, "", nil},
		{&out.TotalRoutes, &model.Route{}, "", nil},
		{&out.TotalComplaints, &model.Complaint{}, "", nil},
		{&out.TotalFeedback, &model.Feedback{}, "", nil},
		{&out.RecentComplaints, &model.Complaint{}, "timestamp >= ?", []any{weekAgo}},
		{&out.RecentFeedback, &model.Feedback{}, "timestamp >= ?", []any{weekAgo}},
	}
	for _, c := range counts {
		n, err := s.count(ctx, c.m, c.query, c.args...)
		if err != nil {
			return nil, fmt.Errorf("failed to count %T: %w", c.m, err)
		}
		*c.dst = n
	}
	return &out, nil
}

// RealTimeMetrics counts complaints and feedback of the last hour and day
func (s *Service) RealTimeMetrics(ctx context.Context) (*model.RealTimeMetrics, error) {
	now := s.clock()
	hourAgo := now.Add(-time.Hour)
	dayAgo := now.Add(-24 * time.Hour)
	out := model.RealTimeMetrics{Timestamp: now}

	counts := []struct {
		dst   *int64
		m     any
		since time.Time
	}{
		{&out.HourlyComplaints, &model.Complaint{}, hourAgo},
		{&out.HourlyFeedback, &model.Feedback{}, hourAgo},
		{&out.DailyComplaints, &model.Complaint{}, dayAgo},
		{&out.DailyFeedback, &model.Feedback{}, dayAgo},
	}
	for _, c := range counts {
		n, err := s.count(ctx, c.m, "timestamp >= ?", c.since)
		if err != nil {
			return nil, fmt.Errorf("failed to count %T: %w", c.m, err)
		}
		*c.dst = n
	}
	return &out, nil
}

// Collect stores one client analytics point
func (s *Service) Collect(ctx context.Context, req model.CollectRequest) (*model.CollectResponse, error) {
	dataType := strings.TrimSpace(req.DataType)
	if dataType == "" || req.Value == nil {
		return nil, utils.ErrMissingDataType
	}
	point := model.AnalyticsData{
		ID:        uuid.NewString(),
		DataType:  dataType,
		Value:     *req.Value,
		Timestamp: s.clock(),
	}
	if err := s.db.WithContext(ctx).Create(&point).Error; err != nil {
		return nil, fmt.Errorf("failed to store analytics data: %w", err)
	}
	return &model.CollectResponse{Message: "Analytics data collected successfully", ID: point.ID}, nil
}

// AdminDashboardAnalytics is the admin landing summary. Recent activity covers the last 30 days.
func (s *Service) AdminDashboardAnalytics(ctx context.Context) (*model.AdminDashboardAnalytics, error) {
	monthAgo := s.clock().AddDate(0, 0, -30)
	var out model.AdminDashboardAnalytics

	counts := []struct {
		dst   *int64
		m     any
		query string
		args  []any
	}{
		{&out.Users.Total, &model.User{}, "", nil},
		{&out.Users.Active, &model.User{}, "is_active = ?", []any{true}},
		{&out.Users.Admins, &model.User{}, "is_admin = ?", []any{true}},
		{&out.Routes.Total, &model.Route{}, "", nil},
		{&out.Complaints.Total, &model.Complaint{}, "", nil},
		{&out.Complaints.Pending, &model.Complaint{}, "status = ?", []any{model.ComplaintPending}},
		{&out.Complaints.Resolved, &model.Complaint{}, "status = ?", []any{model.ComplaintResolved}},
		{&out.Feedback.Total, &model.Feedback{}, "", nil},
		{&out.RecentActivity.Complaints, &model.Complaint{}, "timestamp >= ?", []any{monthAgo}},
		{&out.RecentActivity.Feedback, &model.Feedback{}, "timestamp >= ?", []any{monthAgo}},
	}
	for _, c := range counts {
		n, err := s.count(ctx, c.m, c.query, c.args...)
		if err != nil {
			return nil, fmt.Errorf("failed to count %T: %w", c.m, err)
		}
		*c.dst = n
	}

	var avg struct{ Avg *float64 }
	if err := s.db.WithContext(ctx).Model(&model.Feedback{}).Select("AVG(rating) AS avg").Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	if avg.Avg != nil {
		out.Feedback.AvgRating = round(*avg.Avg, 2)
	}

	resolution := percent(out.Complaints.Resolved, out.Complaints.Total)
	out.Complaints.ResolutionRate = resolution
	out.Analytics.Summary = fmt.Sprintf("The system has %d users and %d routes", out.Users.Total, out.Routes.Total)
	out.Analytics.HealthScore = resolution
	return &out, nil
}

// Recommendations gathers the route, predictive and complaint recommendations in one list
func (s *Service) Recommendations(ctx context.Context) (*model.RecommendationList, error) {
	out := &model.RecommendationList{Recommendations: []model.Recommendation{}}

	routes, err := s.RouteAnalytics(ctx, "week", nil)
	if err != nil {
		return nil, err
	}
	for _, r := range routes.Analytics {
		for _, text := range r.Recommendations {
			out.Recommendations = append(out.Recommendations, model.Recommendation{
				Source:  model.SourceRoutes,
				Subject: r.RouteName,
				Text:    text,
			})
		}
	}

	predictive, err := s.PredictiveInsights(ctx, s.cfg.ForecastDays)
	if err != nil {
		return nil, err
	}
	for _, text := range predictive.Recommendations {
		out.Recommendations = append(out.Recommendations, model.Recommendation{Source: model.SourcePredictive, Text: text})
	}

	complaints, err := s.ComplaintIntelligence(ctx, "all")
	if err != nil {
		return nil, err
	}
	for _, text := range complaints.Insights {
		out.Recommendations = append(out.Recommendations, model.Recommendation{Source: model.SourceComplaints, Text: text})
	}
	return out, nil
}
