package analytics

import (
	"context"
	"fmt"

	"transit-dashboard/model"
)

// DashboardSnapshot assembles the Dashboard screen: real-time stats, the weekly route report and active user behavior
func (s *Service) DashboardSnapshot(ctx context.Context) (*model.DashboardSnapshot, error) {
	stats, err := s.RealTimeStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("real-time stats: %w", err)
	}
	routes, err := s.RouteAnalytics(ctx, "week", nil)
	if err != nil {
		return nil, fmt.Errorf("route analytics: %w", err)
	}
	behavior, err := s.UserBehavior(ctx, "active")
	if err != nil {
		return nil, fmt.Errorf("user behavior: %w", err)
	}
	return &model.DashboardSnapshot{
		RealTimeStats:  stats,
		RouteAnalytics: routes,
		UserBehavior:   behavior,
	}, nil
}

// AdvancedSnapshot assembles the AdvancedAnalytics screen
func (s *Service) AdvancedSnapshot(ctx context.Context) (*model.AdvancedAnalyticsSnapshot, error) {
	predictive, err := s.PredictiveInsights(ctx, s.cfg.ForecastDays)
	if err != nil {
		return nil, fmt.Errorf("predictive insights: %w", err)
	}

	geo := &model.GeographicSnapshot{}
	for _, area := range []string{"hotspots", "coverage", "mobility"} {
		g, err := s.GeographicIntelligence(ctx, area)
		if err != nil {
			return nil, fmt.Errorf("geographic %s: %w", area, err)
		}
		switch area {
		case "hotspots":
			geo.Hotspots = g.Hotspots
		case "coverage":
			geo.Coverage = g.CoverageAnalysis
		case "mobility":
			geo.Mobility = g.Patterns
		}
	}

	complaints, err := s.ComplaintIntelligence(ctx, "all")
	if err != nil {
		return nil, fmt.Errorf("complaint intelligence: %w", err)
	}
	system, err := s.SystemHealth(ctx)
	if err != nil {
		return nil, fmt.Errorf("system health: %w", err)
	}

	return &model.AdvancedAnalyticsSnapshot{
		Predictive: predictive,
		Geographic: geo,
		Complaints: complaints,
		System:     system,
	}, nil
}
