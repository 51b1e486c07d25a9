package screen

import (
	"context"

	m "transit-dashboard/model"
)

// StaticSource always returns the same snapshot
type StaticSource[T any] struct {
	Snapshot *T
}

func (s StaticSource[T]) Fetch(context.Context) (*T, error) {
	return s.Snapshot, nil
}

// StaticDashboardSource serves the built-in demo dashboard
func StaticDashboardSource() StaticSource[m.DashboardSnapshot] {
	return StaticSource[m.DashboardSnapshot]{Snapshot: StaticDashboard()}
}

// StaticAdvancedSource serves the built-in demo analytics
func StaticAdvancedSource() StaticSource[m.AdvancedAnalyticsSnapshot] {
	return StaticSource[m.AdvancedAnalyticsSnapshot]{Snapshot: StaticAdvanced()}
}

// StaticDashboard returns a fresh copy of the demo dashboard snapshot
func StaticDashboard() *m.DashboardSnapshot {
	return &m.DashboardSnapshot{
		RealTimeStats: &m.RealTimeStats{
			Users:           &m.UserStats{Total: m.Int64(15420), ActiveToday: m.Int64(2340), NewToday: m.Int64(156), GrowthRate: m.Float(12.5)},
			Routes:          &m.RouteStats{Total: m.Int64(45), Active: m.Int64(42), UtilizationRate: m.Float(93.3)},
			Searches:        &m.SearchStats{Today: m.Int64(8920), Week: m.Int64(45670), AvgDaily: m.Float(6524)},
			Complaints:      &m.ComplaintStats{Today: m.Int64(23), Pending: m.Int64(67), ResolutionRate: m.Float(89.2)},
			LocationSharing: &m.SharingStats{ActiveShares: m.Int64(234), LiveLocations: m.Int64(89)},
		},
		RouteAnalytics: &m.RouteAnalytics{
			Period:      "week",
			TotalRoutes: m.Int64(2),
			Analytics: []m.RoutePerformance{
				{
					RouteName:          "خط الجامعة - المدينة",
					PerformanceScore:   m.Float(94.5),
					SearchAnalytics:    &m.RouteSearchAnalytics{TotalSearches: m.Int64(1234), ActiveDays: m.Int64(7)},
					ComplaintAnalytics: &m.RouteComplaintAnalytics{TotalComplaints: m.Int64(5), ResolutionRate: m.Float(100)},
				},
				{
					RouteName:          "خط المطار - المركز",
					PerformanceScore:   m.Float(87.2),
					SearchAnalytics:    &m.RouteSearchAnalytics{TotalSearches: m.Int64(987), ActiveDays: m.Int64(6)},
					ComplaintAnalytics: &m.RouteComplaintAnalytics{TotalComplaints: m.Int64(12), ResolutionRate: m.Float(83.3)},
				},
			},
		},
		UserBehavior: &m.UserBehavior{
			UserSegments: &m.UserSegments{
				TotalUsers:     m.Int64(15420),
				ActiveUsers:    m.Int64(8900),
				NewUsers:       m.Int64(1000),
				InactiveUsers:  m.Int64(6520),
				EngagementRate: m.Float(57.8),
			},
			UsagePatterns: []m.UsagePattern{
				{Username: "أحمد محمد", ActivityScore: m.Int64(156), SearchesCount: m.Int64(45), UserType: m.UserTypePower},
				{Username: "فاطمة علي", ActivityScore: m.Int64(89), SearchesCount: m.Int64(23), UserType: m.UserTypeRegular},
			},
			BehaviorInsights: []string{},
		},
	}
}

// StaticAdvanced returns a fresh copy of the demo advanced analytics snapshot
func StaticAdvanced() *m.AdvancedAnalyticsSnapshot {
	return &m.AdvancedAnalyticsSnapshot{
		Predictive: &m.PredictiveInsights{
			GrowthAnalytics: &m.GrowthAnalytics{
				CurrentUsers:   m.Int64(15420),
				GrowthRate:     m.Float(12.5),
				AvgDailyGrowth: m.Float(156),
				HistoricalData: []m.DailyUsers{
					{Date: "2024-01-01", NewUsers: 120},
					{Date: "2024-01-02", NewUsers: 145},
					{Date: "2024-01-03", NewUsers: 167},
					{Date: "2024-01-04", NewUsers: 189},
					{Date: "2024-01-05", NewUsers: 201},
					{Date: "2024-01-06", NewUsers: 234},
					{Date: "2024-01-07", NewUsers: 256},
				},
			},
			Predictions: &m.Predictions{
				ForecastPeriod: m.Int64(7),
				PredictedGrowth: []m.ForecastPoint{
					{Date: "2024-01-08", PredictedUsers: 15676, GrowthFactor: 1.125},
					{Date: "2024-01-09", PredictedUsers: 15832, GrowthFactor: 1.126},
					{Date: "2024-01-10", PredictedUsers: 15988, GrowthFactor: 1.127},
					{Date: "2024-01-11", PredictedUsers: 16144, GrowthFactor: 1.128},
					{Date: "2024-01-12", PredictedUsers: 16300, GrowthFactor: 1.129},
					{Date: "2024-01-13", PredictedUsers: 16456, GrowthFactor: 1.130},
					{Date: "2024-01-14", PredictedUsers: 16612, GrowthFactor: 1.131},
				},
				ConfidenceLevel: m.ConfidenceHigh,
			},
			SeasonalPatterns: &m.SeasonalPatterns{
				PeakHours: []m.HourCount{
					{Hour: 8, Count: 2340},
					{Hour: 17, Count: 1890},
					{Hour: 12, Count: 1560},
				},
				UsageTrend: []m.DailySearches{
					{Date: "2024-01-01", Searches: 6500},
					{Date: "2024-01-02", Searches: 7200},
					{Date: "2024-01-03", Searches: 6800},
					{Date: "2024-01-04", Searches: 7500},
					{Date: "2024-01-05", Searches: 8200},
					{Date: "2024-01-06", Searches: 7800},
					{Date: "2024-01-07", Searches: 7000},
				},
			},
		},
		Geographic: &m.GeographicSnapshot{
			Hotspots: []m.Hotspot{
				{Lat: 24.7136, Lng: 46.6753, Intensity: 234, Level: m.LevelHigh},
				{Lat: 24.7236, Lng: 46.6853, Intensity: 189, Level: m.LevelHigh},
				{Lat: 24.7336, Lng: 46.6953, Intensity: 156, Level: m.LevelMedium},
				{Lat: 24.7436, Lng: 46.7053, Intensity: 123, Level: m.LevelMedium},
				{Lat: 24.7536, Lng: 46.7153, Intensity: 98, Level: m.LevelLow},
			},
			Coverage: []m.RouteCoverage{
				{RouteName: "خط الجامعة - المدينة", CoverageScore: 95.2},
				{RouteName: "خط المطار - المركز", CoverageScore: 87.8},
				{RouteName: "خط الشمال - الجنوب", CoverageScore: 92.1},
				{RouteName: "خط الشرق - الغرب", CoverageScore: 78.9},
			},
			Mobility: []m.MobilityPattern{
				{
					Start:      m.GeoPoint{Lat: 24.7136, Lng: 46.6753},
					End:        m.GeoPoint{Lat: 24.7236, Lng: 46.6853},
					Frequency:  234,
					Popularity: m.LevelHigh,
				},
				{
					Start:      m.GeoPoint{Lat: 24.7236, Lng: 46.6853},
					End:        m.GeoPoint{Lat: 24.7336, Lng: 46.6953},
					Frequency:  189,
					Popularity: m.LevelHigh,
				},
			},
		},
		Complaints: &m.ComplaintIntelligence{
			Overview: &m.ComplaintOverview{
				TotalComplaints:      m.Int64(234),
				ResolvedComplaints:   m.Int64(189),
				ResolutionRate:       m.Float(80.8),
				AvgResponseTimeHours: m.Float(4.2),
			},
			Trends: []m.ComplaintTrend{
				{Date: "2024-01-01", Total: 12, Resolved: 10, Pending: 2},
				{Date: "2024-01-02", Total: 15, Resolved: 12, Pending: 3},
				{Date: "2024-01-03", Total: 18, Resolved: 15, Pending: 3},
				{Date: "2024-01-04", Total: 14, Resolved: 11, Pending: 3},
				{Date: "2024-01-05", Total: 16, Resolved: 13, Pending: 3},
				{Date: "2024-01-06", Total: 19, Resolved: 16, Pending: 3},
				{Date: "2024-01-07", Total: 13, Resolved: 10, Pending: 3},
			},
			Categories: m.ComplaintCategories{
				m.CategoryDelays:   45,
				m.CategoryCrowding: 38,
				m.CategoryDriver:   23,
				m.CategoryVehicle:  19,
				m.CategoryPricing:  12,
				m.CategoryService:  8,
			},
		},
		System: &m.SystemHealth{
			OverallHealth: m.HealthExcellent,
			PerformanceMetrics: &m.PerformanceMetrics{
				Database: &m.ComponentHealth{Status: m.StatusHealthy, ResponseTimeMS: m.Float(15)},
				API:      &m.APIHealth{AvgResponseTimeMS: m.Float(120), ErrorRate: m.Float(0.02), UptimePercentage: m.Float(99.8)},
				Storage:  &m.StorageHealth{DatabaseSizeMB: m.Float(45.2), LogSizeMB: m.Float(12.8), BackupStatus: m.BackupUpToDate},
			},
			ErrorAnalysis: &m.ErrorAnalysis{
				RecentErrors:   m.Int64(0),
				ErrorTrend:     m.TrendDecreasing,
				CriticalIssues: m.Int64(0),
			},
			Recommendations: []string{},
		},
	}
}
