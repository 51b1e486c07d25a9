package model

// DashboardSnapshot is everything the Dashboard screen shows in one render pass.
// A nil section means the section was not loaded.
type DashboardSnapshot struct {
	RealTimeStats  *RealTimeStats  `json:"realTimeStats,omitempty"`
	RouteAnalytics *RouteAnalytics `json:"routeAnalytics,omitempty"`
	UserBehavior   *UserBehavior   `json:"userBehavior,omitempty"`
}

// RealTimeStats holds the live counters shown on the overview tab
type RealTimeStats struct {
	Timestamp       string          `json:"timestamp,omitempty"`
	Users           *UserStats      `json:"users,omitempty"`
	Routes          *RouteStats     `json:"routes,omitempty"`
	Searches        *SearchStats    `json:"searches,omitempty"`
	Complaints      *ComplaintStats `json:"complaints,omitempty"`
	LocationSharing *SharingStats   `json:"location_sharing,omitempty"`
}

type UserStats struct {
	Total       *int64   `json:"total,omitempty"`
	ActiveToday *int64   `json:"active_today,omitempty"`
	NewToday    *int64   `json:"new_today,omitempty"`
	NewWeek     *int64   `json:"new_week,omitempty"`
	GrowthRate  *float64 `json:"growth_rate,omitempty"` // percent
}

type RouteStats struct {
	Total           *int64   `json:"total,omitempty"`
	Active          *int64   `json:"active,omitempty"`
	UtilizationRate *float64 `json:"utilization_rate,omitempty"` // percent
}

type SearchStats struct {
	Today    *int64   `json:"today,omitempty"`
	Week     *int64   `json:"week,omitempty"`
	AvgDaily *float64 `json:"avg_daily,omitempty"`
}

type ComplaintStats struct {
	Today          *int64   `json:"today,omitempty"`
	Pending        *int64   `json:"pending,omitempty"`
	ResolutionRate *float64 `json:"resolution_rate,omitempty"` // percent
}

type SharingStats struct {
	ActiveShares  *int64 `json:"active_shares,omitempty"`
	LiveLocations *int64 `json:"live_locations,omitempty"` // vehicle fixes in the last 5 minutes
}

// RouteAnalytics is the per-route performance report for a period
type RouteAnalytics struct {
	Period      string             `json:"period,omitempty"`
	TotalRoutes *int64             `json:"total_routes,omitempty"`
	Analytics   []RoutePerformance `json:"analytics"`
}

type RoutePerformance struct {
	RouteID            uint                     `json:"route_id,omitempty"`
	RouteName          string                   `json:"route_name"`
	RouteCode          string                   `json:"route_code,omitempty"`
	PerformanceScore   *float64                 `json:"performance_score,omitempty"`
	SearchAnalytics    *RouteSearchAnalytics    `json:"search_analytics,omitempty"`
	ComplaintAnalytics *RouteComplaintAnalytics `json:"complaint_analytics,omitempty"`
	Recommendations    []string                 `json:"recommendations,omitempty"`
}

type RouteSearchAnalytics struct {
	TotalSearches *int64      `json:"total_searches,omitempty"`
	AvgHour       *float64    `json:"avg_hour,omitempty"`
	ActiveDays    *int64      `json:"active_days,omitempty"`
	PeakHours     []HourCount `json:"peak_hours,omitempty"`
}

type RouteComplaintAnalytics struct {
	TotalComplaints    *int64   `json:"total_complaints,omitempty"`
	ResolvedComplaints *int64   `json:"resolved_complaints,omitempty"`
	ResolutionRate     *float64 `json:"resolution_rate,omitempty"`
}

// HourCount is the number of events in one hour of the day (0-23)
type HourCount struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// UserBehavior segments users and profiles the most active ones
type UserBehavior struct {
	UserSegments     *UserSegments  `json:"user_segments,omitempty"`
	UsagePatterns    []UsagePattern `json:"usage_patterns"`
	BehaviorInsights []string       `json:"behavior_insights"`
}

type UserSegments struct {
	TotalUsers     *int64   `json:"total_users,omitempty"`
	ActiveUsers    *int64   `json:"active_users,omitempty"`
	NewUsers       *int64   `json:"new_users,omitempty"`
	InactiveUsers  *int64   `json:"inactive_users,omitempty"`
	EngagementRate *float64 `json:"engagement_rate,omitempty"`
}

// User types assigned by search volume
const (
	UserTypePower   = "power_user"
	UserTypeRegular = "regular_user"
	UserTypeCasual  = "casual_user"
)

type UsagePattern struct {
	UserID          uint   `json:"user_id,omitempty"`
	Username        string `json:"username"`
	Email           string `json:"email,omitempty"`
	ActivityScore   *int64 `json:"activity_score,omitempty"`
	SearchesCount   *int64 `json:"searches_count,omitempty"`
	ComplaintsCount *int64 `json:"complaints_count,omitempty"`
	SharesCount     *int64 `json:"shares_count,omitempty"`
	PreferredHours  []int  `json:"preferred_hours,omitempty"`
	UserType        string `json:"user_type,omitempty"`
}
