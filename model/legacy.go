package model

import "time"

// TopRoute is a route ranked by all-time search count
type TopRoute struct {
	RouteID     uint   `json:"route_id"`
	RouteName   string `json:"route_name"`
	SearchCount int64  `json:"search_count"`
}

type UsageStatistics struct {
	UsersCount      int64 `json:"users_count"`
	RoutesCount     int64 `json:"routes_count"`
	ComplaintsCount int64 `json:"complaints_count"`
}

// HeatmapPoint is the origin and destination of one search
type HeatmapPoint struct {
	StartLat  float64   `json:"start_lat"`
	StartLng  float64   `json:"start_lng"`
	EndLat    float64   `json:"end_lat"`
	EndLng    float64   `json:"end_lng"`
	Timestamp time.Time `json:"timestamp"`
}

// ComplaintStatusUpdate is the response of a complaint status change
type ComplaintStatusUpdate struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
	Status  string `json:"status"`
}

// DashboardSummary is the compact totals view
type DashboardSummary struct {
	TotalUsers       int64     `json:"total_users"`
	TotalRoutes      int64     `json:"total_routes"`
	TotalComplaints  int64     `json:"total_complaints"`
	TotalFeedback    int64     `json:"total_feedback"`
	RecentComplaints int64     `json:"recent_complaints"` // last 7 days
	RecentFeedback   int64     `json:"recent_feedback"`
	Timestamp        time.Time `json:"timestamp"`
}

type RealTimeMetrics struct {
	HourlyComplaints int64     `json:"hourly_complaints"`
	HourlyFeedback   int64     `json:"hourly_feedback"`
	DailyComplaints  int64     `json:"daily_complaints"`
	DailyFeedback    int64     `json:"daily_feedback"`
	Timestamp        time.Time `json:"timestamp"`
}

// CollectRequest is the body of POST analytics/collect
type CollectRequest struct {
	DataType string   `json:"data_type"`
	Value    *float64 `json:"value"`
}

type CollectResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// AdminDashboardAnalytics is the admin landing page summary
type AdminDashboardAnalytics struct {
	Users struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
		Admins int64 `json:"admins"`
	} `json:"users"`
	Routes struct {
		Total int64 `json:"total"`
	} `json:"routes"`
	Complaints struct {
		Total          int64   `json:"total"`
		Pending        int64   `json:"pending"`
		Resolved       int64   `json:"resolved"`
		ResolutionRate float64 `json:"resolution_rate"`
	} `json:"complaints"`
	Feedback struct {
		Total     int64   `json:"total"`
		AvgRating float64 `json:"avg_rating"`
	} `json:"feedback"`
	RecentActivity struct {
		Complaints int64 `json:"complaints"` // last 30 days
		Feedback   int64 `json:"feedback"`
	} `json:"recent_activity"`
	Analytics struct {
		Summary     string  `json:"summary"`
		HealthScore float64 `json:"health_score"`
	} `json:"analytics"`
}

// Recommendation sources
const (
	SourceRoutes     = "routes"
	SourcePredictive = "predictive"
	SourceComplaints = "complaints"
)

type Recommendation struct {
	Source  string `json:"source"`
	Subject string `json:"subject,omitempty"` // route name for route recommendations
	Text    string `json:"text"`
}

type RecommendationList struct {
	Recommendations []Recommendation `json:"recommendations"`
}
