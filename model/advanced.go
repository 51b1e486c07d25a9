package model

// AdvancedAnalyticsSnapshot is everything the AdvancedAnalytics screen shows
type AdvancedAnalyticsSnapshot struct {
	Predictive *PredictiveInsights    `json:"predictive,omitempty"`
	Geographic *GeographicSnapshot    `json:"geographic,omitempty"`
	Complaints *ComplaintIntelligence `json:"complaints,omitempty"`
	System     *SystemHealth          `json:"system,omitempty"`
}

// PredictiveInsights combines historical growth, a linear forecast and hourly seasonality
type PredictiveInsights struct {
	GrowthAnalytics  *GrowthAnalytics  `json:"growth_analytics,omitempty"`
	Predictions      *Predictions      `json:"predictions,omitempty"`
	SeasonalPatterns *SeasonalPatterns `json:"seasonal_patterns,omitempty"`
	Recommendations  []string          `json:"recommendations,omitempty"`
}

type GrowthAnalytics struct {
	CurrentUsers   *int64       `json:"current_users,omitempty"`
	GrowthRate     *float64     `json:"growth_rate,omitempty"` // week over week, percent
	AvgDailyGrowth *float64     `json:"avg_daily_growth,omitempty"`
	HistoricalData []DailyUsers `json:"historical_data"`
}

type DailyUsers struct {
	Date     string `json:"date"` // YYYY-MM-DD
	NewUsers int64  `json:"new_users"`
}

// Confidence levels of a forecast
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

type Predictions struct {
	ForecastPeriod  *int64          `json:"forecast_period,omitempty"`
	PredictedGrowth []ForecastPoint `json:"predicted_growth"`
	ConfidenceLevel string          `json:"confidence_level,omitempty"`
}

type ForecastPoint struct {
	Date           string  `json:"date"`
	PredictedUsers int64   `json:"predicted_users"`
	GrowthFactor   float64 `json:"growth_factor"`
}

type SeasonalPatterns struct {
	PeakHours  []HourCount     `json:"peak_hours"`
	UsageTrend []DailySearches `json:"usage_trend"`
}

type DailySearches struct {
	Date     string `json:"date"`
	Searches int64  `json:"searches"`
}

// GeographicSnapshot bundles all three geographic analyses for the screen
type GeographicSnapshot struct {
	Hotspots []Hotspot         `json:"hotspots"`
	Coverage []RouteCoverage   `json:"coverage"`
	Mobility []MobilityPattern `json:"mobility"`
}

// Intensity levels shared by hotspots and mobility popularity
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Hotspot struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity int64   `json:"intensity"` // searches originating in the cell
	Level     string  `json:"level"`
}

type RouteCoverage struct {
	RouteID       uint      `json:"route_id,omitempty"`
	RouteName     string    `json:"route_name"`
	StartLocation *GeoPoint `json:"start_location"`
	EndLocation   *GeoPoint `json:"end_location"`
	UsageCount    int64     `json:"usage_count"`
	CoverageScore float64   `json:"coverage_score"` // percent of path points near demand
}

type MobilityPattern struct {
	Start      GeoPoint `json:"start"`
	End        GeoPoint `json:"end"`
	Frequency  int64    `json:"frequency"`
	Popularity string   `json:"popularity"`
}

// Geographic analysis result types
const (
	GeoTypeHotspots      = "search_hotspots"
	GeoTypeCoverage      = "route_coverage"
	GeoTypeMobility      = "mobility_patterns"
	GeoTypeErrorFallback = "error_fallback"
)

// GeographicIntelligence is the response of one geographic analysis.
// Only the list matching Type is set; the error fallback sets all three to
// empty lists.
type GeographicIntelligence struct {
	Type             string            `json:"type"`
	Message          string            `json:"message,omitempty"`
	Hotspots         []Hotspot         `json:"hotspots"`
	CoverageAnalysis []RouteCoverage   `json:"coverage_analysis"`
	Patterns         []MobilityPattern `json:"patterns"`
}

// ComplaintIntelligence is the 30-day complaint analysis
type ComplaintIntelligence struct {
	Overview      *ComplaintOverview  `json:"overview,omitempty"`
	Trends        []ComplaintTrend    `json:"trends,omitempty"`
	RouteAnalysis []RouteComplaints   `json:"route_analysis,omitempty"`
	Categories    ComplaintCategories `json:"categories,omitempty"`
	Insights      []string            `json:"insights,omitempty"`
}

type ComplaintOverview struct {
	TotalComplaints      *int64   `json:"total_complaints,omitempty"`
	ResolvedComplaints   *int64   `json:"resolved_complaints,omitempty"`
	ResolutionRate       *float64 `json:"resolution_rate,omitempty"`
	AvgResponseTimeHours *float64 `json:"avg_response_time_hours,omitempty"`
}

type ComplaintTrend struct {
	Date     string `json:"date"`
	Total    int64  `json:"total"`
	Resolved int64  `json:"resolved"`
	Pending  int64  `json:"pending"`
}

type RouteComplaints struct {
	RouteID                uint    `json:"route_id"`
	RouteName              string  `json:"route_name"`
	TotalComplaints        int64   `json:"total_complaints"`
	ResolvedComplaints     int64   `json:"resolved_complaints"`
	ResolutionRate         float64 `json:"resolution_rate"`
	AvgResolutionTimeHours float64 `json:"avg_resolution_time_hours"`
	PriorityLevel          string  `json:"priority_level"`
}

// Complaint categories, in display order
const (
	CategoryDelays   = "delays"
	CategoryCrowding = "crowding"
	CategoryDriver   = "driver"
	CategoryVehicle  = "vehicle"
	CategoryPricing  = "pricing"
	CategoryService  = "service"
)

var ComplaintCategoryOrder = []string{
	CategoryDelays,
	CategoryCrowding,
	CategoryDriver,
	CategoryVehicle,
	CategoryPricing,
	CategoryService,
}

// ComplaintCategories counts complaints per category. Absent keys are zero.
type ComplaintCategories map[string]int64

// Health states
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"

	HealthExcellent = "excellent"
	HealthDegraded  = "degraded"
	HealthPoor      = "poor"

	BackupUpToDate = "up_to_date"
	BackupOutdated = "outdated"
	BackupMissing  = "missing"

	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// SystemHealth reports component health, API performance and storage usage
type SystemHealth struct {
	Timestamp          string              `json:"timestamp,omitempty"`
	OverallHealth      string              `json:"overall_health,omitempty"`
	PerformanceMetrics *PerformanceMetrics `json:"performance_metrics,omitempty"`
	ErrorAnalysis      *ErrorAnalysis      `json:"error_analysis,omitempty"`
	Recommendations    []string            `json:"recommendations"`
}

type PerformanceMetrics struct {
	Database *ComponentHealth `json:"database,omitempty"`
	Cache    *ComponentHealth `json:"cache,omitempty"`
	API      *APIHealth       `json:"api,omitempty"`
	Storage  *StorageHealth   `json:"storage,omitempty"`
}

type ComponentHealth struct {
	Status         string   `json:"status,omitempty"`
	ResponseTimeMS *float64 `json:"response_time_ms,omitempty"`
	ConnectionPool string   `json:"connection_pool,omitempty"`
}

type APIHealth struct {
	AvgResponseTimeMS *float64 `json:"avg_response_time_ms,omitempty"`
	ErrorRate         *float64 `json:"error_rate,omitempty"` // fraction of 5xx responses
	UptimePercentage  *float64 `json:"uptime_percentage,omitempty"`
	RequestsLastHour  *int64   `json:"requests_last_hour,omitempty"`
}

type StorageHealth struct {
	DatabaseSizeMB *float64 `json:"database_size_mb,omitempty"`
	LogSizeMB      *float64 `json:"log_size_mb,omitempty"`
	BackupStatus   string   `json:"backup_status,omitempty"`
}

type ErrorAnalysis struct {
	RecentErrors   *int64 `json:"recent_errors,omitempty"`
	ErrorTrend     string `json:"error_trend,omitempty"`
	CriticalIssues *int64 `json:"critical_issues,omitempty"`
}
