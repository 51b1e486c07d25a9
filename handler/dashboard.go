package handler

import (
	"context"
	"fmt"
	"net/http"

	"transit-dashboard/cache"
	"transit-dashboard/model"
	"transit-dashboard/utils"
)

// Cache keys of the dashboard analytics
const (
	keyRealTimeStats   = cache.PrefixDashboard + "real-time-stats"
	keyRouteAnalytics  = cache.PrefixDashboard + "route-analytics:%s:%s"
	keyUserBehavior    = cache.PrefixDashboard + "user-behavior:%s"
	keyPredictive      = cache.PrefixDashboard + "predictive-insights:%d"
	keyComplaintIntel  = cache.PrefixComplaints + ":intelligence:%s"
	keyGeographic      = cache.PrefixDashboard + "geographic-intelligence:%s"
	keySystemHealth    = cache.PrefixDashboard + "system-health"
	keyDashboardSnap   = cache.PrefixDashboard + "snapshot:dashboard"
	keyAdvancedSnap    = cache.PrefixDashboard + "snapshot:advanced"
	keyRecommendations = cache.PrefixDashboard + "recommendations"
)

func idKey(id *uint) string {
	if id == nil {
		return "all"
	}
	return fmt.Sprint(*id)
}

// RealTimeStats handles GET /api/v1/dashboard/real-time-stats
func (h *DashboardHandler) RealTimeStats(w http.ResponseWriter, r *http.Request) {
	serveCached(h, w, r, keyRealTimeStats, cache.TTLRealtime, h.service.RealTimeStats)
}

// RouteAnalytics handles GET /api/v1/dashboard/route-analytics?period=&route_id=
func (h *DashboardHandler) RouteAnalytics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	period, err := utils.ParsePeriod(query.Get("period"))
	if err != nil {
		sendBadRequest(w, err)
		return
	}
	routeID, err := utils.ParseOptionalID(query.Get("route_id"))
	if err != nil {
		sendBadRequest(w, err)
		return
	}

	key := fmt.Sprintf(keyRouteAnalytics, period, idKey(routeID))
	serveCached(h, w, r, key, cache.TTLSummary, func(ctx context.Context) (*model.RouteAnalytics, error) {
		return h.service.RouteAnalytics(ctx, period, routeID)
	})
}

// UserBehavior handles GET /api/v1/dashboard/user-behavior?user_type=
func (h *DashboardHandler) UserBehavior(w http.ResponseWriter, r *http.Request) {
	userType, err := utils.ParseUserType(r.URL.Query().Get("user_type"))
	if err != nil {
		sendBadRequest(w, err)
		return
	}

	serveCached(h, w, r, fmt.Sprintf(keyUserBehavior, userType), cache.TTLSummary, func(ctx context.Context) (*model.UserBehavior, error) {
		return h.service.UserBehavior(ctx, userType)
	})
}

// PredictiveInsights handles GET /api/v1/dashboard/predictive-insights?forecast_days=
func (h *DashboardHandler) PredictiveInsights(w http.ResponseWriter, r *http.Request) {
	days, err := utils.ParseForecastDays(r.URL.Query().Get("forecast_days"))
	if err != nil {
		sendBadRequest(w, err)
		return
	}

	serveCached(h, w, r, fmt.Sprintf(keyPredictive, days), cache.TTLSummary, func(ctx context.Context) (*model.PredictiveInsights, error) {
		return h.service.PredictiveInsights(ctx, days)
	})
}

// ComplaintIntelligence handles GET /api/v1/dashboard/complaint-intelligence?analysis_type=
func (h *DashboardHandler) ComplaintIntelligence(w http.ResponseWriter, r *http.Request) {
	analysisType, err := utils.ParseAnalysisType(r.URL.Query().Get("analysis_type"))
	if err != nil {
		sendBadRequest(w, err)
		return
	}

	serveCached(h, w, r, fmt.Sprintf(keyComplaintIntel, analysisType), cache.TTLSummary, func(ctx context.Context) (*model.ComplaintIntelligence, error) {
		return h.service.ComplaintIntelligence(ctx, analysisType)
	})
}

// GeographicIntelligence handles GET /api/v1/dashboard/geographic-intelligence?area_type=
func (h *DashboardHandler) GeographicIntelligence(w http.ResponseWriter, r *http.Request) {
	areaType, err := utils.ParseAreaType(r.URL.Query().Get("area_type"))
	if err != nil {
		sendBadRequest(w, err)
		return
	}

	serveCached(h, w, r, fmt.Sprintf(keyGeographic, areaType), cache.TTLSummary, func(ctx context.Context) (*model.GeographicIntelligence, error) {
		return h.service.GeographicIntelligence(ctx, areaType)
	})
}

// SystemHealth handles GET /api/v1/dashboard/system-health
func (h *DashboardHandler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	serveCached(h, w, r, keySystemHealth, cache.TTLRealtime, h.service.SystemHealth)
}

// Recommendations handles GET /api/v1/dashboard/recommendations
func (h *DashboardHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	serveCached(h, w, r, keyRecommendations, cache.TTLList, h.service.Recommendations)
}
