package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"transit-dashboard/cache"
	"transit-dashboard/model"
	"transit-dashboard/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const (
	keyTopRoutes       = cache.PrefixDashboard + "top-routes:%d"
	keyUsageStatistics = cache.PrefixDashboard + "usage-statistics"
	keyComplaintsList  = cache.PrefixComplaints + ":%s:%s"
	keyHeatmap         = cache.PrefixDashboard + "heatmap-data:%s:%s"
	keySummary         = cache.PrefixDashboard + "analytics"
	keyRealTimeMetrics = cache.PrefixDashboard + "real-time-metrics"
	keyAdminAnalytics  = cache.PrefixAdmin + "analytics"
)

// staleOnComplaintUpdate lists the cache prefixes whose values count complaints by status
var staleOnComplaintUpdate = []string{
	cache.PrefixComplaints,
	cache.PrefixAdmin,
	keyRealTimeStats,
	cache.PrefixDashboard + "route-analytics:",
	keyRecommendations,
	keyDashboardSnap,
	keyAdvancedSnap,
}

// maxCollectBody caps the size of an analytics collect request
const maxCollectBody = 1 << 16

func timeKey(t *time.Time) string {
	if t == nil {
		return "none"
	}
	return t.Format(time.RFC3339)
}

// TopRoutes handles GET /api/v1/dashboard/top-routes?limit=
func (h *DashboardHandler) TopRoutes(w http.ResponseWriter, r *http.Request) {
	limit, err := utils.ParseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		sendBadRequest(w, err)
		return
	}

	serveCached(h, w, r, fmt.Sprintf(keyTopRoutes, limit), cache.TTLList, func(ctx context.Context) ([]model.TopRoute, error) {
		return h.service.TopRoutes(ctx, limit)
	})
}

// UsageStatistics handles GET /api/v1/dashboard/usage-statistics
func (h *DashboardHandler) UsageStatistics(w http.ResponseWriter, r *http.Request) {
	serveCached(h, w, r, keyUsageStatistics, cache.TTLList, h.service.UsageStatistics)
}

// Complaints handles GET /api/v1/dashboard/complaints?status_filter=&route_id=
func (h *DashboardHandler) Complaints(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status, err := utils.ParseComplaintStatus(query.Get("status_filter"), true)
	if err != nil {
		sendBadRequest(w, err)
		return
	}
	routeID, err := utils.ParseOptionalID(query.Get("route_id"))
	if err != nil {
		sendBadRequest(w, err)
		return
	}

	statusKey := status
	if statusKey == "" {
		statusKey = "all"
	}
	key := fmt.Sprintf(keyComplaintsList, statusKey, idKey(routeID))
	serveCached(h, w, r, key, cache.TTLList, func(ctx context.Context) ([]model.Complaint, error) {
		return h.service.Complaints(ctx, status, routeID)
	})
}

// UpdateComplaintStatus handles PUT /api/v1/dashboard/complaints/{id}?new_status=
func (h *DashboardHandler) UpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		sendBadRequest(w, err)
		return
	}
	status, err := utils.ParseComplaintStatus(r.URL.Query().Get("new_status"), false)
	if err != nil {
		sendBadRequest(w, err)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	result, err := h.service.UpdateComplaintStatus(ctx, id, status)
	if errors.Is(err, utils.ErrComplaintNotFound) {
		SendJSONError(w, http.StatusNotFound, err, "")
		return
	}
	if err != nil {
		sendAnalyticsError(w, r, err)
		return
	}

	for _, prefix := range staleOnComplaintUpdate {
		n, err := h.snapshots.DeletePrefix(ctx, prefix)
		if err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("Failed to invalidate cache")
			continue
		}
		log.Debug().Str("prefix", prefix).Int("keys", n).Msg("Cache invalidated")
	}

	log.Info().
		Uint("complaint_id", id).
		Str("status", status).
		Msg("Complaint status updated")

	SendJSONSuccess(w, http.StatusOK, result)
}

// HeatmapData handles GET /api/v1/dashboard/heatmap-data?start_time=&end_time=
func (h *DashboardHandler) HeatmapData(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, err := utils.ParseOptionalTime(query.Get("start_time"))
	if err != nil {
		sendBadRequest(w, err)
		return
	}
	end, err := utils.ParseOptionalTime(query.Get("end_time"))
	if err != nil {
		sendBadRequest(w, err)
		return
	}
	if err := utils.ValidateTimeRange(start, end); err != nil {
		sendBadRequest(w, err)
		return
	}

	key := fmt.Sprintf(keyHeatmap, timeKey(start), timeKey(end))
	serveCached(h, w, r, key, cache.TTLList, func(ctx context.Context) ([]model.HeatmapPoint, error) {
		return h.service.HeatmapData(ctx, start, end)
	})
}

// Summary handles GET /api/v1/dashboard/analytics
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	serveCached(h, w, r, keySummary, cache.TTLSummary, h.service.Summary)
}

// RealTimeMetrics handles GET /api/v1/dashboard/real-time-metrics
func (h *DashboardHandler) RealTimeMetrics(w http.ResponseWriter, r *http.Request) {
	serveCached(h, w, r, keyRealTimeMetrics, cache.TTLRealtime, h.service.RealTimeMetrics)
}

// Collect handles POST /api/v1/dashboard/analytics/collect
func (h *DashboardHandler) Collect(w http.ResponseWriter, r *http.Request) {
	var req model.CollectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCollectBody)).Decode(&req); err != nil {
		SendJSONError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	result, err := h.service.Collect(ctx, req)
	if errors.Is(err, utils.ErrMissingDataType) {
		sendBadRequest(w, err)
		return
	}
	if err != nil {
		sendAnalyticsError(w, r, err)
		return
	}

	SendJSONSuccess(w, http.StatusOK, result)
}

// AdminDashboardAnalytics handles GET /api/v1/dashboard/admin/dashboard/analytics
func (h *DashboardHandler) AdminDashboardAnalytics(w http.ResponseWriter, r *http.Request) {
	serveCached(h, w, r, keyAdminAnalytics, cache.TTLSummary, h.service.AdminDashboardAnalytics)
}
