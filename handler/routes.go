package handler

import (
	"github.com/gorilla/mux"
)

// Middleware wraps a handler, e.g. AdminAuth.Protect
type Middleware = mux.MiddlewareFunc

// Register mounts the API on r. protect guards everything under /api/v1; it may be nil.
func (h *DashboardHandler) Register(r *mux.Router, protect Middleware) {
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/cache/metrics", h.CacheMetrics).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	if protect != nil {
		api.Use(protect)
	}

	d := api.PathPrefix("/dashboard").Subrouter()
	d.HandleFunc("/real-time-stats", h.RealTimeStats).Methods("GET")
	d.HandleFunc("/route-analytics", h.RouteAnalytics).Methods("GET")
	d.HandleFunc("/user-behavior", h.UserBehavior).Methods("GET")
	d.HandleFunc("/predictive-insights", h.PredictiveInsights).Methods("GET")
	d.HandleFunc("/complaint-intelligence", h.ComplaintIntelligence).Methods("GET")
	d.HandleFunc("/geographic-intelligence", h.GeographicIntelligence).Methods("GET")
	d.HandleFunc("/system-health", h.SystemHealth).Methods("GET")
	d.HandleFunc("/recommendations", h.Recommendations).Methods("GET")
	d.HandleFunc("/live", h.Live).Methods("GET")

	d.HandleFunc("/top-routes", h.TopRoutes).Methods("GET")
	d.HandleFunc("/usage-statistics", h.UsageStatistics).Methods("GET")
	d.HandleFunc("/complaints", h.Complaints).Methods("GET")
	d.HandleFunc("/complaints/{id}", h.UpdateComplaintStatus).Methods("PUT")
	d.HandleFunc("/heatmap-data", h.HeatmapData).Methods("GET")
	d.HandleFunc("/analytics", h.Summary).Methods("GET")
	d.HandleFunc("/real-time-metrics", h.RealTimeMetrics).Methods("GET")
	d.HandleFunc("/analytics/collect", h.Collect).Methods("POST")
	d.HandleFunc("/admin/dashboard/analytics", h.AdminDashboardAnalytics).Methods("GET")

	api.HandleFunc("/snapshots/{screen}", h.Snapshot).Methods("GET")
	api.HandleFunc("/screens/{screen}", h.Screen).Methods("GET")

	api.HandleFunc("/reports", h.ListReports).Methods("GET")
	api.HandleFunc("/reports/{kind}", h.ExportReport).Methods("GET")
	api.HandleFunc("/reports/{kind}/qr", h.ReportQR).Methods("GET")
}
