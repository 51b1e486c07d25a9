package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"transit-dashboard/analytics"
	"transit-dashboard/cache"
	"transit-dashboard/config"
	"transit-dashboard/database"
	"transit-dashboard/realtime"
	"transit-dashboard/report"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	// ErrAnalyticsFailed is the only error analytics failures expose to clients
	ErrAnalyticsFailed = errors.New("analytics unavailable")
)

const analyticsFailedMessage = "Failed to compute analytics. Please try again later."

// DashboardHandler serves the dashboard analytics API
type DashboardHandler struct {
	service   *analytics.Service
	db        *gorm.DB
	snapshots *cache.SnapshotCache
	hub       *realtime.Hub
	exporter  *report.Exporter
	config    config.Config
	baseURL   string
}

// NewDashboardHandler creates a new dashboard handler. snapshots and hub may be nil.
func NewDashboardHandler(service *analytics.Service, db *gorm.DB, snapshots *cache.SnapshotCache, hub *realtime.Hub, cfg config.Config) *DashboardHandler {
	// Use configured base_url if provided, otherwise construct from scheme, IP, and port
	baseURL := cfg.WebServer.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s://%s:%s", cfg.WebServer.Scheme, cfg.WebServer.IP, cfg.WebServer.Port)
	}
	return &DashboardHandler{
		service:   service,
		db:        db,
		snapshots: snapshots,
		hub:       hub,
		exporter:  report.NewExporter(service, cfg.Analytics.ForecastDays),
		config:    cfg,
		baseURL:   baseURL,
	}
}

// queryContext bounds one request's analytics queries
func (h *DashboardHandler) queryContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(h.config.Analytics.QueryTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

// serveCached answers from the snapshot cache or computes, caches and sends the result
func serveCached[T any](h *DashboardHandler, w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, compute func(context.Context) (T, error)) {
	ctx, cancel := h.queryContext(r)
	defer cancel()

	result, err := cache.Remember(ctx, h.snapshots, key, ttl, compute)
	if err != nil {
		sendAnalyticsError(w, r, err)
		return
	}
	SendJSONSuccess(w, http.StatusOK, result)
}

func sendAnalyticsError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().
		Err(err).
		Str("path", r.URL.Path).
		Str("query", r.URL.RawQuery).
		Msg("Analytics request failed")
	SendJSONError(w, http.StatusInternalServerError, ErrAnalyticsFailed, analyticsFailedMessage)
}

func sendBadRequest(w http.ResponseWriter, err error) {
	SendJSONError(w, http.StatusBadRequest, err, "Invalid request parameter")
}

// HealthCheck handles GET /health
func (h *DashboardHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{
		"status":   "healthy",
		"database": "connected",
		"redis":    "disabled",
	}

	if _, err := database.Ping(ctx, h.db); err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		status["status"] = "unhealthy"
		status["database"] = "unavailable"
	}

	if _, enabled, err := h.snapshots.Ping(ctx); enabled {
		if err != nil {
			log.Warn().Err(err).Msg("Redis health check failed")
			status["redis"] = "unavailable"
			if status["status"] == "healthy" {
				status["status"] = "degraded"
			}
		} else {
			status["redis"] = "connected"
		}
	}

	code := http.StatusOK
	if status["status"] == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	SendJSONSuccess(w, code, status)
}

// CacheMetrics handles GET /cache/metrics
func (h *DashboardHandler) CacheMetrics(w http.ResponseWriter, r *http.Request) {
	if !h.config.Cache.Enabled || h.snapshots == nil {
		SendJSONError(w, http.StatusServiceUnavailable, errors.New("cache is disabled"), "")
		return
	}

	SendJSONSuccess(w, http.StatusOK, h.snapshots.Metrics())
}

// Live handles GET /api/v1/dashboard/live, a websocket of real-time stats
func (h *DashboardHandler) Live(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		SendJSONError(w, http.StatusServiceUnavailable, errors.New("live updates are disabled"), "")
		return
	}
	h.hub.ServeWS(w, r)
}
