package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"transit-dashboard/cache"
	"transit-dashboard/model"
	"transit-dashboard/screen"
	"transit-dashboard/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

var errUnknownScreen = errors.New("screen must be dashboard or advanced")

// sendJSONWithETag sends data with a content hash ETag and answers 304 when the client copy is current
func sendJSONWithETag(w http.ResponseWriter, r *http.Request, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		SendJSONError(w, http.StatusInternalServerError, errors.New("encoding failed"), "")
		return
	}

	etag := utils.ETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

func (h *DashboardHandler) dashboardSnapshot(r *http.Request) (*model.DashboardSnapshot, error) {
	ctx, cancel := h.queryContext(r)
	defer cancel()
	return cache.Remember(ctx, h.snapshots, keyDashboardSnap, cache.TTLRealtime, h.service.DashboardSnapshot)
}

func (h *DashboardHandler) advancedSnapshot(r *http.Request) (*model.AdvancedAnalyticsSnapshot, error) {
	ctx, cancel := h.queryContext(r)
	defer cancel()
	return cache.Remember(ctx, h.snapshots, keyAdvancedSnap, cache.TTLSummary, h.service.AdvancedSnapshot)
}

// Snapshot handles GET /api/v1/snapshots/{screen}
func (h *DashboardHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	var (
		snap any
		err  error
	)
	switch mux.Vars(r)["screen"] {
	case screen.ScreenDashboard:
		snap, err = h.dashboardSnapshot(r)
	case screen.ScreenAdvanced:
		snap, err = h.advancedSnapshot(r)
	default:
		SendJSONError(w, http.StatusNotFound, errUnknownScreen, "")
		return
	}
	if err != nil {
		sendAnalyticsError(w, r, err)
		return
	}

	sendJSONWithETag(w, r, snap)
}

// Screen handles GET /api/v1/screens/{screen}?section= and returns the rendered view
func (h *DashboardHandler) Screen(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["screen"]
	raw := r.URL.Query().Get("section")

	var view screen.View
	switch name {
	case screen.ScreenDashboard:
		section, err := screen.ParseSection(raw, screen.DashboardTabs)
		if err != nil {
			sendBadRequest(w, err)
			return
		}
		snap, err := h.dashboardSnapshot(r)
		if err != nil {
			sendAnalyticsError(w, r, err)
			return
		}
		view = screen.RenderDashboard(snap, section)
	case screen.ScreenAdvanced:
		section, err := screen.ParseSection(raw, screen.AdvancedSections)
		if err != nil {
			sendBadRequest(w, err)
			return
		}
		snap, err := h.advancedSnapshot(r)
		if err != nil {
			sendAnalyticsError(w, r, err)
			return
		}
		view = screen.RenderAdvanced(snap, section)
	default:
		SendJSONError(w, http.StatusNotFound, errUnknownScreen, "")
		return
	}

	sendJSONWithETag(w, r, view)
}
