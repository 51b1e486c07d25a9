package handler

import (
	"errors"
	"net/http"
	"strconv"

	"transit-dashboard/report"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// ReportEntry is a catalogue entry with its export links
type ReportEntry struct {
	report.Entry
	URL   string `json:"url"`
	QRURL string `json:"qr_url"`
}

// ListReports handles GET /api/v1/reports
func (h *DashboardHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	entries := report.Catalogue()
	out := make([]ReportEntry, 0, len(entries))
	for _, e := range entries {
		url, err := report.ExportURL(h.baseURL, e.Kind)
		if err != nil {
			log.Error().Err(err).Str("base_url", h.baseURL).Msg("Invalid base URL for report links")
			SendJSONError(w, http.StatusInternalServerError, err, "Server base URL is misconfigured")
			return
		}
		out = append(out, ReportEntry{Entry: e, URL: url, QRURL: url + "/qr"})
	}

	SendJSONSuccess(w, http.StatusOK, map[string]interface{}{"reports": out})
}

// ExportReport handles GET /api/v1/reports/{kind}
func (h *DashboardHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	entry, err := report.Lookup(mux.Vars(r)["kind"])
	if err != nil {
		SendJSONError(w, http.StatusNotFound, err, "")
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	rep, err := h.exporter.Export(ctx, entry.Kind)
	if err != nil {
		sendAnalyticsError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+string(entry.Kind)+`.json"`)
	SendJSONSuccess(w, http.StatusOK, rep)
}

// ReportQR handles GET /api/v1/reports/{kind}/qr?size=&level=
func (h *DashboardHandler) ReportQR(w http.ResponseWriter, r *http.Request) {
	entry, err := report.Lookup(mux.Vars(r)["kind"])
	if err != nil {
		SendJSONError(w, http.StatusNotFound, err, "")
		return
	}

	query := r.URL.Query()

	// Get size parameter (default: 256, min: 128, max: 1024)
	size := 256
	if sizeStr := query.Get("size"); sizeStr != "" {
		parsedSize, err := strconv.Atoi(sizeStr)
		if err != nil {
			SendJSONError(w, http.StatusBadRequest, errors.New("invalid size parameter"), "Size must be a number")
			return
		}
		if parsedSize < 128 || parsedSize > 1024 {
			SendJSONError(w, http.StatusBadRequest, errors.New("size out of range"), "Size must be between 128 and 1024")
			return
		}
		size = parsedSize
	}

	levelName := query.Get("level")
	level, err := report.ParseLevel(levelName)
	if err != nil {
		SendJSONError(w, http.StatusBadRequest, err, "Level must be: low, medium, high, or highest")
		return
	}

	png, err := report.QRCode(h.baseURL, entry.Kind, size, level)
	if err != nil {
		log.Error().Err(err).Str("kind", string(entry.Kind)).Msg("Failed to generate QR code")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))

	if _, err := w.Write(png); err != nil {
		log.Error().Err(err).Msg("Failed to write QR code response")
		return
	}

	log.Info().
		Str("kind", string(entry.Kind)).
		Int("size", size).
		Str("level", levelName).
		Msg("Report QR code generated")
}
