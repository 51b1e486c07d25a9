package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"transit-dashboard/model"
	"transit-dashboard/utils"

	"github.com/skip2/go-qrcode"
)

// ErrInvalidLevel is returned for an unknown QR recovery level
var ErrInvalidLevel = errors.New("level must be low, medium, high or highest")

// Kind identifies one of the exportable reports
type Kind string

const (
	MonthlyPerformance     Kind = "monthly_performance"
	GrowthPredictions      Kind = "growth_predictions"
	GeographicCoverage     Kind = "geographic_coverage"
	ComplaintsSatisfaction Kind = "complaints_satisfaction"
)

// Entry describes a report in the catalogue
type Entry struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Section     string `json:"section"` // analytics section the report is built from
}

var catalogue = []Entry{
	{
		Kind:        MonthlyPerformance,
		Title:       "Monthly performance report",
		Description: "Performance of every route and user segment over the last 30 days",
		Section:     "route-analytics",
	},
	{
		Kind:        GrowthPredictions,
		Title:       "Growth and predictions report",
		Description: "Growth trends and the user forecast",
		Section:     "predictive-insights",
	},
	{
		Kind:        GeographicCoverage,
		Title:       "Geographic coverage report",
		Description: "Route coverage and areas with unmet demand",
		Section:     "geographic-intelligence",
	},
	{
		Kind:        ComplaintsSatisfaction,
		Title:       "Complaints and satisfaction report",
		Description: "Complaint volumes, categories and resolution rates",
		Section:     "complaint-intelligence",
	},
}

// Catalogue lists the available reports in display order
func Catalogue() []Entry {
	out := make([]Entry, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup finds the catalogue entry for a kind name
func Lookup(name string) (Entry, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range catalogue {
		if string(e.Kind) == name {
			return e, nil
		}
	}
	return Entry{}, utils.ErrInvalidReportKind
}

// Analytics is the subset of the analytics service reports are built from
type Analytics interface {
	RouteAnalytics(ctx context.Context, period string, routeID *uint) (*model.RouteAnalytics, error)
	UserBehavior(ctx context.Context, userType string) (*model.UserBehavior, error)
	PredictiveInsights(ctx context.Context, forecastDays int) (*model.PredictiveInsights, error)
	Hotspots(ctx context.Context) ([]model.Hotspot, error)
	Coverage(ctx context.Context) ([]model.RouteCoverage, error)
	ComplaintIntelligence(ctx context.Context, analysisType string) (*model.ComplaintIntelligence, error)
}

// Report is a generated export
type Report struct {
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Data        any       `json:"data"`
}

type MonthlyPerformanceData struct {
	Routes *model.RouteAnalytics `json:"routes"`
	Users  *model.UserBehavior   `json:"users"`
}

type GeographicCoverageData struct {
	Coverage []model.RouteCoverage `json:"coverage"`
	Hotspots []model.Hotspot       `json:"hotspots"`
}

// Exporter builds reports from live analytics
type Exporter struct {
	analytics    Analytics
	forecastDays int
	now          func() time.Time
}

func NewExporter(analytics Analytics, forecastDays int) *Exporter {
	if forecastDays <= 0 {
		forecastDays = utils.DefaultForecastDays
	}
	return &Exporter{analytics: analytics, forecastDays: forecastDays, now: time.Now}
}

// Export generates the report of the given kind
func (e *Exporter) Export(ctx context.Context, kind Kind) (*Report, error) {
	entry, err := Lookup(string(kind))
	if err != nil {
		return nil, err
	}

	var data any
	switch entry.Kind {
	case MonthlyPerformance:
		routes, err := e.analytics.RouteAnalytics(ctx, "month", nil)
		if err != nil {
			return nil, fmt.Errorf("route analytics: %w", err)
		}
		users, err := e.analytics.UserBehavior(ctx, "active")
		if err != nil {
			return nil, fmt.Errorf("user behavior: %w", err)
		}
		data = MonthlyPerformanceData{Routes: routes, Users: users}
	case GrowthPredictions:
		data, err = e.analytics.PredictiveInsights(ctx, e.forecastDays)
		if err != nil {
			return nil, fmt.Errorf("predictive insights: %w", err)
		}
	case GeographicCoverage:
		coverage, err := e.analytics.Coverage(ctx)
		if err != nil {
			return nil, fmt.Errorf("coverage: %w", err)
		}
		hotspots, err := e.analytics.Hotspots(ctx)
		if err != nil {
			return nil, fmt.Errorf("hotspots: %w", err)
		}
		data = GeographicCoverageData{Coverage: coverage, Hotspots: hotspots}
	case ComplaintsSatisfaction:
		data, err = e.analytics.ComplaintIntelligence(ctx, "all")
		if err != nil {
			return nil, fmt.Errorf("complaint intelligence: %w", err)
		}
	}

	return &Report{
		Kind:        entry.Kind,
		Title:       entry.Title,
		GeneratedAt: e.now().UTC(),
		Data:        data,
	}, nil
}

// ExportURL is the public address of a report export
func ExportURL(baseURL string, kind Kind) (string, error) {
	if err := utils.ValidateBaseURL(baseURL); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/v1/reports/%s", strings.TrimRight(baseURL, "/"), kind), nil
}

// ParseLevel maps a recovery level name to its qrcode level. Empty means medium.
func ParseLevel(name string) (qrcode.RecoveryLevel, error) {
	switch name {
	case "", "medium":
		return qrcode.Medium, nil
	case "low":
		return qrcode.Low, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	default:
		return qrcode.Medium, ErrInvalidLevel
	}
}

// QRCode renders a PNG QR code pointing at the report export
func QRCode(baseURL string, kind Kind, size int, level qrcode.RecoveryLevel) ([]byte, error) {
	if _, err := Lookup(string(kind)); err != nil {
		return nil, err
	}
	url, err := ExportURL(baseURL, kind)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(url, level, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
