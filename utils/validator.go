package utils

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"transit-dashboard/model"
)

// Query parameter bounds
const (
	MinForecastDays     = 1
	MaxForecastDays     = 30
	DefaultForecastDays = 7
	MinLimit            = 1
	MaxLimit            = 50
	DefaultLimit        = 10
)

// ParsePeriod validates the route analytics period. Empty means week.
func ParsePeriod(raw string) (string, error) {
	switch p := strings.ToLower(strings.TrimSpace(raw)); p {
	case "":
		return "week", nil
	case "day", "week", "month":
		return p, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// ParseUserType validates the user behavior segment filter. Empty means active.
func ParseUserType(raw string) (string, error) {
	switch u := strings.ToLower(strings.TrimSpace(raw)); u {
	case "":
		return "active", nil
	case "active", "new", "inactive":
		return u, nil
	default:
		return "", ErrInvalidUserType
	}
}

// ParseForecastDays validates forecast_days (1..30, default 7)
func ParseForecastDays(raw string) (int, error) {
	return parseBoundedInt(raw, DefaultForecastDays, MinForecastDays, MaxForecastDays, ErrInvalidForecastDays)
}

// ParseLimit validates limit (1..50, default 10)
func ParseLimit(raw string) (int, error) {
	return parseBoundedInt(raw, DefaultLimit, MinLimit, MaxLimit, ErrInvalidLimit)
}

func parseBoundedInt(raw string, def, lo, hi int, errOut error) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, errOut
	}
	return n, nil
}

// ParseAnalysisType validates the complaint analysis filter. Empty means all.
func ParseAnalysisType(raw string) (string, error) {
	switch a := strings.ToLower(strings.TrimSpace(raw)); a {
	case "":
		return "all", nil
	case "all", "trends", "categories", "routes":
		return a, nil
	default:
		return "", ErrInvalidAnalysisType
	}
}

// ParseAreaType validates the geographic analysis type. Empty means hotspots.
func ParseAreaType(raw string) (string, error) {
	switch a := strings.ToLower(strings.TrimSpace(raw)); a {
	case "":
		return "hotspots", nil
	case "hotspots", "coverage", "mobility":
		return a, nil
	default:
		return "", ErrInvalidAreaType
	}
}

// ParseComplaintStatus validates a complaint status. Empty is allowed when
// optional is true, meaning no filter.
func ParseComplaintStatus(raw string, optional bool) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "":
		if optional {
			return "", nil
		}
	case model.ComplaintPending, model.ComplaintInProgress, model.ComplaintResolved, model.ComplaintRejected:
		return s, nil
	}
	return "", ErrInvalidStatus
}

// ParseOptionalID parses a positive id. Empty returns nil.
func ParseOptionalID(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := ParseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseID parses a required positive id
func ParseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || n == 0 {
		return 0, ErrInvalidID
	}
	return uint(n), nil
}

// ParseOptionalTime parses an RFC 3339 timestamp. Empty returns nil.
func ParseOptionalTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, ErrInvalidTime
	}
	t = t.UTC()
	return &t, nil
}

// ValidateTimeRange rejects a range whose start is after its end
func ValidateTimeRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return ErrInvalidTimeRange
	}
	return nil
}

// ValidateBaseURL checks the public base URL used in report links
func ValidateBaseURL(rawURL string) error {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return ErrInvalidBaseURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidBaseURL
	}
	if parsed.Host == "" {
		return ErrInvalidBaseURL
	}
	return nil
}
