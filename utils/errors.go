package utils

import "errors"

var (
	ErrInvalidPeriod       = errors.New("period must be day, week or month")
	ErrInvalidUserType     = errors.New("user_type must be active, new or inactive")
	ErrInvalidForecastDays = errors.New("forecast_days must be between 1 and 30")
	ErrInvalidAnalysisType = errors.New("analysis_type must be all, trends, categories or routes")
	ErrInvalidAreaType     = errors.New("area_type must be hotspots, coverage or mobility")
	ErrInvalidLimit        = errors.New("limit must be between 1 and 50")
	ErrInvalidID           = errors.New("id must be a positive integer")
	ErrInvalidStatus       = errors.New("status must be pending, in_progress, resolved or rejected")
	ErrInvalidTime         = errors.New("time must be RFC 3339")
	ErrInvalidTimeRange    = errors.New("start_time must not be after end_time")
	ErrMissingDataType     = errors.New("data_type and value are required")
	ErrInvalidBaseURL      = errors.New("base URL must be an absolute http or https URL")
	ErrInvalidSection      = errors.New("unknown screen section")
	ErrInvalidReportKind   = errors.New("unknown report kind")
	ErrComplaintNotFound   = errors.New("complaint not found")
)
