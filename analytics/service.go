// Package analytics computes the dashboard analytics from the transit activity store.
package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"transit-dashboard/config"
	"transit-dashboard/metrics"
	"transit-dashboard/model"

	"gorm.io/gorm"
)

// CachePinger reports the health of the shared cache tier
type CachePinger interface {
	// Ping returns the round trip, whether a remote tier is configured, and its error
	Ping(ctx context.Context) (time.Duration, bool, error)
}

// RequestStats exposes recent API traffic
type RequestStats interface {
	Summary() metrics.Summary
}

// HealthSources are the optional inputs of SystemHealth
type HealthSources struct {
	Cache        CachePinger
	Requests     RequestStats
	DatabasePath string
	LogPath      string
	BackupPath   string
}

// Service runs the analytics queries. All time windows are relative to the clock, in UTC.
type Service struct {
	db     *gorm.DB
	cfg    config.AnalyticsConfig
	now    func() time.Time
	health HealthSources
}

type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithHealthSources(h HealthSources) Option {
	return func(s *Service) { s.health = h }
}

func NewService(db *gorm.DB, cfg config.AnalyticsConfig, opts ...Option) *Service {
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = 7
	}
	if cfg.HotspotPrecision <= 0 {
		cfg.HotspotPrecision = 3
	}
	if cfg.MaxHotspots <= 0 {
		cfg.MaxHotspots = 20
	}
	if cfg.CoverageRadiusKM <= 0 {
		cfg.CoverageRadiusKM = 5
	}

	s := &Service{db: db, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

func (s *Service) count(ctx context.Context, m any, query string, args ...any) (int64, error) {
	var n int64
	tx := s.db.WithContext(ctx).Model(m)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	err := tx.Count(&n).Error
	return n, err
}

func startOfDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

func dateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func percent(part, whole int64) float64 {
	return round(float64(part)/float64(max(whole, 1))*100, 2)
}

// topHours returns the n busiest hours, busiest first, ties broken by hour
func topHours(counts map[int]int64, n int) []model.HourCount {
	out := make([]model.HourCount, 0, len(counts))
	for h, c := range counts {
		out = append(out, model.HourCount{Hour: h, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Hour < out[j].Hour
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortedDates[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
