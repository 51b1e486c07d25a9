package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"transit-dashboard/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	geoWindowDays = 7
	earthRadiusKM = 6371.0
)

const geoFallbackMessage = "Geographic analysis failed"

// GeographicIntelligence runs one geographic analysis (hotspots, coverage or mobility) over the last 7 days.
// Failures are logged and answered with the empty error_fallback payload.
func (s *Service) GeographicIntelligence(ctx context.Context, areaType string) (*model.GeographicIntelligence, error) {
	out := &model.GeographicIntelligence{
		Hotspots:         []model.Hotspot{},
		CoverageAnalysis: []model.RouteCoverage{},
		Patterns:         []model.MobilityPattern{},
	}
	var err error
	switch areaType {
	case "coverage":
		out.Type = model.GeoTypeCoverage
		out.CoverageAnalysis, err = s.Coverage(ctx)
	case "mobility":
		out.Type = model.GeoTypeMobility
		out.Patterns, err = s.Mobility(ctx)
	default:
		out.Type = model.GeoTypeHotspots
		out.Hotspots, err = s.Hotspots(ctx)
	}
	if err != nil {
		log.Error().Err(err).Str("area_type", areaType).Msg("Geographic analysis failed")
		return GeographicFallback(), nil
	}
	return out, nil
}

// GeographicFallback is the payload returned when a geographic analysis fails
func GeographicFallback() *model.GeographicIntelligence {
	return &model.GeographicIntelligence{
		Type:             model.GeoTypeErrorFallback,
		Message:          geoFallbackMessage,
		Hotspots:         []model.Hotspot{},
		CoverageAnalysis: []model.RouteCoverage{},
		Patterns:         []model.MobilityPattern{},
	}
}

func (s *Service) recentSearches(ctx context.Context) ([]model.SearchLog, error) {
	since := s.clock().AddDate(0, 0, -geoWindowDays)
	var searches []model.SearchLog
	err := s.db.WithContext(ctx).
		Select("route_id", "start_lat", "start_lng", "end_lat", "end_lng").
		Where("timestamp >= ?", since).
		Find(&searches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent searches: %w", err)
	}
	return searches, nil
}

type gridCell struct{ lat, lng float64 }

func (s *Service) cell(lat, lng float64) gridCell {
	return gridCell{round(lat, s.cfg.HotspotPrecision), round(lng, s.cfg.HotspotPrecision)}
}

func (c gridCell) point() model.GeoPoint { return model.GeoPoint{Lat: c.lat, Lng: c.lng} }

// Hotspots buckets search origins into grid cells and returns the busiest cells
func (s *Service) Hotspots(ctx context.Context) ([]model.Hotspot, error) {
	searches, err := s.recentSearches(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[gridCell]int64)
	for _, sl := range searches {
		counts[s.cell(sl.StartLat, sl.StartLng)]++
	}

	out := make([]model.Hotspot, 0, len(counts))
	for c, n := range counts {
		out = append(out, model.Hotspot{Lat: c.lat, Lng: c.lng, Intensity: n, Level: intensityLevel(n, 50, 20)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Intensity != out[j].Intensity {
			return out[i].Intensity > out[j].Intensity
		}
		if out[i].Lat != out[j].Lat {
			return out[i].Lat < out[j].Lat
		}
		return out[i].Lng < out[j].Lng
	})
	if len(out) > s.cfg.MaxHotspots {
		out = out[:s.cfg.MaxHotspots]
	}
	return out, nil
}

// Coverage reports, per route, its endpoints, recent usage and how much of its path sits near demand
func (s *Service) Coverage(ctx context.Context) ([]model.RouteCoverage, error) {
	var routes []model.Route
	err := s.db.WithContext(ctx).
		Preload("Paths", func(tx *gorm.DB) *gorm.DB { return tx.Order("point_order") }).
		Order("id").
		Find(&routes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}
	searches, err := s.recentSearches(ctx)
	if err != nil {
		return nil, err
	}

	usage := make(map[uint]int64)
	demand := make([]model.GeoPoint, 0, len(searches)*2)
	for _, sl := range searches {
		if sl.RouteID != nil {
			usage[*sl.RouteID]++
		}
		demand = append(demand,
			model.GeoPoint{Lat: sl.StartLat, Lng: sl.StartLng},
			model.GeoPoint{Lat: sl.EndLat, Lng: sl.EndLng})
	}

	out := make([]model.RouteCoverage, 0, len(routes))
	for _, r := range routes {
		rc := model.RouteCoverage{
			RouteID:    r.ID,
			RouteName:  r.Name,
			UsageCount: usage[r.ID],
		}
		if n := len(r.Paths); n > 0 {
			first, last := r.Paths[0], r.Paths[n-1]
			rc.StartLocation = &model.GeoPoint{Lat: first.Lat, Lng: first.Lng}
			rc.EndLocation = &model.GeoPoint{Lat: last.Lat, Lng: last.Lng}

			var covered int64
			for _, p := range r.Paths {
				if nearAny(model.GeoPoint{Lat: p.Lat, Lng: p.Lng}, demand, s.cfg.CoverageRadiusKM) {
					covered++
				}
			}
			rc.CoverageScore = percent(covered, int64(n))
		}
		out = append(out, rc)
	}
	return out, nil
}

// Mobility ranks origin/destination cell pairs by how often they are searched together
func (s *Service) Mobility(ctx context.Context) ([]model.MobilityPattern, error) {
	searches, err := s.recentSearches(ctx)
	if err != nil {
		return nil, err
	}
	type pair struct{ from, to gridCell }
	counts := make(map[pair]int64)
	for _, sl := range searches {
		counts[pair{s.cell(sl.StartLat, sl.StartLng), s.cell(sl.EndLat, sl.EndLng)}]++
	}

	out := make([]model.MobilityPattern, 0, len(counts))
	for p, n := range counts {
		out = append(out, model.MobilityPattern{
			Start:      p.from.point(),
			End:        p.to.point(),
			Frequency:  n,
			Popularity: intensityLevel(n, 20, 10),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		if a.Start != b.Start {
			return a.Start.Lat < b.Start.Lat || (a.Start.Lat == b.Start.Lat && a.Start.Lng < b.Start.Lng)
		}
		return a.End.Lat < b.End.Lat || (a.End.Lat == b.End.Lat && a.End.Lng < b.End.Lng)
	})
	if len(out) > s.cfg.MaxHotspots {
		out = out[:s.cfg.MaxHotspots]
	}
	return out, nil
}

func intensityLevel(n, high, medium int64) string {
	switch {
	case n > high:
		return model.LevelHigh
	case n > medium:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

func nearAny(p model.GeoPoint, points []model.GeoPoint, radiusKM float64) bool {
	for _, q := range points {
		if haversineKM(p, q) <= radiusKM {
			return true
		}
	}
	return false
}

// haversineKM is the great-circle distance between a and b
func haversineKM(a, b model.GeoPoint) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}
