package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"transit-dashboard/model"
)

// Route recommendation texts
const (
	RecPromoteRoute   = "Improve marketing and promotion for this route"
	RecAddVehicles    = "Add vehicles to reduce complaints"
	RecReviewSchedule = "Run a full review of the route schedule"
	RecSimilarRoutes  = "Consider adding similar routes"
)

func periodStart(now time.Time, period string) time.Time {
	switch period {
	case "day":
		return now.AddDate(0, 0, -1)
	case "month":
		return now.AddDate(0, 0, -30)
	default:
		return now.AddDate(0, 0, -7)
	}
}

type routeActivity struct {
	searches int64
	hourSum  int64
	days     map[string]struct{}
	hours    map[int]int64
	total    int64
	resolved int64
}

// RouteAnalytics scores every route (or only routeID) over the period
func (s *Service) RouteAnalytics(ctx context.Context, period string, routeID *uint) (*model.RouteAnalytics, error) {
	now := s.clock()
	start := periodStart(now, period)
	db := s.db.WithContext(ctx)

	var routes []model.Route
	q := db.Order("id")
	if routeID != nil {
		q = q.Where("id = ?", *routeID)
	}
	if err := q.Find(&routes).Error; err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}

	activity := make(map[uint]*routeActivity, len(routes))
	for _, r := range routes {
		activity[r.ID] = &routeActivity{days: map[string]struct{}{}, hours: map[int]int64{}}
	}

	var searches []model.SearchLog
	err := db.Select("route_id", "timestamp").
		Where("route_id IS NOT NULL AND timestamp >= ?", start).
		Find(&searches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load searches: %w", err)
	}
	for _, sl := range searches {
		a, ok := activity[*sl.RouteID]
		if !ok {
			continue
		}
		h := sl.Timestamp.UTC().Hour()
		a.searches++
		a.hourSum += int64(h)
		a.hours[h]++
		a.days[dateKey(sl.Timestamp)] = struct{}{}
	}

	var complaints []model.Complaint
	err = db.Select("route_id", "status").
		Where("route_id IS NOT NULL AND timestamp >= ?", start).
		Find(&complaints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load complaints: %w", err)
	}
	for _, c := range complaints {
		a, ok := activity[*c.RouteID]
		if !ok {
			continue
		}
		a.total++
		if c.Status == model.ComplaintResolved {
			a.resolved++
		}
	}

	out := make([]model.RoutePerformance, 0, len(routes))
	for _, r := range routes {
		a := activity[r.ID]
		activeDays := int64(len(a.days))
		score := performanceScore(a.searches, activeDays, a.resolved, a.total)

		var avgHour float64
		if a.searches > 0 {
			avgHour = round(float64(a.hourSum)/float64(a.searches), 2)
		}

		out = append(out, model.RoutePerformance{
			RouteID:          r.ID,
			RouteName:        r.Name,
			RouteCode:        r.RouteCode,
			PerformanceScore: model.Float(round(score, 2)),
			SearchAnalytics: &model.RouteSearchAnalytics{
				TotalSearches: model.Int64(a.searches),
				AvgHour:       model.Float(avgHour),
				ActiveDays:    model.Int64(activeDays),
				PeakHours:     topHours(a.hours, 5),
			},
			ComplaintAnalytics: &model.RouteComplaintAnalytics{
				TotalComplaints:    model.Int64(a.total),
				ResolvedComplaints: model.Int64(a.resolved),
				ResolutionRate:     model.Float(percent(a.resolved, a.total)),
			},
			Recommendations: routeRecommendations(a.searches, a.total, score),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].PerformanceScore > *out[j].PerformanceScore
	})

	return &model.RouteAnalytics{
		Period:      period,
		TotalRoutes: model.Int(len(out)),
		Analytics:   out,
	}, nil
}

// performanceScore weighs search volume (40), active days (30) and complaint resolution (30)
func performanceScore(searches, activeDays, resolved, complaints int64) float64 {
	if searches == 0 {
		return 0
	}
	score := min(float64(searches)/100, 1)*40 + min(float64(activeDays)/7, 1)*30
	if complaints > 0 {
		score += float64(resolved) / float64(complaints) * 30
	}
	return score
}

func routeRecommendations(searches, complaints int64, score float64) []string {
	var recs []string
	switch {
	case searches < 10:
		recs = append(recs, RecPromoteRoute)
	case searches > 100 && complaints > 10:
		recs = append(recs, RecAddVehicles)
	}
	switch {
	case score < 50:
		recs = append(recs, RecReviewSchedule)
	case score > 80:
		recs = append(recs, RecSimilarRoutes)
	}
	return recs
}
