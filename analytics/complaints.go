package analytics

import (
	"context"
	"fmt"
	"sort"

	"transit-dashboard/model"
)

const complaintWindowDays = 30

// Complaint insight texts
const (
	InsightLowResolution = "Complaint resolution rate is low: speed up the response process"
	insightUrgentRoutes  = "%d routes need urgent attention"
)

type routeComplaintTally struct {
	total, resolved int64
	resolutionSum   float64 // hours
	resolutionCount int64
}

// ComplaintIntelligence analyses the last 30 days of complaints.
// analysisType selects the sections: all, trends, categories or routes. Overview and insights are always present.
func (s *Service) ComplaintIntelligence(ctx context.Context, analysisType string) (*model.ComplaintIntelligence, error) {
	now := s.clock()
	since := now.AddDate(0, 0, -complaintWindowDays)
	db := s.db.WithContext(ctx)

	var complaints []model.Complaint
	if err := db.Where("timestamp >= ?", since).Order("timestamp").Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to load complaints: %w", err)
	}

	byDate := make(map[string]*model.ComplaintTrend)
	byRoute := make(map[uint]*routeComplaintTally)
	texts := make([]string, 0, len(complaints))
	var total, resolved int64
	var responseSum float64
	var responseCount int64

	for _, c := range complaints {
		key := dateKey(c.Timestamp)
		t, ok := byDate[key]
		if !ok {
			t = &model.ComplaintTrend{Date: key}
			byDate[key] = t
		}
		t.Total++
		total++
		isResolved := c.Status == model.ComplaintResolved
		if isResolved {
			t.Resolved++
			resolved++
			if c.ResolvedAt != nil {
				responseSum += c.ResolvedAt.Sub(c.Timestamp).Hours()
				responseCount++
			}
		}

		if c.RouteID != nil {
			rt, ok := byRoute[*c.RouteID]
			if !ok {
				rt = &routeComplaintTally{}
				byRoute[*c.RouteID] = rt
			}
			rt.total++
			if isResolved {
				rt.resolved++
			}
			if c.ResolvedAt != nil {
				rt.resolutionSum += c.ResolvedAt.Sub(c.Timestamp).Hours()
				rt.resolutionCount++
			}
		}
		texts = append(texts, c.ComplaintText)
	}

	trends := make([]model.ComplaintTrend, 0, len(byDate))
	for _, d := range sortedDates(byDate) {
		t := byDate[d]
		t.Pending = t.Total - t.Resolved
		trends = append(trends, *t)
	}

	routeAnalysis, err := s.routeComplaints(ctx, byRoute)
	if err != nil {
		return nil, err
	}

	rate := percent(resolved, total)
	var avgResponse float64
	if responseCount > 0 {
		avgResponse = responseSum / float64(responseCount)
	}

	out := &model.ComplaintIntelligence{
		Overview: &model.ComplaintOverview{
			TotalComplaints:      model.Int64(total),
			ResolvedComplaints:   model.Int64(resolved),
			ResolutionRate:       model.Float(rate),
			AvgResponseTimeHours: model.Float(round(avgResponse, 2)),
		},
		Insights: complaintInsights(routeAnalysis, rate),
	}
	switch analysisType {
	case "trends":
		out.Trends = trends
	case "categories":
		out.Categories = NewCategorizer().Count(texts)
	case "routes":
		out.RouteAnalysis = routeAnalysis
	default:
		out.Trends = trends
		out.Categories = NewCategorizer().Count(texts)
		out.RouteAnalysis = routeAnalysis
	}
	return out, nil
}

func (s *Service) routeComplaints(ctx context.Context, tallies map[uint]*routeComplaintTally) ([]model.RouteComplaints, error) {
	if len(tallies) == 0 {
		return []model.RouteComplaints{}, nil
	}
	ids := make([]uint, 0, len(tallies))
	for id := range tallies {
		ids = append(ids, id)
	}
	var routes []model.Route
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&routes).Error; err != nil {
		return nil, fmt.Errorf("failed to load complaint routes: %w", err)
	}

	out := make([]model.RouteComplaints, 0, len(routes))
	for _, r := range routes {
		t := tallies[r.ID]
		var avgHours float64
		if t.resolutionCount > 0 {
			avgHours = t.resolutionSum / float64(t.resolutionCount)
		}
		out = append(out, model.RouteComplaints{
			RouteID:                r.ID,
			RouteName:              r.Name,
			TotalComplaints:        t.total,
			ResolvedComplaints:     t.resolved,
			ResolutionRate:         percent(t.resolved, t.total),
			AvgResolutionTimeHours: round(avgHours, 2),
			PriorityLevel:          priorityLevel(t.total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalComplaints != out[j].TotalComplaints {
			return out[i].TotalComplaints > out[j].TotalComplaints
		}
		return out[i].RouteID < out[j].RouteID
	})
	return out, nil
}

func priorityLevel(complaints int64) string {
	switch {
	case complaints > 10:
		return model.LevelHigh
	case complaints > 5:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

func complaintInsights(routes []model.RouteComplaints, rate float64) []string {
	insights := []string{}
	if rate < 80 {
		insights = append(insights, InsightLowResolution)
	}
	urgent := 0
	for _, r := range routes {
		if r.TotalComplaints > 10 {
			urgent++
		}
	}
	if urgent > 0 {
		insights = append(insights, fmt.Sprintf(insightUrgentRoutes, urgent))
	}
	return insights
}
