package screen

import (
	"fmt"
	"strconv"
	"strings"

	"transit-dashboard/model"
)

// Card titles of the AdvancedAnalytics screen
const (
	CardForecast         = "Growth forecast"
	CardPeakHours        = "Peak hours"
	CardUsageTrend       = "Usage trend"
	CardGrowthInsights   = "Growth insights"
	CardHotspots         = "Geographic hotspots"
	CardCoverage         = "Coverage analysis"
	CardMobility         = "Common mobility patterns"
	CardComplaints       = "Complaints overview"
	CardComplaintTrends  = "Complaint trends"
	CardCategories       = "Complaint categories"
	CardRouteComplaints  = "Routes by complaints"
	CardComplaintInsight = "Complaint insights"
	CardHealth           = "System health"
	CardPerformance      = "Performance metrics"
	CardErrors           = "Error analysis"
	CardRecommendations  = "Recommendations"
	AdvancedTitle        = "Advanced Analytics"
)

// NoRecommendations is shown when the system has nothing to recommend
const NoRecommendations = "The system is running efficiently, no urgent recommendations"

var advancedTitles = map[Section]string{
	SectionPredictive: "Predictive",
	SectionGeographic: "Geographic",
	SectionComplaints: "Complaints",
	SectionSystem:     "System",
}

// RenderAdvanced maps an advanced analytics snapshot to the view of one section.
// Chart series of predicted users are in thousands and peak hour counts in hundreds.
func RenderAdvanced(snap *model.AdvancedAnalyticsSnapshot, section Section) View {
	if snap == nil {
		snap = &model.AdvancedAnalyticsSnapshot{}
	}
	v := View{Screen: ScreenAdvanced, Section: section, Title: advancedTitles[section], Cards: []Card{}}

	switch section {
	case SectionPredictive:
		v.Cards = predictiveCards(snap.Predictive)
	case SectionGeographic:
		v.Cards = geographicCards(snap.Geographic)
	case SectionComplaints:
		v.Cards = complaintCards(snap.Complaints)
	case SectionSystem:
		v.Cards = systemCards(snap.System)
	}
	return v
}

func predictiveCards(p *model.PredictiveInsights) []Card {
	if p == nil {
		p = &model.PredictiveInsights{}
	}

	forecast := Card{Title: CardForecast}
	if pred := p.Predictions; pred != nil {
		forecast.Stats = []Stat{
			{Label: "Forecast period", Value: withUnit(num(pred.ForecastPeriod), " days")},
			{Label: "Confidence", Value: pred.ConfidenceLevel},
		}
		if len(pred.PredictedGrowth) > 0 {
			s := Series{Name: "Predicted users (thousands)"}
			for i, pt := range pred.PredictedGrowth {
				s.Labels = append(s.Labels, forecastLabel(i))
				s.Points = append(s.Points, float64(pt.PredictedUsers)/1000)
			}
			forecast.Series = []Series{s}
		}
	}

	var seasonal model.SeasonalPatterns
	if p.SeasonalPatterns != nil {
		seasonal = *p.SeasonalPatterns
	}

	peaks := Card{Title: CardPeakHours}
	if len(seasonal.PeakHours) > 0 {
		s := Series{Name: "Searches (hundreds)"}
		for _, h := range seasonal.PeakHours {
			s.Labels = append(s.Labels, hourLabel(h.Hour))
			s.Points = append(s.Points, float64(h.Count)/100)
		}
		peaks.Series = []Series{s}
	}

	trend := Card{Title: CardUsageTrend}
	if len(seasonal.UsageTrend) > 0 {
		s := Series{Name: "Searches"}
		for _, d := range seasonal.UsageTrend {
			s.Labels = append(s.Labels, d.Date)
			s.Points = append(s.Points, float64(d.Searches))
		}
		trend.Series = []Series{s}
	}

	growth := p.GrowthAnalytics
	if growth == nil {
		growth = &model.GrowthAnalytics{}
	}
	hours := make([]string, 0, len(seasonal.PeakHours))
	for _, h := range seasonal.PeakHours {
		hours = append(hours, hourLabel(h.Hour))
	}
	insights := Card{
		Title: CardGrowthInsights,
		Stats: []Stat{
			{Label: "Current users", Value: num(growth.CurrentUsers)},
			{Label: "Current growth rate", Value: pct(growth.GrowthRate)},
			{Label: "Average daily growth", Value: withUnit(flt(growth.AvgDailyGrowth), " users")},
			{Label: "Peak hours", Value: strings.Join(hours, ", ")},
		},
		Items: textItems(p.Recommendations),
	}

	return []Card{forecast, peaks, trend, insights}
}

func forecastLabel(i int) string {
	if i == 0 {
		return "Today"
	}
	return "+" + strconv.Itoa(i)
}

func hourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

func point(p model.GeoPoint) string {
	return fmt.Sprintf("%.4f, %.4f", p.Lat, p.Lng)
}

func geographicCards(g *model.GeographicSnapshot) []Card {
	if g == nil {
		g = &model.GeographicSnapshot{}
	}

	hotspots := Card{Title: CardHotspots}
	for _, h := range g.Hotspots {
		hotspots.Items = append(hotspots.Items, Item{
			Title:  point(model.GeoPoint{Lat: h.Lat, Lng: h.Lng}),
			Badge:  h.Level,
			Fields: []Stat{{Label: "Intensity", Value: strconv.FormatInt(h.Intensity, 10) + " searches"}},
		})
	}

	coverage := Card{Title: CardCoverage}
	if len(g.Coverage) > 0 {
		s := Series{Name: "Coverage score"}
		for _, c := range g.Coverage {
			s.Labels = append(s.Labels, c.RouteName)
			s.Points = append(s.Points, c.CoverageScore)
		}
		coverage.Series = []Series{s}
	}

	mobility := Card{Title: CardMobility}
	for _, m := range g.Mobility {
		mobility.Items = append(mobility.Items, Item{
			Title: point(m.Start) + " -> " + point(m.End),
			Badge: m.Popularity,
			Fields: []Stat{
				{Label: "From", Value: point(m.Start)},
				{Label: "To", Value: point(m.End)},
				{Label: "Frequency", Value: strconv.FormatInt(m.Frequency, 10) + " trips"},
			},
		})
	}

	return []Card{hotspots, coverage, mobility}
}

func complaintCards(c *model.ComplaintIntelligence) []Card {
	if c == nil {
		c = &model.ComplaintIntelligence{}
	}
	ov := c.Overview
	if ov == nil {
		ov = &model.ComplaintOverview{}
	}

	overview := Card{
		Title: CardComplaints,
		Stats: []Stat{
			{Label: "Total complaints", Value: num(ov.TotalComplaints)},
			{Label: "Resolved", Value: num(ov.ResolvedComplaints)},
			{Label: "Resolution rate", Value: pct(ov.ResolutionRate)},
			{Label: "Average response time", Value: withUnit(flt(ov.AvgResponseTimeHours), "h")},
		},
	}

	trends := Card{Title: CardComplaintTrends}
	if len(c.Trends) > 0 {
		total := Series{Name: "Total"}
		resolved := Series{Name: "Resolved"}
		for _, t := range c.Trends {
			total.Labels = append(total.Labels, t.Date)
			total.Points = append(total.Points, float64(t.Total))
			resolved.Labels = append(resolved.Labels, t.Date)
			resolved.Points = append(resolved.Points, float64(t.Resolved))
		}
		trends.Series = []Series{total, resolved}
	}

	categories := Card{Title: CardCategories}
	if len(c.Categories) > 0 {
		s := Series{Name: "Complaints"}
		for _, name := range model.ComplaintCategoryOrder {
			s.Labels = append(s.Labels, name)
			s.Points = append(s.Points, float64(c.Categories[name]))
		}
		categories.Series = []Series{s}
	}

	cards := []Card{overview, trends, categories}

	if len(c.RouteAnalysis) > 0 {
		routes := Card{Title: CardRouteComplaints}
		for _, r := range c.RouteAnalysis {
			routes.Items = append(routes.Items, Item{
				Title: r.RouteName,
				Badge: r.PriorityLevel,
				Fields: []Stat{
					{Label: "Complaints", Value: strconv.FormatInt(r.TotalComplaints, 10)},
					{Label: "Resolution rate", Value: formatFloat(r.ResolutionRate) + "%"},
					{Label: "Average resolution time", Value: formatFloat(r.AvgResolutionTimeHours) + "h"},
				},
			})
		}
		cards = append(cards, routes)
	}
	if len(c.Insights) > 0 {
		cards = append(cards, Card{Title: CardComplaintInsight, Items: textItems(c.Insights)})
	}
	return cards
}

func systemCards(h *model.SystemHealth) []Card {
	if h == nil {
		h = &model.SystemHealth{}
	}
	pm := h.PerformanceMetrics
	if pm == nil {
		pm = &model.PerformanceMetrics{}
	}
	db := pm.Database
	if db == nil {
		db = &model.ComponentHealth{}
	}
	api := pm.API
	if api == nil {
		api = &model.APIHealth{}
	}
	storage := pm.Storage
	if storage == nil {
		storage = &model.StorageHealth{}
	}
	errs := h.ErrorAnalysis
	if errs == nil {
		errs = &model.ErrorAnalysis{}
	}

	perf := []Stat{
		{Label: "Database", Value: db.Status, Change: withUnit(flt(db.ResponseTimeMS), "ms")},
	}
	if pm.Cache != nil {
		perf = append(perf, Stat{Label: "Cache", Value: pm.Cache.Status, Change: withUnit(flt(pm.Cache.ResponseTimeMS), "ms")})
	}
	perf = append(perf,
		Stat{Label: "API response time", Value: withUnit(flt(api.AvgResponseTimeMS), "ms")},
		Stat{Label: "API error rate", Value: flt(api.ErrorRate)},
		Stat{Label: "Uptime", Value: pct(api.UptimePercentage)},
		Stat{Label: "Database size", Value: withUnit(flt(storage.DatabaseSizeMB), "MB")},
		Stat{Label: "Log size", Value: withUnit(flt(storage.LogSizeMB), "MB")},
		Stat{Label: "Backup", Value: storage.BackupStatus},
	)

	recs := Card{Title: CardRecommendations, Items: textItems(h.Recommendations)}
	if len(h.Recommendations) == 0 && h.OverallHealth == model.HealthExcellent {
		recs.Items = []Item{{Title: NoRecommendations}}
	}

	return []Card{
		{Title: CardHealth, Stats: []Stat{{Label: "Overall health", Value: h.OverallHealth}}},
		{Title: CardPerformance, Stats: perf},
		{
			Title: CardErrors,
			Stats: []Stat{
				{Label: "Recent errors", Value: num(errs.RecentErrors)},
				{Label: "Critical issues", Value: num(errs.CriticalIssues)},
				{Label: "Error trend", Value: errs.ErrorTrend},
			},
		},
		recs,
	}
}
