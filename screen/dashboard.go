package screen

import (
	"transit-dashboard/model"
	"transit-dashboard/report"
)

// Card titles of the Dashboard screen
const (
	CardRealTime      = "Real-time stats"
	CardWeekly        = "Weekly activity"
	CardQuickActions  = "Quick actions"
	CardRoutes        = "Route performance"
	CardSegments      = "User segments"
	CardTopUsers      = "Most active users"
	CardBehavior      = "Behavior insights"
	CardReports       = "Available reports"
	CardSettings      = "Dashboard settings"
	DashboardTitle    = "Government Dashboard"
	settingEnabled    = "On"
	settingExportType = "JSON"
)

var dashboardTitles = map[Section]string{
	TabOverview:  "Overview",
	TabAnalytics: "Analytics",
	TabReports:   "Reports",
	TabSettings:  "Settings",
}

// RenderDashboard maps a dashboard snapshot to the view of one tab.
// A nil snapshot renders every card with blank values; an unknown tab renders no cards.
func RenderDashboard(snap *model.DashboardSnapshot, tab Section) View {
	if snap == nil {
		snap = &model.DashboardSnapshot{}
	}
	v := View{Screen: ScreenDashboard, Section: tab, Title: dashboardTitles[tab], Cards: []Card{}}

	switch tab {
	case TabOverview:
		v.Cards = overviewCards(snap.RealTimeStats)
	case TabAnalytics:
		v.Cards = analyticsCards(snap.RouteAnalytics, snap.UserBehavior)
	case TabReports:
		v.Cards = []Card{reportsCard()}
	case TabSettings:
		v.Cards = []Card{settingsCard()}
	}
	return v
}

func overviewCards(rt *model.RealTimeStats) []Card {
	if rt == nil {
		rt = &model.RealTimeStats{}
	}
	users := rt.Users
	if users == nil {
		users = &model.UserStats{}
	}
	routes := rt.Routes
	if routes == nil {
		routes = &model.RouteStats{}
	}
	searches := rt.Searches
	if searches == nil {
		searches = &model.SearchStats{}
	}
	complaints := rt.Complaints
	if complaints == nil {
		complaints = &model.ComplaintStats{}
	}
	sharing := rt.LocationSharing
	if sharing == nil {
		sharing = &model.SharingStats{}
	}

	return []Card{
		{
			Title: CardRealTime,
			Stats: []Stat{
				{Label: "Total users", Value: num(users.Total), Change: signedPct(users.GrowthRate)},
				{Label: "Active routes", Value: num(routes.Total), Change: pct(routes.UtilizationRate)},
				{Label: "Searches today", Value: num(searches.Today)},
				{Label: "Pending complaints", Value: num(complaints.Pending), Change: pct(complaints.ResolutionRate)},
				{Label: "Active location shares", Value: num(sharing.ActiveShares)},
				{Label: "Live vehicle locations", Value: num(sharing.LiveLocations)},
			},
		},
		{
			Title: CardWeekly,
			Stats: []Stat{
				{Label: "Searches this week", Value: num(searches.Week)},
				{Label: "Average daily searches", Value: flt(searches.AvgDaily)},
				{Label: "Active users today", Value: num(users.ActiveToday)},
				{Label: "New users today", Value: num(users.NewToday)},
				{Label: "Complaints today", Value: num(complaints.Today)},
			},
		},
		{
			Title: CardQuickActions,
			Actions: []Action{
				{Label: "Complaints", Target: TargetComplaints},
				{Label: "Routes", Target: TargetRoutes},
				{Label: "Users", Target: TargetUsers},
				{Label: "Analytics", Target: TargetAnalytics},
			},
		},
	}
}

func analyticsCards(ra *model.RouteAnalytics, ub *model.UserBehavior) []Card {
	routes := Card{Title: CardRoutes}
	if ra != nil {
		for _, r := range ra.Analytics {
			search := r.SearchAnalytics
			if search == nil {
				search = &model.RouteSearchAnalytics{}
			}
			complaint := r.ComplaintAnalytics
			if complaint == nil {
				complaint = &model.RouteComplaintAnalytics{}
			}
			routes.Items = append(routes.Items, Item{
				Title: r.RouteName,
				Badge: pct(r.PerformanceScore),
				Fields: []Stat{
					{Label: "Searches", Value: num(search.TotalSearches)},
					{Label: "Active days", Value: num(search.ActiveDays)},
					{Label: "Complaints", Value: num(complaint.TotalComplaints)},
					{Label: "Resolution rate", Value: pct(complaint.ResolutionRate)},
				},
			})
		}
	}

	if ub == nil {
		ub = &model.UserBehavior{}
	}
	segments := Card{Title: CardSegments}
	if seg := ub.UserSegments; seg != nil {
		segments.Stats = []Stat{
			{Label: "Total users", Value: num(seg.TotalUsers)},
			{Label: "Engagement rate", Value: pct(seg.EngagementRate)},
		}
		segments.Series = []Series{{
			Name:   "Users",
			Labels: []string{"Active", "New", "Inactive"},
			Points: []float64{value(seg.ActiveUsers), value(seg.NewUsers), value(seg.InactiveUsers)},
		}}
	}

	top := Card{Title: CardTopUsers}
	for _, p := range ub.UsagePatterns {
		top.Items = append(top.Items, Item{
			Title: p.Username,
			Badge: p.UserType,
			Fields: []Stat{
				{Label: "Activity score", Value: num(p.ActivityScore)},
				{Label: "Searches", Value: num(p.SearchesCount)},
			},
		})
	}

	cards := []Card{routes, segments, top}
	if len(ub.BehaviorInsights) > 0 {
		cards = append(cards, Card{Title: CardBehavior, Items: textItems(ub.BehaviorInsights)})
	}
	return cards
}

func reportsCard() Card {
	c := Card{Title: CardReports}
	for _, e := range report.Catalogue() {
		c.Items = append(c.Items, Item{Title: e.Title, Detail: e.Description})
		c.Actions = append(c.Actions, Action{Label: e.Title, Target: "report:" + string(e.Kind)})
	}
	return c
}

func settingsCard() Card {
	return Card{
		Title: CardSettings,
		Stats: []Stat{
			{Label: "Automatic data refresh", Value: settingEnabled},
			{Label: "Instant notifications", Value: settingEnabled},
			{Label: "Report export format", Value: settingExportType},
		},
		Actions: []Action{{Label: "Export all data", Target: TargetExport}},
	}
}

func value(v *int64) float64 {
	if v == nil {
		return 0
	}
	return float64(*v)
}

func textItems(lines []string) []Item {
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{Title: l})
	}
	return items
}
