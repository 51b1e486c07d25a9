package analytics

import (
	"context"
	"testing"
	"time"

	"transit-dashboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchAt(routeID, userID *uint, ts time.Time) *model.SearchLog {
	return &model.SearchLog{
		RouteID:   routeID,
		UserID:    userID,
		StartLat:  24.7136,
		StartLng:  46.6753,
		EndLat:    24.7736,
		EndLng:    46.7353,
		Timestamp: ts,
	}
}

func TestRealTimeStats(t *testing.T) {
	s, db := newTestService(t)

	mustCreate(t, db, &[]model.User{
		{Username: "u1", Email: "u1@example.com", CreatedAt: ago(days(40)), UpdatedAt: ago(time.Hour)},
		{Username: "u2", Email: "u2@example.com", CreatedAt: ago(days(2)), UpdatedAt: ago(days(2))},
		{Username: "u3", Email: "u3@example.com", CreatedAt: ago(time.Hour), UpdatedAt: ago(time.Hour)},
		{Username: "u4", Email: "u4@example.com", CreatedAt: ago(days(60)), UpdatedAt: ago(days(45))},
	})
	r1 := createRoute(t, db, "R1")
	r2 := createRoute(t, db, "R2")
	mustCreate(t, db, searchAt(&r1.ID, nil, ago(2*time.Hour)))
	mustCreate(t, db, searchAt(&r2.ID, nil, ago(30*time.Hour)))

	resolvedAt := ago(days(2))
	mustCreate(t, db, &[]model.Complaint{
		{ComplaintText: "late", Status: model.ComplaintPending, Timestamp: ago(time.Hour)},
		{ComplaintText: "late", Status: model.ComplaintResolved, Timestamp: ago(days(3)), ResolvedAt: &resolvedAt},
		{ComplaintText: "late", Status: model.ComplaintPending, Timestamp: ago(days(10))},
	})
	mustCreate(t, db, &[]model.LocationShare{
		{UserID: 1, SharedWithID: 2, Status: model.ShareActive, CreatedAt: ago(time.Hour)},
		{UserID: 1, SharedWithID: 3, Status: model.ShareStopped, CreatedAt: ago(days(1))},
	})
	mustCreate(t, db, &[]model.VehicleLocation{
		{VehicleID: "BUS-1", Timestamp: ago(time.Minute)},
		{VehicleID: "BUS-2", Timestamp: ago(4 * time.Minute)},
		{VehicleID: "BUS-1", Timestamp: ago(10 * time.Minute)},
	})

	stats, err := s.RealTimeStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-03-10T12:00:00Z", stats.Timestamp)
	assert.Equal(t, int64(4), *stats.Users.Total)
	assert.Equal(t, int64(2), *stats.Users.ActiveToday)
	assert.Equal(t, int64(1), *stats.Users.NewToday)
	assert.Equal(t, int64(2), *stats.Users.NewWeek)
	assert.Equal(t, 100.0, *stats.Users.GrowthRate)

	assert.Equal(t, int64(2), *stats.Routes.Total)
	assert.Equal(t, int64(1), *stats.Routes.Active)
	assert.Equal(t, 50.0, *stats.Routes.UtilizationRate)

	assert.Equal(t, int64(1), *stats.Searches.Today)
	assert.Equal(t, int64(2), *stats.Searches.Week)
	assert.Equal(t, 0.29, *stats.Searches.AvgDaily)

	assert.Equal(t, int64(1), *stats.Complaints.Today)
	assert.Equal(t, int64(2), *stats.Complaints.Pending)
	assert.Equal(t, 33.33, *stats.Complaints.ResolutionRate)

	assert.Equal(t, int64(1), *stats.LocationSharing.ActiveShares)
	assert.Equal(t, int64(2), *stats.LocationSharing.LiveLocations)
}

func TestRealTimeStats_EmptyStore(t *testing.T) {
	s, _ := newTestService(t)

	stats, err := s.RealTimeStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, *stats.Users.Total)
	assert.Zero(t, *stats.Users.GrowthRate)
	assert.Zero(t, *stats.Complaints.ResolutionRate)
}

func TestPerformanceScore(t *testing.T) {
	tests := []struct {
		name                                  string
		searches, activeDays, resolved, total int64
		want                                  float64
	}{
		{"no searches", 0, 5, 3, 3, 0},
		{"partial", 50, 7, 3, 4, 72.5},
		{"capped volume, no complaints", 200, 14, 0, 0, 70},
		{"everything maxed", 150, 7, 2, 2, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := performanceScore(tt.searches, tt.activeDays, tt.resolved, tt.total)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRouteRecommendations(t *testing.T) {
	assert.Equal(t, []string{RecPromoteRoute, RecReviewSchedule}, routeRecommendations(3, 0, 10))
	assert.Equal(t, []string{RecAddVehicles, RecSimilarRoutes}, routeRecommendations(150, 11, 90))
	assert.Empty(t, routeRecommendations(50, 2, 65))
}

func TestRouteAnalytics(t *testing.T) {
	s, db := newTestService(t)

	busy := createRoute(t, db, "Busy")
	quiet := createRoute(t, db, "Quiet")
	idle := createRoute(t, db, "Idle")

	for i := 0; i < 120; i++ {
		mustCreate(t, db, searchAt(&busy.ID, nil, ago(days(i%7)+time.Hour)))
	}
	for i := 0; i < 5; i++ {
		mustCreate(t, db, searchAt(&quiet.ID, nil, ago(3*time.Hour)))
	}
	// outside the week
	mustCreate(t, db, searchAt(&idle.ID, nil, ago(days(9))))

	resolvedAt := ago(time.Hour)
	mustCreate(t, db, &[]model.Complaint{
		{RouteID: &busy.ID, Status: model.ComplaintResolved, Timestamp: ago(days(1)), ResolvedAt: &resolvedAt},
		{RouteID: &busy.ID, Status: model.ComplaintResolved, Timestamp: ago(days(2)), ResolvedAt: &resolvedAt},
		{RouteID: &quiet.ID, Status: model.ComplaintPending, Timestamp: ago(days(2))},
	})

	report, err := s.RouteAnalytics(context.Background(), "week", nil)
	require.NoError(t, err)

	assert.Equal(t, "week", report.Period)
	assert.Equal(t, int64(3), *report.TotalRoutes)
	require.Len(t, report.Analytics, 3)

	first := report.Analytics[0]
	assert.Equal(t, "Busy", first.RouteName)
	assert.Equal(t, 100.0, *first.PerformanceScore)
	assert.Equal(t, int64(120), *first.SearchAnalytics.TotalSearches)
	assert.Equal(t, int64(7), *first.SearchAnalytics.ActiveDays)
	assert.Equal(t, 11.0, *first.SearchAnalytics.AvgHour)
	assert.Equal(t, []model.HourCount{{Hour: 11, Count: 120}}, first.SearchAnalytics.PeakHours)
	assert.Equal(t, 100.0, *first.ComplaintAnalytics.ResolutionRate)
	assert.Equal(t, []string{RecSimilarRoutes}, first.Recommendations)

	second := report.Analytics[1]
	assert.Equal(t, "Quiet", second.RouteName)
	assert.Equal(t, 6.29, *second.PerformanceScore)
	assert.Equal(t, int64(1), *second.ComplaintAnalytics.TotalComplaints)
	assert.Zero(t, *second.ComplaintAnalytics.ResolutionRate)
	assert.Equal(t, []string{RecPromoteRoute, RecReviewSchedule}, second.Recommendations)

	third := report.Analytics[2]
	assert.Equal(t, "Idle", third.RouteName)
	assert.Zero(t, *third.PerformanceScore)
	assert.Zero(t, *third.SearchAnalytics.TotalSearches)
}

func TestRouteAnalytics_PeriodAndFilter(t *testing.T) {
	s, db := newTestService(t)

	r := createRoute(t, db, "Only")
	other := createRoute(t, db, "Other")
	mustCreate(t, db, searchAt(&r.ID, nil, ago(2*time.Hour)))
	mustCreate(t, db, searchAt(&r.ID, nil, ago(days(3))))
	mustCreate(t, db, searchAt(&r.ID, nil, ago(days(20))))

	day, err := s.RouteAnalytics(context.Background(), "day", &r.ID)
	require.NoError(t, err)
	require.Len(t, day.Analytics, 1)
	assert.Equal(t, int64(1), *day.Analytics[0].SearchAnalytics.TotalSearches)

	month, err := s.RouteAnalytics(context.Background(), "month", &r.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), *month.Analytics[0].SearchAnalytics.TotalSearches)

	none, err := s.RouteAnalytics(context.Background(), "week", &other.ID)
	require.NoError(t, err)
	assert.Zero(t, *none.Analytics[0].SearchAnalytics.TotalSearches)
}

func TestUserBehavior(t *testing.T) {
	s, db := newTestService(t)

	power := model.User{Username: "power", Email: "p@example.com", CreatedAt: ago(days(60)), UpdatedAt: ago(time.Hour)}
	regular := model.User{Username: "regular", Email: "r@example.com", CreatedAt: ago(days(3)), UpdatedAt: ago(days(1))}
	gone := model.User{Username: "gone", Email: "g@example.com", CreatedAt: ago(days(90)), UpdatedAt: ago(days(40))}
	mustCreate(t, db, &power)
	mustCreate(t, db, &regular)
	mustCreate(t, db, &gone)

	morning := startOfDay(testNow).Add(8 * time.Hour)
	for i := 0; i < 25; i++ {
		mustCreate(t, db, searchAt(nil, &power.ID, morning.Add(-days(i%5))))
	}
	evening := startOfDay(testNow).Add(-7 * time.Hour) // 17:00 yesterday
	for i := 0; i < 4; i++ {
		mustCreate(t, db, searchAt(nil, &regular.ID, evening))
	}
	for i := 0; i < 2; i++ {
		mustCreate(t, db, searchAt(nil, &regular.ID, startOfDay(testNow).Add(7*time.Hour)))
	}
	mustCreate(t, db, &model.Complaint{UserID: &regular.ID, Timestamp: ago(days(1))})
	mustCreate(t, db, &model.LocationShare{UserID: regular.ID, SharedWithID: power.ID, CreatedAt: ago(days(2))})

	behavior, err := s.UserBehavior(context.Background(), "active")
	require.NoError(t, err)

	seg := behavior.UserSegments
	assert.Equal(t, int64(3), *seg.TotalUsers)
	assert.Equal(t, int64(2), *seg.ActiveUsers)
	assert.Equal(t, int64(1), *seg.NewUsers)
	assert.Equal(t, int64(1), *seg.InactiveUsers)
	assert.Equal(t, 66.67, *seg.EngagementRate)

	require.Len(t, behavior.UsagePatterns, 2)
	p := behavior.UsagePatterns[0]
	assert.Equal(t, "power", p.Username)
	assert.Equal(t, int64(25), *p.ActivityScore)
	assert.Equal(t, model.UserTypePower, p.UserType)
	assert.Equal(t, []int{8}, p.PreferredHours)

	r := behavior.UsagePatterns[1]
	assert.Equal(t, "regular", r.Username)
	assert.Equal(t, int64(6+2+3), *r.ActivityScore)
	assert.Equal(t, int64(1), *r.ComplaintsCount)
	assert.Equal(t, int64(1), *r.SharesCount)
	assert.Equal(t, model.UserTypeRegular, r.UserType)
	assert.Equal(t, []int{17, 7}, r.PreferredHours)

	assert.Equal(t, []string{InsightRetention, InsightPowerUsers}, behavior.BehaviorInsights)
}

func TestUserBehavior_InactiveSegment(t *testing.T) {
	s, db := newTestService(t)
	mustCreate(t, db, &model.User{Username: "gone", Email: "g@example.com", CreatedAt: ago(days(90)), UpdatedAt: ago(days(40))})

	behavior, err := s.UserBehavior(context.Background(), "inactive")
	require.NoError(t, err)
	require.Len(t, behavior.UsagePatterns, 1)
	assert.Equal(t, model.UserTypeCasual, behavior.UsagePatterns[0].UserType)
	assert.Zero(t, *behavior.UsagePatterns[0].ActivityScore)
	assert.Empty(t, behavior.UsagePatterns[0].PreferredHours)
}

func TestClassifyUser(t *testing.T) {
	assert.Equal(t, model.UserTypeCasual, classifyUser(5))
	assert.Equal(t, model.UserTypeRegular, classifyUser(6))
	assert.Equal(t, model.UserTypeRegular, classifyUser(20))
	assert.Equal(t, model.UserTypePower, classifyUser(21))
}
