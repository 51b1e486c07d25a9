package analytics

import (
	"context"
	"testing"
	"time"

	"transit-dashboard/model"
	"transit-dashboard/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopRoutes(t *testing.T) {
	s, db := newTestService(t)
	a := createRoute(t, db, "A")
	b := createRoute(t, db, "B")
	c := createRoute(t, db, "C")
	for i := 0; i < 3; i++ {
		mustCreate(t, db, searchAt(&b.ID, nil, ago(days(i*20))))
	}
	mustCreate(t, db, searchAt(&a.ID, nil, ago(time.Hour)))

	top, err := s.TopRoutes(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []model.TopRoute{
		{RouteID: b.ID, RouteName: "B", SearchCount: 3},
		{RouteID: a.ID, RouteName: "A", SearchCount: 1},
		{RouteID: c.ID, RouteName: "C", SearchCount: 0},
	}, top)

	limited, err := s.TopRoutes(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestUsageStatistics(t *testing.T) {
	s, db := newTestService(t)
	createRoute(t, db, "A")
	mustCreate(t, db, &model.User{Username: "u", Email: "u@example.com"})
	mustCreate(t, db, &model.Complaint{ComplaintText: "late", Timestamp: ago(time.Hour)})

	stats, err := s.UsageStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.UsageStatistics{UsersCount: 1, RoutesCount: 1, ComplaintsCount: 1}, stats)
}

func TestComplaints_FiltersAndOrder(t *testing.T) {
	s, db := newTestService(t)
	r := createRoute(t, db, "A")
	mustCreate(t, db, &[]model.Complaint{
		{RouteID: &r.ID, ComplaintText: "old", Status: model.ComplaintPending, Timestamp: ago(days(3))},
		{RouteID: &r.ID, ComplaintText: "new", Status: model.ComplaintPending, Timestamp: ago(time.Hour)},
		{ComplaintText: "resolved", Status: model.ComplaintResolved, Timestamp: ago(days(1))},
	})
	ctx := context.Background()

	all, err := s.Complaints(ctx, "", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ComplaintText)
	assert.Equal(t, "resolved", all[1].ComplaintText)
	assert.Equal(t, "old", all[2].ComplaintText)

	pending, err := s.Complaints(ctx, model.ComplaintPending, &r.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	none, err := s.Complaints(ctx, model.ComplaintRejected, nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateComplaintStatus(t *testing.T) {
	s, db := newTestService(t)
	c := model.Complaint{ComplaintText: "late", Status: model.ComplaintPending, Timestamp: ago(days(1))}
	mustCreate(t, db, &c)
	ctx := context.Background()

	res, err := s.UpdateComplaintStatus(ctx, c.ID, model.ComplaintResolved)
	require.NoError(t, err)
	assert.Equal(t, &model.ComplaintStatusUpdate{Message: "Complaint status updated", ID: c.ID, Status: model.ComplaintResolved}, res)

	var stored model.Complaint
	require.NoError(t, db.First(&stored, c.ID).Error)
	require.NotNil(t, stored.ResolvedAt)
	assert.True(t, stored.ResolvedAt.Equal(testNow))

	_, err = s.UpdateComplaintStatus(ctx, c.ID, model.ComplaintInProgress)
	require.NoError(t, err)
	require.NoError(t, db.First(&stored, c.ID).Error)
	assert.Equal(t, model.ComplaintInProgress, stored.Status)
	assert.Nil(t, stored.ResolvedAt)

	_, err = s.UpdateComplaintStatus(ctx, 999, model.ComplaintResolved)
	assert.ErrorIs(t, err, utils.ErrComplaintNotFound)
}

func TestUpdateComplaintStatus_ResolvingTwiceKeepsFirstStamp(t *testing.T) {
	now := testNow
	s, db := newTestService(t, WithClock(func() time.Time { return now }))
	c := model.Complaint{ComplaintText: "late", Status: model.ComplaintPending, Timestamp: ago(days(1))}
	mustCreate(t, db, &c)
	ctx := context.Background()

	_, err := s.UpdateComplaintStatus(ctx, c.ID, model.ComplaintResolved)
	require.NoError(t, err)

	now = testNow.Add(6 * time.Hour)
	_, err = s.UpdateComplaintStatus(ctx, c.ID, model.ComplaintResolved)
	require.NoError(t, err)

	var stored model.Complaint
	require.NoError(t, db.First(&stored, c.ID).Error)
	require.NotNil(t, stored.ResolvedAt)
	assert.True(t, stored.ResolvedAt.Equal(testNow), stored.ResolvedAt)

	// reopening and resolving again stamps the new resolution
	_, err = s.UpdateComplaintStatus(ctx, c.ID, model.ComplaintPending)
	require.NoError(t, err)
	_, err = s.UpdateComplaintStatus(ctx, c.ID, model.ComplaintResolved)
	require.NoError(t, err)
	require.NoError(t, db.First(&stored, c.ID).Error)
	require.NotNil(t, stored.ResolvedAt)
	assert.True(t, stored.ResolvedAt.Equal(now))
}

func TestHeatmapData(t *testing.T) {
	s, db := newTestService(t)
	for _, d := range []int{1, 3, 5} {
		mustCreate(t, db, searchAt(nil, nil, ago(days(d))))
	}
	ctx := context.Background()

	all, err := s.HeatmapData(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 24.7136, all[0].StartLat)
	assert.Equal(t, 46.7353, all[0].EndLng)

	start, end := ago(days(4)), ago(days(1))
	window, err := s.HeatmapData(ctx, &start, &end)
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.True(t, window[0].Timestamp.Equal(ago(days(3))))
}

func TestSummaryAndRealTimeMetrics(t *testing.T) {
	s, db := newTestService(t)
	mustCreate(t, db, &[]model.Complaint{
		{ComplaintText: "a", Timestamp: ago(30 * time.Minute)},
		{ComplaintText: "b", Timestamp: ago(5 * time.Hour)},
		{ComplaintText: "c", Timestamp: ago(days(10))},
	})
	mustCreate(t, db, &[]model.Feedback{
		{Type: "rating", Rating: 4, Timestamp: ago(10 * time.Minute)},
		{Type: "rating", Rating: 2, Timestamp: ago(days(2))},
	})
	ctx := context.Background()

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sum.TotalComplaints)
	assert.Equal(t, int64(2), sum.TotalFeedback)
	assert.Equal(t, int64(2), sum.RecentComplaints)
	assert.Equal(t, int64(2), sum.RecentFeedback)
	assert.Equal(t, testNow, sum.Timestamp)

	rt, err := s.RealTimeMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rt.HourlyComplaints)
	assert.Equal(t, int64(1), rt.HourlyFeedback)
	assert.Equal(t, int64(2), rt.DailyComplaints)
	assert.Equal(t, int64(1), rt.DailyFeedback)
}

func TestCollect(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	value := 3.5

	res, err := s.Collect(ctx, model.CollectRequest{DataType: " app_open ", Value: &value})
	require.NoError(t, err)
	assert.Equal(t, "Analytics data collected successfully", res.Message)
	_, err = uuid.Parse(res.ID)
	assert.NoError(t, err)

	var stored model.AnalyticsData
	require.NoError(t, db.First(&stored, "id = ?", res.ID).Error)
	assert.Equal(t, "app_open", stored.DataType)
	assert.Equal(t, 3.5, stored.Value)

	_, err = s.Collect(ctx, model.CollectRequest{DataType: "x"})
	assert.ErrorIs(t, err, utils.ErrMissingDataType)
	_, err = s.Collect(ctx, model.CollectRequest{DataType: "  ", Value: &value})
	assert.ErrorIs(t, err, utils.ErrMissingDataType)
}

func TestAdminDashboardAnalytics(t *testing.T) {
	s, db := newTestService(t)
	createRoute(t, db, "A")
	mustCreate(t, db, &[]model.User{
		{Username: "admin", Email: "a@example.com", IsActive: true, IsAdmin: true},
		{Username: "rider", Email: "r@example.com", IsActive: true},
	})
	mustCreate(t, db, &[]model.Complaint{
		{ComplaintText: "a", Status: model.ComplaintResolved, Timestamp: ago(days(2))},
		{ComplaintText: "b", Status: model.ComplaintPending, Timestamp: ago(days(40))},
		{ComplaintText: "c", Status: model.ComplaintInProgress, Timestamp: ago(days(1))},
	})
	mustCreate(t, db, &[]model.Feedback{
		{Rating: 5, Timestamp: ago(days(1))},
		{Rating: 2, Timestamp: ago(days(1))},
	})

	a, err := s.AdminDashboardAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), a.Users.Total)
	assert.Equal(t, int64(1), a.Users.Admins)
	assert.Equal(t, int64(1), a.Routes.Total)
	assert.Equal(t, int64(3), a.Complaints.Total)
	assert.Equal(t, int64(1), a.Complaints.Pending)
	assert.Equal(t, int64(1), a.Complaints.Resolved)
	assert.Equal(t, 33.33, a.Complaints.ResolutionRate)
	assert.Equal(t, 3.5, a.Feedback.AvgRating)
	assert.Equal(t, int64(2), a.RecentActivity.Complaints)
	assert.Equal(t, int64(2), a.RecentActivity.Feedback)
	assert.Equal(t, "The system has 2 users and 1 routes", a.Analytics.Summary)
	assert.Equal(t, 33.33, a.Analytics.HealthScore)
}

func TestRecommendations(t *testing.T) {
	s, db := newTestService(t)
	createRoute(t, db, "Empty")

	recs, err := s.Recommendations(context.Background())
	require.NoError(t, err)

	assert.Contains(t, recs.Recommendations, model.Recommendation{Source: model.SourceRoutes, Subject: "Empty", Text: RecPromoteRoute})
	assert.Contains(t, recs.Recommendations, model.Recommendation{Source: model.SourcePredictive, Text: RecSlowGrowth})
	assert.Contains(t, recs.Recommendations, model.Recommendation{Source: model.SourceComplaints, Text: InsightLowResolution})
}
