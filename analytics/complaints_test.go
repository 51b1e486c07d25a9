package analytics

import (
	"context"
	"testing"
	"time"

	"transit-dashboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizer_Categories(t *testing.T) {
	c := NewCategorizer()
	tests := []struct {
		text string
		want []string
	}{
		{"تأخير كبير في وصول الحافلة", []string{model.CategoryDelays, model.CategoryVehicle}},
		{"ازدحام شديد وقت الذروة", []string{model.CategoryCrowding}},
		{"السائق لم يتوقف في المحطة", []string{model.CategoryDriver}},
		{"المركبة غير نظيفة والمكيف معطل", []string{model.CategoryVehicle}},
		{"السعر مرتفع مقارنة بالخدمة", []string{model.CategoryPricing, model.CategoryService}},
		{"الحافلة متأخرة", []string{model.CategoryDelays, model.CategoryVehicle}},
		{"Bus was LATE again", []string{model.CategoryDelays, model.CategoryVehicle}},
		{"too crowded in the morning", []string{model.CategoryCrowding}},
		{"the drivr was rude", []string{model.CategoryDriver}},
		{"my trip was delayd twice", []string{model.CategoryDelays}},
		{"the rate is fine", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Categories(tt.text))
		})
	}
}

func TestCategorizer_InflectedForms(t *testing.T) {
	c := NewCategorizer()
	tests := []struct {
		text string
		want []string
	}{
		{"السائقين غير محترمين", []string{model.CategoryDriver}},
		{"الخدمات سيئة جدا", []string{model.CategoryService}},
		{"التأخيرات متكررة كل يوم", []string{model.CategoryDelays}},
		{"أسعارها مرتفعة", []string{model.CategoryPricing}},
		{"the drivers ignored us", []string{model.CategoryDriver}},
		{"services are slow", []string{model.CategoryService}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Categories(tt.text))
		})
	}

	assert.True(t, hasStem("خدمات", "خدمة"))
	assert.True(t, hasStem("سائقين", "سائق"))
	assert.False(t, hasStem("خد", "خدمة"))
}

func TestCategorizer_CountsOncePerCategory(t *testing.T) {
	counts := NewCategorizer().Count([]string{
		"late late late bus",
		"driver was late",
		"nothing to report",
	})

	assert.Equal(t, model.ComplaintCategories{
		model.CategoryDelays:  2,
		model.CategoryVehicle: 1,
		model.CategoryDriver:  1,
	}, counts)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"bus", "42", "late"}, tokenize("Bus #42, late!"))
	assert.Equal(t, []string{"تأخير"}, tokenize("تَأخِير"))
	assert.Equal(t, []string{"الحافلة", "حافلة"}, wordForms("الحافلة"))
	assert.Equal(t, []string{"الف"}, wordForms("الف"))
}

func seedComplaintScenario(t *testing.T) (*Service, model.Route, model.Route) {
	t.Helper()
	s, db := newTestService(t)
	busy := createRoute(t, db, "Busy")
	calm := createRoute(t, db, "Calm")

	for i := 0; i < 12; i++ {
		ts := ago(days(i+1) + time.Hour)
		c := model.Complaint{RouteID: &busy.ID, ComplaintText: "bus was late", Status: model.ComplaintPending, Timestamp: ts}
		if i < 9 {
			resolved := ts.Add(2 * time.Hour)
			c.Status = model.ComplaintResolved
			c.ResolvedAt = &resolved
		}
		mustCreate(t, db, &c)
	}
	for i := 0; i < 3; i++ {
		mustCreate(t, db, &model.Complaint{RouteID: &calm.ID, ComplaintText: "driver was rude", Timestamp: ago(days(1) + time.Duration(i)*time.Minute)})
	}
	// outside the 30 day window
	mustCreate(t, db, &model.Complaint{RouteID: &calm.ID, ComplaintText: "too crowded", Timestamp: ago(days(40))})
	return s, busy, calm
}

func TestComplaintIntelligence_All(t *testing.T) {
	s, busy, calm := seedComplaintScenario(t)

	ci, err := s.ComplaintIntelligence(context.Background(), "all")
	require.NoError(t, err)

	assert.Equal(t, int64(15), *ci.Overview.TotalComplaints)
	assert.Equal(t, int64(9), *ci.Overview.ResolvedComplaints)
	assert.Equal(t, 60.0, *ci.Overview.ResolutionRate)
	assert.Equal(t, 2.0, *ci.Overview.AvgResponseTimeHours)

	require.Len(t, ci.Trends, 12)
	var total, resolved, pending int64
	for i, tr := range ci.Trends {
		if i > 0 {
			assert.Less(t, ci.Trends[i-1].Date, tr.Date)
		}
		assert.Equal(t, tr.Total, tr.Resolved+tr.Pending)
		total += tr.Total
		resolved += tr.Resolved
		pending += tr.Pending
	}
	assert.Equal(t, int64(15), total)
	assert.Equal(t, int64(9), resolved)
	assert.Equal(t, int64(6), pending)

	require.Len(t, ci.RouteAnalysis, 2)
	assert.Equal(t, model.RouteComplaints{
		RouteID:                busy.ID,
		RouteName:              "Busy",
		TotalComplaints:        12,
		ResolvedComplaints:     9,
		ResolutionRate:         75,
		AvgResolutionTimeHours: 2,
		PriorityLevel:          model.LevelHigh,
	}, ci.RouteAnalysis[0])
	assert.Equal(t, calm.ID, ci.RouteAnalysis[1].RouteID)
	assert.Equal(t, model.LevelLow, ci.RouteAnalysis[1].PriorityLevel)
	assert.Zero(t, ci.RouteAnalysis[1].ResolutionRate)

	assert.Equal(t, model.ComplaintCategories{
		model.CategoryDelays:  12,
		model.CategoryVehicle: 12,
		model.CategoryDriver:  3,
	}, ci.Categories)

	assert.Equal(t, []string{InsightLowResolution, "1 routes need urgent attention"}, ci.Insights)
}

func TestComplaintIntelligence_AnalysisTypeFilters(t *testing.T) {
	s, _, _ := seedComplaintScenario(t)
	ctx := context.Background()

	trends, err := s.ComplaintIntelligence(ctx, "trends")
	require.NoError(t, err)
	assert.NotNil(t, trends.Overview)
	assert.NotEmpty(t, trends.Trends)
	assert.Nil(t, trends.Categories)
	assert.Nil(t, trends.RouteAnalysis)
	assert.NotEmpty(t, trends.Insights)

	categories, err := s.ComplaintIntelligence(ctx, "categories")
	require.NoError(t, err)
	assert.NotEmpty(t, categories.Categories)
	assert.Nil(t, categories.Trends)
	assert.Nil(t, categories.RouteAnalysis)

	routes, err := s.ComplaintIntelligence(ctx, "routes")
	require.NoError(t, err)
	assert.Len(t, routes.RouteAnalysis, 2)
	assert.Nil(t, routes.Trends)
	assert.Nil(t, routes.Categories)
}

func TestPriorityLevel(t *testing.T) {
	assert.Equal(t, model.LevelLow, priorityLevel(5))
	assert.Equal(t, model.LevelMedium, priorityLevel(6))
	assert.Equal(t, model.LevelMedium, priorityLevel(10))
	assert.Equal(t, model.LevelHigh, priorityLevel(11))
}
