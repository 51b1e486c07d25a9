package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"transit-dashboard/model"
)

const usagePatternLimit = 10

// Behavior insight texts
const (
	InsightRetention  = "High growth: focus on user retention"
	InsightPowerUsers = "High share of power users: opportunity for new features"
)

// UserBehavior segments users and profiles the first users of the chosen segment
func (s *Service) UserBehavior(ctx context.Context, userType string) (*model.UserBehavior, error) {
	now := s.clock()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)
	db := s.db.WithContext(ctx)

	segments := map[string]struct {
		query string
		arg   any
	}{
		"active":   {"updated_at >= ?", weekAgo},
		"new":      {"created_at >= ?", weekAgo},
		"inactive": {"updated_at < ?", monthAgo},
	}
	sizes := make(map[string]int64, len(segments))
	for name, seg := range segments {
		n, err := s.count(ctx, &model.User{}, seg.query, seg.arg)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s users: %w", name, err)
		}
		sizes[name] = n
	}
	total, err := s.count(ctx, &model.User{}, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	seg, ok := segments[userType]
	if !ok {
		seg = segments["active"]
	}
	var users []model.User
	if err := db.Where(seg.query, seg.arg).Order("id").Limit(usagePatternLimit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	patterns := make([]model.UsagePattern, 0, len(users))
	for _, u := range users {
		p, err := s.usagePattern(ctx, u, weekAgo)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		return *patterns[i].ActivityScore > *patterns[j].ActivityScore
	})

	return &model.UserBehavior{
		UserSegments: &model.UserSegments{
			TotalUsers:     model.Int64(total),
			ActiveUsers:    model.Int64(sizes["active"]),
			NewUsers:       model.Int64(sizes["new"]),
			InactiveUsers:  model.Int64(sizes["inactive"]),
			EngagementRate: model.Float(percent(sizes["active"], total)),
		},
		UsagePatterns:    patterns,
		BehaviorInsights: behaviorInsights(patterns, sizes["active"], sizes["new"]),
	}, nil
}

func (s *Service) usagePattern(ctx context.Context, u model.User, since time.Time) (model.UsagePattern, error) {
	db := s.db.WithContext(ctx)

	var searches []model.SearchLog
	if err := db.Select("timestamp").Where("user_id = ? AND timestamp >= ?", u.ID, since).Find(&searches).Error; err != nil {
		return model.UsagePattern{}, fmt.Errorf("failed to load searches of user %d: %w", u.ID, err)
	}
	complaints, err := s.count(ctx, &model.Complaint{}, "user_id = ? AND timestamp >= ?", u.ID, since)
	if err != nil {
		return model.UsagePattern{}, fmt.Errorf("failed to count complaints of user %d: %w", u.ID, err)
	}
	shares, err := s.count(ctx, &model.LocationShare{}, "user_id = ? AND created_at >= ?", u.ID, since)
	if err != nil {
		return model.UsagePattern{}, fmt.Errorf("failed to count shares of user %d: %w", u.ID, err)
	}

	hours := make(map[int]int64)
	for _, sl := range searches {
		hours[sl.Timestamp.UTC().Hour()]++
	}
	preferred := make([]int, 0, 3)
	for _, h := range topHours(hours, 3) {
		preferred = append(preferred, h.Hour)
	}

	n := int64(len(searches))
	return model.UsagePattern{
		UserID:          u.ID,
		Username:        u.Username,
		Email:           u.Email,
		ActivityScore:   model.Int64(n + complaints*2 + shares*3),
		SearchesCount:   model.Int64(n),
		ComplaintsCount: model.Int64(complaints),
		SharesCount:     model.Int64(shares),
		PreferredHours:  preferred,
		UserType:        classifyUser(n),
	}, nil
}

func classifyUser(searches int64) string {
	switch {
	case searches > 20:
		return model.UserTypePower
	case searches > 5:
		return model.UserTypeRegular
	default:
		return model.UserTypeCasual
	}
}

func behaviorInsights(patterns []model.UsagePattern, active, newUsers int64) []string {
	insights := []string{}
	if float64(newUsers) > float64(active)*0.3 {
		insights = append(insights, InsightRetention)
	}
	power := 0
	for _, p := range patterns {
		if p.UserType == model.UserTypePower {
			power++
		}
	}
	if float64(power) > float64(len(patterns))*0.2 {
		insights = append(insights, InsightPowerUsers)
	}
	return insights
}
