package database

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"transit-dashboard/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SeedOptions controls the size and shape of the demo dataset
type SeedOptions struct {
	Now              time.Time
	Seed             int64
	Users            int
	Days             int // history window
	SearchesPerDay   int
	ComplaintsPerDay int
	Vehicles         int
}

// DefaultSeedOptions is a dataset large enough to light up every dashboard section
func DefaultSeedOptions(now time.Time) SeedOptions {
	return SeedOptions{
		Now:              now.UTC(),
		Seed:             42,
		Users:            400,
		Days:             45,
		SearchesPerDay:   180,
		ComplaintsPerDay: 6,
		Vehicles:         24,
	}
}

type seedRoute struct {
	name  string
	code  string
	price int
	from  model.GeoPoint
	to    model.GeoPoint
}

var seedRoutes = []seedRoute{
	{"خط الجامعة - المدينة", "U1", 150, model.GeoPoint{Lat: 24.7136, Lng: 46.6753}, model.GeoPoint{Lat: 24.7736, Lng: 46.7353}},
	{"خط المطار - المركز", "A2", 200, model.GeoPoint{Lat: 24.9576, Lng: 46.6988}, model.GeoPoint{Lat: 24.7136, Lng: 46.6753}},
	{"خط الشمال - الجنوب", "N3", 150, model.GeoPoint{Lat: 24.8236, Lng: 46.6553}, model.GeoPoint{Lat: 24.6036, Lng: 46.6953}},
	{"خط الشرق - الغرب", "E4", 100, model.GeoPoint{Lat: 24.7036, Lng: 46.8253}, model.GeoPoint{Lat: 24.7236, Lng: 46.5753}},
	{"خط الملز - العليا", "M5", 100, model.GeoPoint{Lat: 24.6636, Lng: 46.7353}, model.GeoPoint{Lat: 24.6936, Lng: 46.6853}},
}

var seedComplaintTexts = []string{
	"تأخير كبير في وصول الحافلة",
	"ازدحام شديد وقت الذروة",
	"السائق لم يتوقف في المحطة",
	"المركبة غير نظيفة والمكيف معطل",
	"السعر مرتفع مقارنة بالخدمة",
	"خدمة العملاء لم ترد",
	"bus was late again",
	"too crowded in the morning",
	"driver was rude",
	"the vehicle broke down",
}

// rush hours carry most of the search volume
var seedHourWeights = []int{1, 1, 1, 1, 2, 4, 8, 14, 18, 10, 6, 6, 9, 7, 6, 8, 12, 16, 11, 7, 5, 3, 2, 1}

const pathPointsPerRoute = 12

// Seed replaces the contents of every table with a deterministic demo dataset
func Seed(ctx context.Context, db *gorm.DB, opts SeedOptions) error {
	if opts.Users < 1 || opts.Days < 1 {
		return fmt.Errorf("seed needs at least one user and one day, got users=%d days=%d", opts.Users, opts.Days)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	now := opts.Now.UTC()
	tx := db.WithContext(ctx)

	for _, entity := range model.Entities() {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(entity).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", entity, err)
		}
	}

	routes := make([]model.Route, 0, len(seedRoutes))
	for _, sr := range seedRoutes {
		route := model.Route{
			Name:           sr.name,
			RouteCode:      sr.code,
			Price:          sr.price,
			OperatingHours: "05:30-23:30",
			CreatedAt:      now.AddDate(0, 0, -opts.Days-30),
		}
		for i := 0; i < pathPointsPerRoute; i++ {
			f := float64(i) / float64(pathPointsPerRoute-1)
			route.Paths = append(route.Paths, model.RoutePath{
				Lat:        sr.from.Lat + (sr.to.Lat-sr.from.Lat)*f,
				Lng:        sr.from.Lng + (sr.to.Lng-sr.from.Lng)*f,
				PointOrder: i + 1,
			})
		}
		routes = append(routes, route)
	}
	if err := tx.Create(&routes).Error; err != nil {
		return fmt.Errorf("failed to seed routes: %w", err)
	}

	users := make([]model.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		// newer users are more common so growth is visible
		ageDays := int(float64(opts.Days+30) * rng.Float64() * rng.Float64())
		created := now.AddDate(0, 0, -ageDays).Add(-time.Duration(rng.Intn(86400)) * time.Second)
		updated := created.Add(time.Duration(rng.Int63n(int64(now.Sub(created)) + 1)))
		users = append(users, model.User{
			Username:  fmt.Sprintf("rider%04d", i+1),
			Email:     fmt.Sprintf("rider%04d@example.com", i+1),
			IsActive:  rng.Intn(10) > 0,
			IsAdmin:   i < 2,
			CreatedAt: created,
			UpdatedAt: updated,
		})
	}
	if err := tx.CreateInBatches(&users, 200).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	var searches []model.SearchLog
	var complaints []model.Complaint
	var feedback []model.Feedback
	for d := opts.Days - 1; d >= 0; d-- {
		day := now.AddDate(0, 0, -d).Truncate(24 * time.Hour)
		for i := 0; i < opts.SearchesPerDay; i++ {
			ts := day.Add(time.Duration(weightedHour(rng))*time.Hour + time.Duration(rng.Intn(3600))*time.Second)
			if ts.After(now) {
				continue
			}
			r := rng.Intn(len(routes))
			sr := seedRoutes[r]
			search := model.SearchLog{
				StartLat:   jitter(rng, sr.from.Lat),
				StartLng:   jitter(rng, sr.from.Lng),
				EndLat:     jitter(rng, sr.to.Lat),
				EndLng:     jitter(rng, sr.to.Lng),
				FilterType: []string{"fastest", "cheapest", "fewest_transfers"}[rng.Intn(3)],
				Timestamp:  ts,
			}
			if rng.Intn(8) > 0 {
				search.RouteID = &routes[r].ID
			}
			if rng.Intn(10) < 7 {
				// a few riders account for most searches
				u := users[int(float64(len(users))*math.Pow(rng.Float64(), 3))]
				search.UserID = &u.ID
			}
			searches = append(searches, search)
		}

		for i := 0; i < opts.ComplaintsPerDay+rng.Intn(3); i++ {
			ts := day.Add(time.Duration(6+rng.Intn(16))*time.Hour + time.Duration(rng.Intn(3600))*time.Second)
			if ts.After(now) {
				continue
			}
			userID := users[rng.Intn(len(users))].ID
			routeID := routes[rng.Intn(len(routes))].ID
			c := model.Complaint{
				UserID:        &userID,
				RouteID:       &routeID,
				ComplaintText: seedComplaintTexts[rng.Intn(len(seedComplaintTexts))],
				Status:        model.ComplaintPending,
				Timestamp:     ts,
			}
			switch roll := rng.Intn(10); {
			case roll < 7 && d > 0:
				resolved := ts.Add(time.Duration(1+rng.Intn(12)) * time.Hour)
				if resolved.After(now) {
					resolved = now
				}
				c.Status = model.ComplaintResolved
				c.ResolvedAt = &resolved
			case roll == 7:
				c.Status = model.ComplaintInProgress
			}
			complaints = append(complaints, c)
		}

		for i := 0; i < 2; i++ {
			ts := day.Add(time.Duration(8+rng.Intn(12)) * time.Hour)
			routeID := routes[rng.Intn(len(routes))].ID
			if ts.After(now) {
				continue
			}
			feedback = append(feedback, model.Feedback{
				Type:      "rating",
				Rating:    2 + rng.Intn(4),
				RouteID:   &routeID,
				Timestamp: ts,
			})
		}
	}
	if err := createAll(tx, searches, "searches"); err != nil {
		return err
	}
	if err := createAll(tx, complaints, "complaints"); err != nil {
		return err
	}
	if err := createAll(tx, feedback, "feedback"); err != nil {
		return err
	}

	var shares []model.LocationShare
	for i := 0; i < opts.Users/8; i++ {
		u := users[rng.Intn(len(users))]
		friend := users[rng.Intn(len(users))]
		created := now.Add(-time.Duration(rng.Intn(14*24)) * time.Hour)
		sr := seedRoutes[rng.Intn(len(seedRoutes))]
		status := model.ShareStopped
		if created.After(now.Add(-6 * time.Hour)) {
			status = model.ShareActive
		}
		shares = append(shares, model.LocationShare{
			UserID:          u.ID,
			SharedWithID:    friend.ID,
			CurrentLat:      jitter(rng, sr.from.Lat),
			CurrentLng:      jitter(rng, sr.from.Lng),
			DestinationName: sr.name,
			Status:          status,
			ExpiresAt:       created.Add(2 * time.Hour),
			CreatedAt:       created,
		})
	}
	if err := createAll(tx, shares, "location shares"); err != nil {
		return err
	}

	var fixes []model.VehicleLocation
	for v := 0; v < opts.Vehicles; v++ {
		sr := seedRoutes[v%len(seedRoutes)]
		for m := 0; m < 30; m += 2 {
			fixes = append(fixes, model.VehicleLocation{
				VehicleID: fmt.Sprintf("BUS-%03d", v+1),
				Lat:       jitter(rng, sr.from.Lat),
				Lng:       jitter(rng, sr.from.Lng),
				Timestamp: now.Add(-time.Duration(m)*time.Minute - time.Duration(rng.Intn(60))*time.Second),
			})
		}
	}
	if err := createAll(tx, fixes, "vehicle locations"); err != nil {
		return err
	}

	log.Info().
		Int("routes", len(routes)).
		Int("users", len(users)).
		Int("searches", len(searches)).
		Int("complaints", len(complaints)).
		Int("shares", len(shares)).
		Int("vehicle_fixes", len(fixes)).
		Msg("Demo data seeded")

	return nil
}

func createAll[T any](tx *gorm.DB, rows []T, what string) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(&rows, 500).Error; err != nil {
		return fmt.Errorf("failed to seed %s: %w", what, err)
	}
	return nil
}

func weightedHour(rng *rand.Rand) int {
	total := 0
	for _, w := range seedHourWeights {
		total += w
	}
	n := rng.Intn(total)
	for h, w := range seedHourWeights {
		if n < w {
			return h
		}
		n -= w
	}
	return 12
}

// jitter moves a coordinate by up to roughly 300m
func jitter(rng *rand.Rand, v float64) float64 {
	return v + (rng.Float64()-0.5)*0.006
}
