package model

import "time"

// Complaint status values
const (
	ComplaintPending    = "pending"
	ComplaintInProgress = "in_progress"
	ComplaintResolved   = "resolved"
	ComplaintRejected   = "rejected"
)

// Location share status values
const (
	ShareActive  = "active"
	SharePaused  = "paused"
	ShareStopped = "stopped"
)

// User is an app account. UpdatedAt doubles as the last-activity marker.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"size:128" json:"full_name,omitempty"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// Route is a transit line
type Route struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Name           string      `gorm:"size:128;uniqueIndex;not null" json:"name"`
	RouteCode      string      `gorm:"size:32" json:"route_code,omitempty"`
	Description    string      `json:"description,omitempty"`
	Price          int         `json:"price"`
	OperatingHours string      `gorm:"size:64" json:"operating_hours,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	Paths          []RoutePath `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// RoutePath is one ordered point of a route's polyline
type RoutePath struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	RouteID    uint    `gorm:"index;not null" json:"route_id"`
	Lat        float64 `gorm:"not null" json:"lat"`
	Lng        float64 `gorm:"not null" json:"lng"`
	PointOrder int     `json:"point_order"`
}

// Complaint is a rider report against a route or vehicle
type Complaint struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        *uint      `gorm:"index" json:"user_id"`
	RouteID       *uint      `gorm:"index" json:"route_id"`
	VehicleID     *string    `gorm:"size:64" json:"vehicle_id"`
	ComplaintText string     `json:"complaint_text"`
	Status        string     `gorm:"size:20;index;default:pending" json:"status"`
	Timestamp     time.Time  `gorm:"index" json:"timestamp"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// SearchLog records one trip search (origin, destination, matched route)
type SearchLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id,omitempty"` // nil for anonymous searches
	RouteID    *uint     `gorm:"index" json:"route_id"`
	StartLat   float64   `gorm:"not null" json:"start_lat"`
	StartLng   float64   `gorm:"not null" json:"start_lng"`
	EndLat     float64   `gorm:"not null" json:"end_lat"`
	EndLng     float64   `gorm:"not null" json:"end_lng"`
	FilterType string    `gorm:"size:32" json:"filter_type,omitempty"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}

// LocationShare is a live location a user shares with a friend
type LocationShare struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	SharedWithID    uint      `gorm:"not null" json:"shared_with_id"`
	CurrentLat      float64   `json:"current_lat"`
	CurrentLng      float64   `json:"current_lng"`
	DestinationName string    `gorm:"size:128" json:"destination_name,omitempty"`
	Status          string    `gorm:"size:16;index;default:active" json:"status"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// VehicleLocation is a GPS fix reported by a vehicle
type VehicleLocation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VehicleID string    `gorm:"size:64;index;not null" json:"vehicle_id"`
	Lat       float64   `gorm:"not null" json:"lat"`
	Lng       float64   `gorm:"not null" json:"lng"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

// Feedback is a rating left for a route
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:32" json:"type"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment,omitempty"`
	RouteID   *uint     `gorm:"index" json:"route_id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

// AnalyticsData is a client-collected metric point
type AnalyticsData struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // UUID
	DataType  string    `gorm:"size:64;index;not null" json:"data_type"`
	Value     float64   `json:"value"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

// Entities lists every persisted type, in migration order.
func Entities() []any {
	return []any{
		&User{},
		&Route{},
		&RoutePath{},
		&Complaint{},
		&SearchLog{},
		&LocationShare{},
		&VehicleLocation{},
		&Feedback{},
		&AnalyticsData{},
	}
}
