package models

// Route is reference data for an origin/destination pair.
type Route struct {
	ID            int64   `json:"id"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DistanceKM    float64 `json:"distance_km"`
	DurationHours float64 `json:"duration_hours"`
	BasePrice     int64   `json:"base_price"`
	Status        string  `json:"status"` // active / inactive
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

type RouteInput struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DistanceKM    float64 `json:"distance_km"`
	DurationHours float64 `json:"duration_hours"`
	BasePrice     int64   `json:"base_price"`
	Status        string  `json:"status"`
}
