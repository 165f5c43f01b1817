package models

// Bus is reference data for a vehicle in the fleet.
type Bus struct {
	ID        int64  `json:"id"`
	BusNumber string `json:"bus_number"`
	Capacity  int    `json:"capacity"`
	BusType   string `json:"bus_type"`
	Status    string `json:"status"` // active / maintenance / inactive
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// BusInput carries create/update payloads for buses.
type BusInput struct {
	BusNumber string `json:"bus_number"`
	Capacity  int    `json:"capacity"`
	BusType   string `json:"bus_type"`
	Status    string `json:"status"`
}
