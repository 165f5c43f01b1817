package models

// Schedule is a recurring departure: route + bus + time + days of week.
type Schedule struct {
	ID            int64    `json:"id"`
	RouteID       int64    `json:"route_id"`
	BusID         int64    `json:"bus_id"`
	DepartureTime string   `json:"departure_time"` // HH:MM
	ArrivalTime   string   `json:"arrival_time"`   // HH:MM
	DaysOfWeek    []string `json:"days_of_week"`   // lowercase english day names
	Status        string   `json:"status"`         // active / inactive
	CreatedAt     string   `json:"created_at,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

// ScheduleDetail joins in route and bus reference data for display.
type ScheduleDetail struct {
	Schedule
	Route Route `json:"route"`
	Bus   Bus   `json:"bus"`
}

type ScheduleInput struct {
	RouteID       int64    `json:"route_id"`
	BusID         int64    `json:"bus_id"`
	DepartureTime string   `json:"departure_time"`
	ArrivalTime   string   `json:"arrival_time"`
	DaysOfWeek    []string `json:"days_of_week"`
	Status        string   `json:"status"`
}

// ServesDay reports whether the schedule runs on the given lowercase day name.
func (s Schedule) ServesDay(day string) bool {
	for _, d := range s.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}
