package repositories

import (
	"database/sql"

	"tiketbus/internal/config"
)

// DashboardStats feeds the admin overview page.
type DashboardStats struct {
	TotalBuses    int   `json:"total_buses"`
	TotalRoutes   int   `json:"total_routes"`
	TotalBookings int   `json:"total_bookings"`
	TotalRevenue  int64 `json:"total_revenue"`
}

type StatsRepository struct {
	DB *sql.DB
}

func (r StatsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r StatsRepository) Dashboard() (DashboardStats, error) {
	var s DashboardStats
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM buses`).Scan(&s.TotalBuses); err != nil {
		return s, err
	}
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM routes`).Scan(&s.TotalRoutes); err != nil {
		return s, err
	}
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&s.TotalBookings); err != nil {
		return s, err
	}
	// revenue counts paid bookings only
	if err := r.db().QueryRow(`SELECT COALESCE(SUM(total_amount),0) FROM bookings WHERE payment_status='paid'`).Scan(&s.TotalRevenue); err != nil {
		return s, err
	}
	return s, nil
}
