package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"tiketbus/internal/config"
	"tiketbus/internal/domain/models"
)

type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const scheduleDetailColumns = `
	s.id, s.route_id, s.bus_id,
	TIME_FORMAT(s.departure_time, '%H:%i'),
	TIME_FORMAT(s.arrival_time, '%H:%i'),
	s.days_of_week, s.status,
	r.id, r.origin, r.destination, COALESCE(r.distance_km,0), COALESCE(r.duration_hours,0), r.base_price, r.status,
	b.id, b.bus_number, b.capacity, b.bus_type, b.status`

const scheduleDetailJoin = `
	FROM schedules s
	JOIN routes r ON r.id = s.route_id
	JOIN buses b ON b.id = s.bus_id`

func scanScheduleDetail(row interface{ Scan(...any) error }, d *models.ScheduleDetail) error {
	var days string
	if err := row.Scan(
		&d.ID, &d.RouteID, &d.BusID,
		&d.DepartureTime, &d.ArrivalTime,
		&days, &d.Status,
		&d.Route.ID, &d.Route.Origin, &d.Route.Destination, &d.Route.DistanceKM, &d.Route.DurationHours, &d.Route.BasePrice, &d.Route.Status,
		&d.Bus.ID, &d.Bus.BusNumber, &d.Bus.Capacity, &d.Bus.BusType, &d.Bus.Status,
	); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(days), &d.DaysOfWeek); err != nil {
		return fmt.Errorf("days_of_week rusak: %w", err)
	}
	return nil
}

// ListActiveByDay returns active schedules serving the given lowercase day
// name, optionally filtered by route origin/destination. day="" lists all.
func (r ScheduleRepository) ListActiveByDay(day, origin, destination string) ([]models.ScheduleDetail, error) {
	query := `SELECT ` + scheduleDetailColumns + scheduleDetailJoin + `
		WHERE s.status='active' AND r.status='active'`
	args := []any{}
	if d := strings.TrimSpace(strings.ToLower(day)); d != "" {
		query += ` AND JSON_CONTAINS(s.days_of_week, JSON_QUOTE(?))`
		args = append(args, d)
	}
	if o := strings.TrimSpace(origin); o != "" {
		query += ` AND LOWER(r.origin)=LOWER(?)`
		args = append(args, o)
	}
	if dst := strings.TrimSpace(destination); dst != "" {
		query += ` AND LOWER(r.destination)=LOWER(?)`
		args = append(args, dst)
	}
	query += ` ORDER BY s.departure_time`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ScheduleDetail{}
	for rows.Next() {
		var d models.ScheduleDetail
		if err := scanScheduleDetail(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r ScheduleRepository) GetDetailByID(id int64) (models.ScheduleDetail, error) {
	if id <= 0 {
		return models.ScheduleDetail{}, fmt.Errorf("id tidak valid")
	}
	var d models.ScheduleDetail
	row := r.db().QueryRow(`SELECT `+scheduleDetailColumns+scheduleDetailJoin+` WHERE s.id=? LIMIT 1`, id)
	if err := scanScheduleDetail(row, &d); err != nil {
		return models.ScheduleDetail{}, err
	}
	return d, nil
}

func (r ScheduleRepository) Create(in models.ScheduleInput) (int64, error) {
	days, err := json.Marshal(in.DaysOfWeek)
	if err != nil {
		return 0, err
	}
	res, err := r.db().Exec(`
		INSERT INTO schedules (route_id, bus_id, departure_time, arrival_time, days_of_week, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, in.RouteID, in.BusID, in.DepartureTime, in.ArrivalTime, string(days), in.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ScheduleRepository) Update(id int64, in models.ScheduleInput) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	days, err := json.Marshal(in.DaysOfWeek)
	if err != nil {
		return err
	}
	res, err := r.db().Exec(`
		UPDATE schedules SET route_id=?, bus_id=?, departure_time=?, arrival_time=?, days_of_week=?, status=?, updated_at=NOW()
		WHERE id=?
	`, in.RouteID, in.BusID, in.DepartureTime, in.ArrivalTime, string(days), in.Status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetDetailByID(id); err != nil {
			return sql.ErrNoRows
		}
	}
	return nil
}

func (r ScheduleRepository) Delete(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`DELETE FROM schedules WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
