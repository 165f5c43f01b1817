package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"tiketbus/internal/config"
	"tiketbus/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const routeColumns = `id, origin, destination, COALESCE(distance_km,0), COALESCE(duration_hours,0), base_price, status`

// ListActive returns active routes, optionally filtered by origin and/or
// destination (exact match, case-insensitive).
func (r RouteRepository) ListActive(origin, destination string) ([]models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE status='active'`
	args := []any{}
	if o := strings.TrimSpace(origin); o != "" {
		query += ` AND LOWER(origin)=LOWER(?)`
		args = append(args, o)
	}
	if d := strings.TrimSpace(destination); d != "" {
		query += ` AND LOWER(destination)=LOWER(?)`
		args = append(args, d)
	}
	query += ` ORDER BY origin, destination`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKM, &rt.DurationHours, &rt.BasePrice, &rt.Status); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	if id <= 0 {
		return models.Route{}, fmt.Errorf("id tidak valid")
	}
	var rt models.Route
	err := r.db().QueryRow(`SELECT `+routeColumns+` FROM routes WHERE id=? LIMIT 1`, id).
		Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKM, &rt.DurationHours, &rt.BasePrice, &rt.Status)
	if err != nil {
		return models.Route{}, err
	}
	return rt, nil
}

func (r RouteRepository) Create(in models.RouteInput) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO routes (origin, destination, distance_km, duration_hours, base_price, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, in.Origin, in.Destination, in.DistanceKM, in.DurationHours, in.BasePrice, in.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RouteRepository) Update(id int64, in models.RouteInput) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`
		UPDATE routes SET origin=?, destination=?, distance_km=?, duration_hours=?, base_price=?, status=?, updated_at=NOW()
		WHERE id=?
	`, in.Origin, in.Destination, in.DistanceKM, in.DurationHours, in.BasePrice, in.Status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return sql.ErrNoRows
		}
	}
	return nil
}

func (r RouteRepository) Delete(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`DELETE FROM routes WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
