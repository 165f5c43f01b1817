package repositories

import (
	"database/sql"
	"fmt"

	"tiketbus/internal/config"
	"tiketbus/internal/domain/models"
)

type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const busColumns = `id, bus_number, capacity, bus_type, status`

func (r BusRepository) List() ([]models.Bus, error) {
	rows, err := r.db().Query(`SELECT ` + busColumns + ` FROM buses ORDER BY bus_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.BusNumber, &b.Capacity, &b.BusType, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BusRepository) GetByID(id int64) (models.Bus, error) {
	if id <= 0 {
		return models.Bus{}, fmt.Errorf("id tidak valid")
	}
	var b models.Bus
	err := r.db().QueryRow(`SELECT `+busColumns+` FROM buses WHERE id=? LIMIT 1`, id).
		Scan(&b.ID, &b.BusNumber, &b.Capacity, &b.BusType, &b.Status)
	if err != nil {
		return models.Bus{}, err
	}
	return b, nil
}

func (r BusRepository) Create(in models.BusInput) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO buses (bus_number, capacity, bus_type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
	`, in.BusNumber, in.Capacity, in.BusType, in.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BusRepository) Update(id int64, in models.BusInput) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`
		UPDATE buses SET bus_number=?, capacity=?, bus_type=?, status=?, updated_at=NOW()
		WHERE id=?
	`, in.BusNumber, in.Capacity, in.BusType, in.Status, id)
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

func (r BusRepository) Delete(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`DELETE FROM buses WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
