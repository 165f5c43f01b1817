package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"tiketbus/internal/config"
	"tiketbus/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r PaymentRepository) Create(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments (booking_id, amount, payment_method, transaction_id, payment_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, p.BookingID, p.Amount, p.PaymentMethod, p.TransactionID, p.PaymentStatus)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByBookingID returns the latest payment row for a booking, or zero value
// when none exists yet.
func (r PaymentRepository) GetByBookingID(bookingID int64) (models.Payment, error) {
	if bookingID <= 0 {
		return models.Payment{}, fmt.Errorf("booking_id tidak valid")
	}
	var p models.Payment
	err := r.db().QueryRow(`
		SELECT id, booking_id, amount, payment_method, COALESCE(transaction_id,''), payment_status
		FROM payments WHERE booking_id=? ORDER BY id DESC LIMIT 1
	`, bookingID).Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentMethod, &p.TransactionID, &p.PaymentStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, nil
		}
		return models.Payment{}, err
	}
	return p, nil
}

// UpdateStatusByBooking sets payment_status (and transaction_id when given)
// on the latest payment row of a booking.
func (r PaymentRepository) UpdateStatusByBooking(bookingID int64, status, transactionID string) error {
	if bookingID <= 0 {
		return fmt.Errorf("booking_id tidak valid")
	}
	if transactionID != "" {
		_, err := r.db().Exec(`
			UPDATE payments SET payment_status=?, transaction_id=?, updated_at=NOW()
			WHERE booking_id=? ORDER BY id DESC LIMIT 1
		`, status, transactionID, bookingID)
		return err
	}
	_, err := r.db().Exec(`
		UPDATE payments SET payment_status=?, updated_at=NOW()
		WHERE booking_id=? ORDER BY id DESC LIMIT 1
	`, status, bookingID)
	return err
}
