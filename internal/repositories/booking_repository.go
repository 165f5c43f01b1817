package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"tiketbus/internal/config"
	"tiketbus/internal/domain"
	"tiketbus/internal/domain/models"
)

// ErrAmbiguousCode is returned when one booking's reference collides with
// another booking's qr_code. Both columns are unique on their own, so this
// only happens across columns; treat it as a hard error, never pick one.
var ErrAmbiguousCode = errors.New("kode tiket cocok dengan lebih dari satu booking")

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const bookingColumns = `
	b.id,
	b.user_id,
	b.schedule_id,
	DATE_FORMAT(b.travel_date, '%Y-%m-%d'),
	b.seat_numbers,
	b.passenger_names,
	b.passenger_phones,
	b.total_amount,
	b.booking_reference,
	b.payment_status,
	b.booking_status,
	COALESCE(b.qr_code, '')`

const bookingDetailJoin = `
	FROM bookings b
	JOIN schedules s ON s.id = b.schedule_id
	JOIN routes r ON r.id = s.route_id
	JOIN buses bus ON bus.id = s.bus_id`

const bookingDetailColumns = bookingColumns + `,
	s.id, s.route_id, s.bus_id,
	TIME_FORMAT(s.departure_time, '%H:%i'),
	TIME_FORMAT(s.arrival_time, '%H:%i'),
	s.days_of_week, s.status,
	r.id, r.origin, r.destination, COALESCE(r.distance_km,0), COALESCE(r.duration_hours,0), r.base_price, r.status,
	bus.id, bus.bus_number, bus.capacity, bus.bus_type, bus.status`

func scanBooking(row interface{ Scan(...any) error }, b *models.Booking) error {
	var seats, names, phones string
	if err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ScheduleID,
		&b.TravelDate,
		&seats,
		&names,
		&phones,
		&b.TotalAmount,
		&b.BookingReference,
		&b.PaymentStatus,
		&b.BookingStatus,
		&b.QRCode,
	); err != nil {
		return err
	}
	return decodeBookingArrays(b, seats, names, phones)
}

func decodeBookingArrays(b *models.Booking, seats, names, phones string) error {
	if err := json.Unmarshal([]byte(seats), &b.SeatNumbers); err != nil {
		return fmt.Errorf("seat_numbers rusak: %w", err)
	}
	if err := json.Unmarshal([]byte(names), &b.PassengerNames); err != nil {
		return fmt.Errorf("passenger_names rusak: %w", err)
	}
	if err := json.Unmarshal([]byte(phones), &b.PassengerPhones); err != nil {
		return fmt.Errorf("passenger_phones rusak: %w", err)
	}
	return nil
}

func scanBookingDetail(row interface{ Scan(...any) error }, d *models.BookingDetail) error {
	var seats, names, phones, days string
	if err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.ScheduleID,
		&d.TravelDate,
		&seats,
		&names,
		&phones,
		&d.TotalAmount,
		&d.BookingReference,
		&d.PaymentStatus,
		&d.BookingStatus,
		&d.QRCode,
		&d.Schedule.ID,
		&d.Schedule.RouteID,
		&d.Schedule.BusID,
		&d.Schedule.DepartureTime,
		&d.Schedule.ArrivalTime,
		&days,
		&d.Schedule.Status,
		&d.Route.ID,
		&d.Route.Origin,
		&d.Route.Destination,
		&d.Route.DistanceKM,
		&d.Route.DurationHours,
		&d.Route.BasePrice,
		&d.Route.Status,
		&d.Bus.ID,
		&d.Bus.BusNumber,
		&d.Bus.Capacity,
		&d.Bus.BusType,
		&d.Bus.Status,
	); err != nil {
		return err
	}
	if err := decodeBookingArrays(&d.Booking, seats, names, phones); err != nil {
		return err
	}
	_ = json.Unmarshal([]byte(days), &d.Schedule.DaysOfWeek)
	return nil
}

// Create inserts the booking and its booking_seats rows in one transaction.
// The UNIQUE KEY on (schedule_id, travel_date, seat_number) makes two
// concurrent bookings of the same seat fail here instead of double-selling.
func (r BookingRepository) Create(b models.Booking) (int64, error) {
	db := r.db()

	seats, err := json.Marshal(b.SeatNumbers)
	if err != nil {
		return 0, err
	}
	names, err := json.Marshal(b.PassengerNames)
	if err != nil {
		return 0, err
	}
	phones, err := json.Marshal(b.PassengerPhones)
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO bookings
			(user_id, schedule_id, travel_date, seat_numbers, passenger_names, passenger_phones,
			 total_amount, booking_reference, payment_status, booking_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, b.UserID, b.ScheduleID, b.TravelDate, string(seats), string(names), string(phones),
		b.TotalAmount, b.BookingReference, b.PaymentStatus, b.BookingStatus)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, seat := range b.SeatNumbers {
		if _, err := tx.Exec(`
			INSERT INTO booking_seats (booking_id, schedule_id, travel_date, seat_number)
			VALUES (?, ?, ?, ?)
		`, id, b.ScheduleID, b.TravelDate, seat); err != nil {
			if isDuplicateKey(err) {
				return 0, domain.ConflictError{Resource: "seat", Msg: fmt.Sprintf("kursi %d sudah dipesan", seat), Err: err}
			}
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, fmt.Errorf("id tidak valid")
	}
	var b models.Booking
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings b WHERE b.id=? LIMIT 1`, id)
	if err := scanBooking(row, &b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r BookingRepository) GetDetailByID(id int64) (models.BookingDetail, error) {
	if id <= 0 {
		return models.BookingDetail{}, fmt.Errorf("id tidak valid")
	}
	var d models.BookingDetail
	row := r.db().QueryRow(`SELECT `+bookingDetailColumns+bookingDetailJoin+` WHERE b.id=? LIMIT 1`, id)
	if err := scanBookingDetail(row, &d); err != nil {
		return models.BookingDetail{}, err
	}
	return d, nil
}

// FindPaidByCode resolves a scanner code (qr_code or booking_reference) to
// exactly one paid booking with schedule/route/bus joined in. Unpaid matches
// are not returned. More than one match yields ErrAmbiguousCode.
func (r BookingRepository) FindPaidByCode(code string) (models.BookingDetail, error) {
	if code == "" {
		return models.BookingDetail{}, fmt.Errorf("kode kosong")
	}

	rows, err := r.db().Query(`
		SELECT `+bookingDetailColumns+bookingDetailJoin+`
		WHERE (b.qr_code = ? OR b.booking_reference = ?)
		  AND b.payment_status = 'paid'
		LIMIT 2`, code, code)
	if err != nil {
		return models.BookingDetail{}, err
	}
	defer rows.Close()

	var out []models.BookingDetail
	for rows.Next() {
		var d models.BookingDetail
		if err := scanBookingDetail(rows, &d); err != nil {
			return models.BookingDetail{}, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return models.BookingDetail{}, err
	}

	switch len(out) {
	case 0:
		return models.BookingDetail{}, sql.ErrNoRows
	case 1:
		return out[0], nil
	default:
		return models.BookingDetail{}, ErrAmbiguousCode
	}
}

func (r BookingRepository) ListByUser(userID int64) ([]models.BookingDetail, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user_id tidak valid")
	}
	return r.listDetails(`WHERE b.user_id=? ORDER BY b.created_at DESC`, userID)
}

func (r BookingRepository) ListAll() ([]models.BookingDetail, error) {
	return r.listDetails(`ORDER BY b.created_at DESC`)
}

func (r BookingRepository) listDetails(tail string, args ...any) ([]models.BookingDetail, error) {
	rows, err := r.db().Query(`SELECT `+bookingDetailColumns+bookingDetailJoin+` `+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingDetail{}
	for rows.Next() {
		var d models.BookingDetail
		if err := scanBookingDetail(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TakenSeats returns seat numbers already booked for a schedule on a date.
func (r BookingRepository) TakenSeats(scheduleID int64, travelDate string) ([]int, error) {
	rows, err := r.db().Query(`
		SELECT seat_number FROM booking_seats
		WHERE schedule_id=? AND travel_date=?
		ORDER BY seat_number`, scheduleID, travelDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkPaid flips payment_status to paid and assigns the QR payload. Only a
// pending booking transitions; an already-paid booking reports zero rows so
// the caller can treat the retry as idempotent.
func (r BookingRepository) MarkPaid(id int64, qrCode string) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`
		UPDATE bookings
		SET payment_status='paid', qr_code=?, updated_at=NOW()
		WHERE id=? AND payment_status='pending'`, qrCode, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MarkUsed applies the one allowed check-in transition. The WHERE clause is
// the compare-and-swap: of two concurrent check-ins at most one sees
// booking_status='confirmed', so the loser gets zero rows affected.
func (r BookingRepository) MarkUsed(id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`
		UPDATE bookings
		SET booking_status='completed', updated_at=NOW()
		WHERE id=? AND payment_status='paid' AND booking_status='confirmed'`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
