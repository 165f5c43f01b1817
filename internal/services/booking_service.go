package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tiketbus/internal/domain"
	"tiketbus/internal/domain/models"
	"tiketbus/internal/repositories"
	"tiketbus/internal/utils"
)

// BookingService owns booking creation and seat availability.
type BookingService struct {
	BookingRepo  repositories.BookingRepository
	ScheduleRepo repositories.ScheduleRepository
	RequestID    string
	Now          func() time.Time
	// Optional overrides for tests.
	FetchSchedule func(int64) (models.ScheduleDetail, error)
	Insert        func(models.Booking) (int64, error)
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) fetchSchedule(id int64) (models.ScheduleDetail, error) {
	if s.FetchSchedule != nil {
		return s.FetchSchedule(id)
	}
	return s.ScheduleRepo.GetDetailByID(id)
}

func (s BookingService) insert(b models.Booking) (int64, error) {
	if s.Insert != nil {
		return s.Insert(b)
	}
	return s.BookingRepo.Create(b)
}

// Create validates the payload and inserts the booking with
// payment_status=pending, booking_status=confirmed, no qr_code yet.
func (s BookingService) Create(userID int64, in models.BookingInput) (models.Booking, error) {
	if userID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "user_id", Msg: "id tidak valid"}
	}
	if in.ScheduleID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "schedule_id", Msg: "id tidak valid"}
	}

	travelDate, err := utils.ParseDate(in.TravelDate)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "travel_date", Msg: "format tanggal harus YYYY-MM-DD", Err: err}
	}
	today := s.now()
	if utils.FormatDate(travelDate) < utils.FormatDate(today) {
		return models.Booking{}, domain.ValidationError{Field: "travel_date", Msg: "tanggal sudah lewat"}
	}

	if len(in.SeatNumbers) == 0 {
		return models.Booking{}, domain.ValidationError{Field: "seat_numbers", Msg: "pilih minimal satu kursi"}
	}
	if len(in.PassengerNames) != len(in.SeatNumbers) || len(in.PassengerPhones) != len(in.SeatNumbers) {
		return models.Booking{}, domain.ValidationError{Field: "passengers", Msg: "jumlah kursi, nama, dan telepon harus sama"}
	}
	for i, name := range in.PassengerNames {
		if strings.TrimSpace(name) == "" || strings.TrimSpace(in.PassengerPhones[i]) == "" {
			return models.Booking{}, domain.ValidationError{Field: "passengers", Msg: "nama dan telepon penumpang wajib diisi"}
		}
	}
	seen := map[int]bool{}
	for _, seat := range in.SeatNumbers {
		if seat <= 0 {
			return models.Booking{}, domain.ValidationError{Field: "seat_numbers", Msg: "nomor kursi tidak valid"}
		}
		if seen[seat] {
			return models.Booking{}, domain.ValidationError{Field: "seat_numbers", Msg: fmt.Sprintf("kursi %d dipilih dua kali", seat)}
		}
		seen[seat] = true
	}

	sched, err := s.fetchSchedule(in.ScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "jadwal", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if sched.Status != "active" {
		return models.Booking{}, domain.ValidationError{Field: "schedule_id", Msg: "jadwal tidak aktif"}
	}
	if !sched.ServesDay(utils.DayName(travelDate)) {
		return models.Booking{}, domain.ValidationError{Field: "travel_date", Msg: "jadwal tidak beroperasi pada hari tersebut"}
	}
	for _, seat := range in.SeatNumbers {
		if seat > sched.Bus.Capacity {
			return models.Booking{}, domain.ValidationError{Field: "seat_numbers", Msg: fmt.Sprintf("kursi %d melebihi kapasitas bus (%d)", seat, sched.Bus.Capacity)}
		}
	}

	booking := models.Booking{
		UserID:          userID,
		ScheduleID:      in.ScheduleID,
		TravelDate:      utils.FormatDate(travelDate),
		SeatNumbers:     in.SeatNumbers,
		PassengerNames:  in.PassengerNames,
		PassengerPhones: in.PassengerPhones,
		TotalAmount:     sched.Route.BasePrice * int64(len(in.SeatNumbers)),
		PaymentStatus:   string(domain.PaymentPending),
		BookingStatus:   string(domain.BookingConfirmed),
	}

	// booking_reference has a unique key; retry a couple of times on the
	// unlikely collision before giving up.
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		booking.BookingReference = utils.NewBookingReference(s.now())
		id, err := s.insert(booking)
		if err == nil {
			booking.ID = id
			utils.LogEvent(s.RequestID, "booking", "create",
				fmt.Sprintf("booking_id=%d reference=%s seats=%d", id, booking.BookingReference, len(booking.SeatNumbers)))
			return booking, nil
		}
		var conflict domain.ConflictError
		if errors.As(err, &conflict) {
			// seat already sold: no point retrying with a new reference
			return models.Booking{}, conflict
		}
		lastErr = err
	}
	return models.Booking{}, domain.InternalError{Msg: "gagal menyimpan booking", Err: lastErr}
}

// SeatMap combines bus capacity with seats already sold for the travel date.
// Redis holds are layered on top by the handler when available.
type SeatMap struct {
	ScheduleID int64  `json:"schedule_id"`
	TravelDate string `json:"travel_date"`
	Capacity   int    `json:"capacity"`
	Taken      []int  `json:"taken"`
	Held       []int  `json:"held"`
}

func (s BookingService) Seats(scheduleID int64, travelDate string) (SeatMap, error) {
	if scheduleID <= 0 {
		return SeatMap{}, domain.ValidationError{Field: "schedule_id", Msg: "id tidak valid"}
	}
	if _, err := utils.ParseDate(travelDate); err != nil {
		return SeatMap{}, domain.ValidationError{Field: "date", Msg: "format tanggal harus YYYY-MM-DD", Err: err}
	}

	sched, err := s.fetchSchedule(scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SeatMap{}, domain.NotFoundError{Resource: "jadwal", Err: err}
		}
		return SeatMap{}, domain.InternalError{Err: err}
	}

	taken, err := s.BookingRepo.TakenSeats(scheduleID, travelDate)
	if err != nil {
		return SeatMap{}, domain.InternalError{Err: err}
	}

	return SeatMap{
		ScheduleID: scheduleID,
		TravelDate: travelDate,
		Capacity:   sched.Bus.Capacity,
		Taken:      taken,
		Held:       []int{},
	}, nil
}
