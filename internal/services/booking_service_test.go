package services

import (
	"testing"
	"time"

	"tiketbus/internal/domain"
	"tiketbus/internal/domain/models"
)

// 2026-03-15 is a Sunday.
var bookingDay = time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local)

func activeSchedule() models.ScheduleDetail {
	sd := models.ScheduleDetail{}
	sd.ID = 5
	sd.DepartureTime = "08:00"
	sd.ArrivalTime = "11:00"
	sd.DaysOfWeek = []string{"sunday", "monday"}
	sd.Status = "active"
	sd.Route.BasePrice = 125000
	sd.Bus.Capacity = 40
	return sd
}

func validInput() models.BookingInput {
	return models.BookingInput{
		ScheduleID:      5,
		TravelDate:      "2026-03-16",
		SeatNumbers:     []int{3, 4},
		PassengerNames:  []string{"Budi", "Sari"},
		PassengerPhones: []string{"0811", "0812"},
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	var inserted models.Booking
	svc := BookingService{
		Now:           func() time.Time { return bookingDay },
		FetchSchedule: func(int64) (models.ScheduleDetail, error) { return activeSchedule(), nil },
		Insert: func(b models.Booking) (int64, error) {
			inserted = b
			return 99, nil
		},
	}

	booking, err := svc.Create(7, validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if booking.ID != 99 {
		t.Fatalf("insert id not propagated, got %d", booking.ID)
	}
	if booking.TotalAmount != 250000 {
		t.Fatalf("total should be base price x seats, got %d", booking.TotalAmount)
	}
	if booking.PaymentStatus != string(domain.PaymentPending) || booking.BookingStatus != string(domain.BookingConfirmed) {
		t.Fatalf("new booking has wrong statuses: %s/%s", booking.PaymentStatus, booking.BookingStatus)
	}
	if booking.QRCode != "" {
		t.Fatalf("qr_code must not exist before payment")
	}
	if len(booking.BookingReference) != len("WFB20260315123") {
		t.Fatalf("unexpected reference format: %q", booking.BookingReference)
	}
	if inserted.UserID != 7 {
		t.Fatalf("user id missing on inserted row: %+v", inserted)
	}
}

func TestCreateBookingValidationFailures(t *testing.T) {
	svc := BookingService{
		Now:           func() time.Time { return bookingDay },
		FetchSchedule: func(int64) (models.ScheduleDetail, error) { return activeSchedule(), nil },
		Insert:        func(models.Booking) (int64, error) { t.Fatalf("insert must not run"); return 0, nil },
	}

	cases := map[string]func(*models.BookingInput){
		"past date":          func(in *models.BookingInput) { in.TravelDate = "2026-03-14" },
		"bad date format":    func(in *models.BookingInput) { in.TravelDate = "16-03-2026" },
		"no seats":           func(in *models.BookingInput) { in.SeatNumbers = nil },
		"name count":         func(in *models.BookingInput) { in.PassengerNames = []string{"Budi"} },
		"blank phone":        func(in *models.BookingInput) { in.PassengerPhones = []string{"0811", " "} },
		"duplicate seat":     func(in *models.BookingInput) { in.SeatNumbers = []int{3, 3}; in.PassengerNames = []string{"A", "B"}; in.PassengerPhones = []string{"1", "2"} },
		"seat zero":          func(in *models.BookingInput) { in.SeatNumbers = []int{0, 4} },
		"seat over capacity": func(in *models.BookingInput) { in.SeatNumbers = []int{3, 41} },
		"day not served":     func(in *models.BookingInput) { in.TravelDate = "2026-03-17" }, // tuesday
	}

	for name, mutate := range cases {
		in := validInput()
		mutate(&in)
		if _, err := svc.Create(7, in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestCreateBookingTodayIsAllowed(t *testing.T) {
	svc := BookingService{
		Now:           func() time.Time { return bookingDay },
		FetchSchedule: func(int64) (models.ScheduleDetail, error) { return activeSchedule(), nil },
		Insert:        func(models.Booking) (int64, error) { return 1, nil },
	}

	in := validInput()
	in.TravelDate = "2026-03-15" // sunday, served
	if _, err := svc.Create(7, in); err != nil {
		t.Fatalf("same-day booking should be allowed: %v", err)
	}
}

func TestCreateBookingInactiveSchedule(t *testing.T) {
	sched := activeSchedule()
	sched.Status = "inactive"
	svc := BookingService{
		Now:           func() time.Time { return bookingDay },
		FetchSchedule: func(int64) (models.ScheduleDetail, error) { return sched, nil },
	}

	if _, err := svc.Create(7, validInput()); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for inactive schedule, got %v", err)
	}
}

func TestCreateBookingSeatConflictNotRetried(t *testing.T) {
	attempts := 0
	svc := BookingService{
		Now:           func() time.Time { return bookingDay },
		FetchSchedule: func(int64) (models.ScheduleDetail, error) { return activeSchedule(), nil },
		Insert: func(models.Booking) (int64, error) {
			attempts++
			return 0, domain.ConflictError{Resource: "kursi", Msg: "kursi 3 sudah dipesan"}
		},
	}

	_, err := svc.Create(7, validInput())
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("seat conflict must not be retried, got %d attempts", attempts)
	}
}

func TestCreateBookingReferenceCollisionRetries(t *testing.T) {
	attempts := 0
	refs := map[string]bool{}
	svc := BookingService{
		Now:           func() time.Time { return bookingDay },
		FetchSchedule: func(int64) (models.ScheduleDetail, error) { return activeSchedule(), nil },
		Insert: func(b models.Booking) (int64, error) {
			attempts++
			refs[b.BookingReference] = true
			if attempts < 3 {
				return 0, domain.InternalError{Msg: "duplicate reference"}
			}
			return 5, nil
		},
	}

	booking, err := svc.Create(7, validInput())
	if err != nil {
		t.Fatalf("Create should succeed after retries: %v", err)
	}
	if booking.ID != 5 || attempts != 3 {
		t.Fatalf("expected success on third attempt, got id=%d attempts=%d", booking.ID, attempts)
	}
}
