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

// TicketInfo is the scanner-facing read model shown next to a verdict.
type TicketInfo struct {
	ID               int64    `json:"id"`
	BookingReference string   `json:"booking_reference"`
	TravelDate       string   `json:"travel_date"`
	PassengerNames   []string `json:"passenger_names"`
	SeatNumbers      []int    `json:"seat_numbers"`
	TotalAmount      int64    `json:"total_amount"`
	BookingStatus    string   `json:"booking_status"`
	Route            struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	} `json:"route"`
	Schedule struct {
		DepartureTime string `json:"departure_time"`
		ArrivalTime   string `json:"arrival_time"`
	} `json:"schedule"`
	Bus struct {
		BusNumber string `json:"bus_number"`
		BusType   string `json:"bus_type"`
	} `json:"bus"`
}

// ValidationResult is returned to the scanner UI. Ticket is nil when the
// code resolved to nothing.
type ValidationResult struct {
	Valid   bool           `json:"valid"`
	Status  domain.Verdict `json:"status"`
	Message string         `json:"message"`
	Ticket  *TicketInfo    `json:"ticket,omitempty"`
}

// CheckinResult reports the outcome of marking a ticket as used.
type CheckinResult struct {
	ID               int64  `json:"id"`
	BookingReference string `json:"booking_reference"`
	BookingStatus    string `json:"booking_status"`
}

// TicketService resolves scanner codes and applies the check-in transition.
type TicketService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
	// Now is injected for deterministic tests; defaults to time.Now.
	Now func() time.Time
	// Optional overrides for tests, same pattern as DocsService.Loader.
	FindByCode func(string) (models.BookingDetail, error)
	Mark       func(int64) (bool, error)
	FetchByID  func(int64) (models.Booking, error)
}

func (s TicketService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s TicketService) findByCode(code string) (models.BookingDetail, error) {
	if s.FindByCode != nil {
		return s.FindByCode(code)
	}
	return s.BookingRepo.FindPaidByCode(code)
}

func (s TicketService) markUsed(id int64) (bool, error) {
	if s.Mark != nil {
		return s.Mark(id)
	}
	return s.BookingRepo.MarkUsed(id)
}

func (s TicketService) fetchByID(id int64) (models.Booking, error) {
	if s.FetchByID != nil {
		return s.FetchByID(id)
	}
	return s.BookingRepo.GetByID(id)
}

// Validate looks up a paid booking by QR payload or booking reference and
// derives a verdict for the current date. A code that matches nothing (or
// only unpaid bookings) is a business-level "invalid", not a system error.
func (s TicketService) Validate(code string) (ValidationResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return ValidationResult{}, domain.ValidationError{Field: "code", Msg: "kode tidak boleh kosong"}
	}

	detail, err := s.findByCode(code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.LogEvent(s.RequestID, "ticket", "validate", "kode tidak ditemukan")
			return ValidationResult{
				Valid:   false,
				Status:  domain.VerdictInvalid,
				Message: domain.VerdictInvalid.Message(),
			}, nil
		}
		if errors.Is(err, repositories.ErrAmbiguousCode) {
			utils.LogEvent(s.RequestID, "ticket", "validate", "kode ambigu, ditolak")
			return ValidationResult{}, domain.InternalError{Msg: "kode tiket ambigu", Err: err}
		}
		return ValidationResult{}, domain.InternalError{Err: err}
	}

	verdict := domain.Decide(detail.BookingStatus, detail.TravelDate, s.now())
	utils.LogEvent(s.RequestID, "ticket", "validate",
		fmt.Sprintf("booking_id=%d verdict=%s", detail.ID, verdict))

	return ValidationResult{
		Valid:   verdict.Boardable(),
		Status:  verdict,
		Message: verdict.Message(),
		Ticket:  ticketInfoFromDetail(detail),
	}, nil
}

// MarkUsed transitions booking_status confirmed -> completed. The update is
// conditional, so a retried or concurrent check-in cannot complete twice:
// the second caller gets a ConflictError and no state change.
func (s TicketService) MarkUsed(ticketID int64) (CheckinResult, error) {
	if ticketID <= 0 {
		return CheckinResult{}, domain.ValidationError{Field: "ticket_id", Msg: "id tidak valid"}
	}

	ok, err := s.markUsed(ticketID)
	if err != nil {
		return CheckinResult{}, domain.InternalError{Err: err}
	}
	if !ok {
		// zero rows: either the booking doesn't exist or it isn't in a
		// checkable state; re-read to tell the operator which.
		b, err := s.fetchByID(ticketID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return CheckinResult{}, domain.NotFoundError{Resource: "tiket"}
			}
			return CheckinResult{}, domain.InternalError{Err: err}
		}
		switch {
		case b.BookingStatus == string(domain.BookingCompleted):
			return CheckinResult{}, domain.ConflictError{Resource: "tiket", Msg: "tiket sudah digunakan"}
		case b.PaymentStatus != string(domain.PaymentPaid):
			return CheckinResult{}, domain.ConflictError{Resource: "tiket", Msg: "tiket belum dibayar"}
		default:
			return CheckinResult{}, domain.ConflictError{Resource: "tiket", Msg: "status tiket tidak memungkinkan check-in"}
		}
	}

	b, err := s.fetchByID(ticketID)
	if err != nil {
		return CheckinResult{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "ticket", "mark_used",
		fmt.Sprintf("booking_id=%d reference=%s", b.ID, b.BookingReference))

	return CheckinResult{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		BookingStatus:    b.BookingStatus,
	}, nil
}

func ticketInfoFromDetail(d models.BookingDetail) *TicketInfo {
	t := &TicketInfo{
		ID:               d.ID,
		BookingReference: d.BookingReference,
		TravelDate:       d.TravelDate,
		PassengerNames:   d.PassengerNames,
		SeatNumbers:      d.SeatNumbers,
		TotalAmount:      d.TotalAmount,
		BookingStatus:    d.BookingStatus,
	}
	t.Route.Origin = d.Route.Origin
	t.Route.Destination = d.Route.Destination
	t.Schedule.DepartureTime = d.Schedule.DepartureTime
	t.Schedule.ArrivalTime = d.Schedule.ArrivalTime
	t.Bus.BusNumber = d.Bus.BusNumber
	t.Bus.BusType = d.Bus.BusType
	return t
}
