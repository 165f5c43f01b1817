package services

import (
	"database/sql"
	"errors"
	"fmt"

	"tiketbus/internal/domain"
	"tiketbus/internal/domain/models"
	"tiketbus/internal/repositories"
	"tiketbus/internal/utils"
)

// PaymentOutcome selects the simulated provider result.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// PaymentResult is returned to the payment page after simulation.
type PaymentResult struct {
	BookingID     int64  `json:"booking_id"`
	PaymentStatus string `json:"payment_status"`
	TransactionID string `json:"transaction_id,omitempty"`
	QRCode        string `json:"qr_code,omitempty"`
	AlreadyPaid   bool   `json:"already_paid,omitempty"`
}

// PaymentService simulates the payment provider: it records a payment row
// and flips the booking to paid, assigning the QR payload. Real provider
// integration stays out of scope; the webhook entry point keeps the same
// transition available for an external signal.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
	// Optional overrides for tests.
	FetchBooking func(int64) (models.Booking, error)
	InsertPay    func(models.Payment) (int64, error)
	SetPaid      func(int64, string) (bool, error)
	FetchPayment func(int64) (models.Payment, error)
	SetPayStatus func(bookingID int64, status, transactionID string) error
}

func (s PaymentService) fetchBooking(id int64) (models.Booking, error) {
	if s.FetchBooking != nil {
		return s.FetchBooking(id)
	}
	return s.BookingRepo.GetByID(id)
}

func (s PaymentService) insertPay(p models.Payment) (int64, error) {
	if s.InsertPay != nil {
		return s.InsertPay(p)
	}
	return s.PaymentRepo.Create(p)
}

func (s PaymentService) setPaid(id int64, qr string) (bool, error) {
	if s.SetPaid != nil {
		return s.SetPaid(id, qr)
	}
	return s.BookingRepo.MarkPaid(id, qr)
}

func (s PaymentService) fetchPayment(bookingID int64) (models.Payment, error) {
	if s.FetchPayment != nil {
		return s.FetchPayment(bookingID)
	}
	return s.PaymentRepo.GetByBookingID(bookingID)
}

func (s PaymentService) setPayStatus(bookingID int64, status, transactionID string) error {
	if s.SetPayStatus != nil {
		return s.SetPayStatus(bookingID, status, transactionID)
	}
	return s.PaymentRepo.UpdateStatusByBooking(bookingID, status, transactionID)
}

// Simulate processes a payment attempt for the caller's booking. Repeating
// the call on an already-paid booking returns the current state instead of
// failing, so a retry after a network blip is harmless.
func (s PaymentService) Simulate(bookingID, userID int64, method, outcome string) (PaymentResult, error) {
	if bookingID <= 0 {
		return PaymentResult{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	if method == "" {
		method = "card"
	}
	if outcome == "" {
		outcome = OutcomeSuccess
	}

	booking, err := s.fetchBooking(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PaymentResult{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return PaymentResult{}, domain.InternalError{Err: err}
	}
	if userID > 0 && booking.UserID != userID {
		return PaymentResult{}, domain.NotFoundError{Resource: "booking"}
	}

	if booking.PaymentStatus == string(domain.PaymentPaid) {
		return PaymentResult{
			BookingID:     booking.ID,
			PaymentStatus: booking.PaymentStatus,
			QRCode:        booking.QRCode,
			AlreadyPaid:   true,
		}, nil
	}
	if booking.BookingStatus == string(domain.BookingCancelled) {
		return PaymentResult{}, domain.ConflictError{Resource: "booking", Msg: "booking sudah dibatalkan"}
	}

	if outcome != OutcomeSuccess {
		if _, err := s.insertPay(models.Payment{
			BookingID:     booking.ID,
			Amount:        booking.TotalAmount,
			PaymentMethod: method,
			PaymentStatus: "failed",
		}); err != nil {
			return PaymentResult{}, domain.InternalError{Err: err}
		}
		utils.LogEvent(s.RequestID, "payment", "simulate",
			fmt.Sprintf("booking_id=%d outcome=failed", booking.ID))
		// booking stays pending so the customer can retry
		return PaymentResult{BookingID: booking.ID, PaymentStatus: string(domain.PaymentPending)}, nil
	}

	txnID := utils.NewTransactionID()
	if _, err := s.insertPay(models.Payment{
		BookingID:     booking.ID,
		Amount:        booking.TotalAmount,
		PaymentMethod: method,
		TransactionID: txnID,
		PaymentStatus: "completed",
	}); err != nil {
		return PaymentResult{}, domain.InternalError{Err: err}
	}

	qr := utils.QRPayload(booking.BookingReference)
	ok, err := s.setPaid(booking.ID, qr)
	if err != nil {
		return PaymentResult{}, domain.InternalError{Err: err}
	}
	if !ok {
		// lost a race with another payment attempt; report current state
		current, err := s.fetchBooking(booking.ID)
		if err != nil {
			return PaymentResult{}, domain.InternalError{Err: err}
		}
		return PaymentResult{
			BookingID:     current.ID,
			PaymentStatus: current.PaymentStatus,
			QRCode:        current.QRCode,
			AlreadyPaid:   current.PaymentStatus == string(domain.PaymentPaid),
		}, nil
	}

	utils.LogEvent(s.RequestID, "payment", "simulate",
		fmt.Sprintf("booking_id=%d txn=%s amount=%s", booking.ID, txnID, utils.FormatRupiah(booking.TotalAmount)))

	return PaymentResult{
		BookingID:     booking.ID,
		PaymentStatus: string(domain.PaymentPaid),
		TransactionID: txnID,
		QRCode:        qr,
	}, nil
}

// HandleWebhook applies a provider-style notification. Success marks the
// booking paid (same QR assignment as Simulate); anything else records the
// failed payment attempt.
func (s PaymentService) HandleWebhook(bookingID int64, transactionID, status string) error {
	if bookingID <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}

	booking, err := s.fetchBooking(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	recordStatus := "failed"
	if status == OutcomeSuccess {
		recordStatus = "completed"
		// a failed notification leaves the booking pending for retry,
		// only success flips it
		if booking.PaymentStatus != string(domain.PaymentPaid) {
			if _, err := s.setPaid(booking.ID, utils.QRPayload(booking.BookingReference)); err != nil {
				return domain.InternalError{Err: err}
			}
		}
	}

	last, err := s.fetchPayment(booking.ID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if last.ID == 0 {
		// webhook arrived before any simulate call: insert the row so
		// provider-only flows still leave an audit trail
		if _, err := s.insertPay(models.Payment{
			BookingID:     booking.ID,
			Amount:        booking.TotalAmount,
			PaymentMethod: "webhook",
			TransactionID: transactionID,
			PaymentStatus: recordStatus,
		}); err != nil {
			return domain.InternalError{Err: err}
		}
	} else if err := s.setPayStatus(booking.ID, recordStatus, transactionID); err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "webhook",
		fmt.Sprintf("booking_id=%d status=%s txn=%s", booking.ID, status, transactionID))
	return nil
}
