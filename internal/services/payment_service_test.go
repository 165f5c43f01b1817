package services

import (
	"database/sql"
	"strings"
	"testing"

	"tiketbus/internal/domain"
	"tiketbus/internal/domain/models"
)

func pendingBooking() models.Booking {
	return models.Booking{
		ID:               10,
		UserID:           7,
		BookingReference: "WFB20260315042",
		TotalAmount:      250000,
		PaymentStatus:    string(domain.PaymentPending),
		BookingStatus:    string(domain.BookingConfirmed),
	}
}

func TestSimulatePaymentSuccess(t *testing.T) {
	var paidQR string
	var recorded models.Payment
	svc := PaymentService{
		FetchBooking: func(int64) (models.Booking, error) { return pendingBooking(), nil },
		InsertPay: func(p models.Payment) (int64, error) {
			recorded = p
			return 1, nil
		},
		SetPaid: func(id int64, qr string) (bool, error) {
			paidQR = qr
			return true, nil
		},
	}

	res, err := svc.Simulate(10, 7, "card", OutcomeSuccess)
	if err != nil {
		t.Fatalf("Simulate returned error: %v", err)
	}
	if res.PaymentStatus != string(domain.PaymentPaid) {
		t.Fatalf("expected paid, got %s", res.PaymentStatus)
	}
	if res.QRCode != "WFB-WFB20260315042" || paidQR != res.QRCode {
		t.Fatalf("qr payload mismatch: result=%q stored=%q", res.QRCode, paidQR)
	}
	if !strings.HasPrefix(res.TransactionID, "TXN-") {
		t.Fatalf("unexpected transaction id: %q", res.TransactionID)
	}
	if recorded.PaymentStatus != "completed" || recorded.Amount != 250000 {
		t.Fatalf("payment row wrong: %+v", recorded)
	}
}

func TestSimulatePaymentFailedOutcomeKeepsBookingPending(t *testing.T) {
	var recorded models.Payment
	svc := PaymentService{
		FetchBooking: func(int64) (models.Booking, error) { return pendingBooking(), nil },
		InsertPay: func(p models.Payment) (int64, error) {
			recorded = p
			return 1, nil
		},
		SetPaid: func(int64, string) (bool, error) {
			t.Fatalf("failed outcome must not mark booking paid")
			return false, nil
		},
	}

	res, err := svc.Simulate(10, 7, "card", OutcomeFailed)
	if err != nil {
		t.Fatalf("Simulate returned error: %v", err)
	}
	if res.PaymentStatus != string(domain.PaymentPending) {
		t.Fatalf("booking should stay pending after failed attempt, got %s", res.PaymentStatus)
	}
	if recorded.PaymentStatus != "failed" {
		t.Fatalf("failed attempt should be recorded as failed, got %s", recorded.PaymentStatus)
	}
}

func TestSimulatePaymentAlreadyPaidIsIdempotent(t *testing.T) {
	b := pendingBooking()
	b.PaymentStatus = string(domain.PaymentPaid)
	b.QRCode = "WFB-WFB20260315042"

	svc := PaymentService{
		FetchBooking: func(int64) (models.Booking, error) { return b, nil },
		InsertPay: func(models.Payment) (int64, error) {
			t.Fatalf("no new payment row for an already paid booking")
			return 0, nil
		},
	}

	res, err := svc.Simulate(10, 7, "card", OutcomeSuccess)
	if err != nil {
		t.Fatalf("retry on paid booking must not fail: %v", err)
	}
	if !res.AlreadyPaid || res.QRCode != b.QRCode {
		t.Fatalf("expected idempotent already-paid result, got %+v", res)
	}
}

func TestSimulatePaymentOtherUsersBookingHidden(t *testing.T) {
	svc := PaymentService{
		FetchBooking: func(int64) (models.Booking, error) { return pendingBooking(), nil },
	}

	_, err := svc.Simulate(10, 99, "card", OutcomeSuccess)
	if !domain.IsNotFound(err) {
		t.Fatalf("foreign booking should look like not found, got %v", err)
	}
}

func TestSimulatePaymentCancelledBookingConflicts(t *testing.T) {
	b := pendingBooking()
	b.BookingStatus = string(domain.BookingCancelled)
	svc := PaymentService{
		FetchBooking: func(int64) (models.Booking, error) { return b, nil },
	}

	_, err := svc.Simulate(10, 7, "card", OutcomeSuccess)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for cancelled booking, got %v", err)
	}
}

func TestSimulatePaymentRaceLoserReportsCurrentState(t *testing.T) {
	calls := 0
	svc := PaymentService{
		FetchBooking: func(int64) (models.Booking, error) {
			calls++
			b := pendingBooking()
			if calls > 1 {
				b.PaymentStatus = string(domain.PaymentPaid)
				b.QRCode = "WFB-WFB20260315042"
			}
			return b, nil
		},
		InsertPay: func(models.Payment) (int64, error) { return 1, nil },
		SetPaid:   func(int64, string) (bool, error) { return false, nil },
	}

	res, err := svc.Simulate(10, 7, "card", OutcomeSuccess)
	if err != nil {
		t.Fatalf("race loser should not error: %v", err)
	}
	if !res.AlreadyPaid || res.PaymentStatus != string(domain.PaymentPaid) {
		t.Fatalf("expected current paid state, got %+v", res)
	}
}

func TestHandleWebhookSuccessUpdatesExistingPayment(t *testing.T) {
	var gotStatus, gotTxn, paidQR string
	svc := PaymentService{
		FetchBooking: func(int64) (models.Booking, error) { return pendingBooking(), nil },
		FetchPayment: func(int64) (models.Payment, error) {
			return models.Payment{ID: 1, BookingID: 10, PaymentStatus: "pending"}, nil
		},
		SetPaid: func(id int64, qr string) (bool, error) {
			paidQR = qr
			return true, nil
		},
		SetPayStatus: func(bookingID int64, status, transactionID string) error {
			gotStatus, gotTxn = status, transactionID
			return nil
		},
		InsertPay: func(models.Payment) (int64, error) {
			t.Fatalf("existing payment row must be updated, not duplicated")
			return 0, nil
		},
	}

	if err := svc.HandleWebhook(10, "TXN-abc", OutcomeSuccess); err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}
	if paidQR != "WFB-WFB20260315042" {
		t.Fatalf("booking not marked paid with qr payload, got %q", paidQR)
	}
	if gotStatus != "completed" || gotTxn != "TXN-abc" {
		t.Fatalf("payment row not updated: status=%q txn=%q", gotStatus, gotTxn)
	}
}

func TestHandleWebhookWithoutPriorPaymentInsertsRow(t *testing.T) {
	var recorded models.Payment
	svc := PaymentService{
		FetchBooking: func(int64) (models.Booking, error) { return pendingBooking(), nil },
		FetchPayment: func(int64) (models.Payment, error) { return models.Payment{}, nil },
		SetPaid:      func(int64, string) (bool, error) { return true, nil },
		InsertPay: func(p models.Payment) (int64, error) {
			recorded = p
			return 2, nil
		},
		SetPayStatus: func(int64, string, string) error {
			t.Fatalf("no row exists; webhook must insert, not update")
			return nil
		},
	}

	if err := svc.HandleWebhook(10, "TXN-xyz", OutcomeSuccess); err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}
	if recorded.PaymentStatus != "completed" || recorded.TransactionID != "TXN-xyz" {
		t.Fatalf("inserted row wrong: %+v", recorded)
	}
	if recorded.Amount != 250000 || recorded.PaymentMethod != "webhook" {
		t.Fatalf("inserted row should carry booking amount and webhook method: %+v", recorded)
	}
}

func TestHandleWebhookFailureLeavesBookingPending(t *testing.T) {
	var recorded models.Payment
	svc := PaymentService{
		FetchBooking: func(int64) (models.Booking, error) { return pendingBooking(), nil },
		FetchPayment: func(int64) (models.Payment, error) { return models.Payment{}, nil },
		SetPaid: func(int64, string) (bool, error) {
			t.Fatalf("failed webhook must not mark booking paid")
			return false, nil
		},
		InsertPay: func(p models.Payment) (int64, error) {
			recorded = p
			return 2, nil
		},
	}

	if err := svc.HandleWebhook(10, "TXN-bad", "failed"); err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}
	if recorded.PaymentStatus != "failed" {
		t.Fatalf("failed attempt should be recorded as failed, got %q", recorded.PaymentStatus)
	}
}

func TestSimulatePaymentUnknownBooking(t *testing.T) {
	svc := PaymentService{
		FetchBooking: func(int64) (models.Booking, error) { return models.Booking{}, sql.ErrNoRows },
	}
	if _, err := svc.Simulate(123, 7, "card", OutcomeSuccess); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
