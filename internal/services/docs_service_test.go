package services

import (
	"testing"

	"tiketbus/internal/domain"
	"tiketbus/internal/domain/models"
)

func paidDetail() models.BookingDetail {
	d := models.BookingDetail{}
	d.ID = 10
	d.BookingReference = "WFB20260315042"
	d.TravelDate = "2026-03-16"
	d.PassengerNames = []string{"Budi", "Sari"}
	d.SeatNumbers = []int{3, 4}
	d.TotalAmount = 250000
	d.PaymentStatus = string(domain.PaymentPaid)
	d.BookingStatus = string(domain.BookingConfirmed)
	d.QRCode = "WFB-WFB20260315042"
	d.Route.Origin = "Jakarta"
	d.Route.Destination = "Bandung"
	d.Schedule.DepartureTime = "08:00"
	d.Schedule.ArrivalTime = "11:00"
	d.Bus.BusNumber = "B-1234-XY"
	d.Bus.BusType = "executive"
	return d
}

func TestGenerateETicket(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (models.BookingDetail, error) {
			if id != 10 {
				t.Fatalf("unexpected booking id: %d", id)
			}
			return paidDetail(), nil
		},
	}

	pdf, filename, err := svc.GenerateETicket(10)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateETicket returned empty data")
	}
	if filename != "ETICKET_WFB20260315042.pdf" {
		t.Fatalf("unexpected filename: %q", filename)
	}
}

func TestGenerateETicketUnpaidBooking(t *testing.T) {
	d := paidDetail()
	d.PaymentStatus = string(domain.PaymentPending)
	d.QRCode = ""

	svc := DocsService{
		Loader: func(int64) (models.BookingDetail, error) { return d, nil },
	}

	if _, _, err := svc.GenerateETicket(10); !domain.IsConflict(err) {
		t.Fatalf("unpaid booking should be a conflict, got %v", err)
	}
}
