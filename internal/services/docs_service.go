package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"tiketbus/internal/domain"
	"tiketbus/internal/domain/models"
	"tiketbus/internal/repositories"
	"tiketbus/internal/utils"
)

// DocsService renders the e-ticket PDF for a paid booking. The embedded QR
// image encodes the booking's qr_code payload, the same string the scanner
// accepts.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
	Loader      func(int64) (models.BookingDetail, error)
}

func (s DocsService) load(bookingID int64) (models.BookingDetail, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	return s.BookingRepo.GetDetailByID(bookingID)
}

func (s DocsService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	d, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	if d.PaymentStatus != string(domain.PaymentPaid) || d.QRCode == "" {
		return nil, "", domain.ConflictError{Resource: "tiket", Msg: "booking belum dibayar"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(d)
}

func buildETicketPDF(d models.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET BUS")
	pdf.Ln(12)

	seats := make([]string, 0, len(d.SeatNumbers))
	for _, n := range d.SeatNumbers {
		seats = append(seats, fmt.Sprintf("%d", n))
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Kode Booking   : %s", d.BookingReference),
		fmt.Sprintf("Rute           : %s -> %s", safe(d.Route.Origin, "-"), safe(d.Route.Destination, "-")),
		fmt.Sprintf("Tanggal        : %s", safe(d.TravelDate, "-")),
		fmt.Sprintf("Berangkat/Tiba : %s - %s", safe(d.Schedule.DepartureTime, "-"), safe(d.Schedule.ArrivalTime, "-")),
		fmt.Sprintf("Bus            : %s (%s)", safe(d.Bus.BusNumber, "-"), safe(d.Bus.BusType, "-")),
		fmt.Sprintf("Kursi          : %s", strings.Join(seats, ", ")),
		fmt.Sprintf("Penumpang      : %s", strings.Join(d.PassengerNames, ", ")),
		fmt.Sprintf("Total          : %s", utils.FormatRupiah(d.TotalAmount)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	// QR code encodes the same payload the scanner resolves
	png, err := qrcode.Encode(d.QRCode, qrcode.Medium, 256)
	if err != nil {
		return nil, "", err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(png))
	pdf.Ln(4)
	pdf.ImageOptions("ticket-qr", 20, pdf.GetY(), 45, 45, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + 50)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Tunjukkan QR code ini kepada petugas saat naik bus. Satu QR berlaku untuk seluruh kursi pada booking ini.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", d.BookingReference)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
