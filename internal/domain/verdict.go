package domain

import "time"

// Verdict is the outcome of validating a ticket code at a point in time.
type Verdict string

const (
	VerdictValid   Verdict = "valid"
	VerdictUsed    Verdict = "used"
	VerdictExpired Verdict = "expired"
	VerdictFuture  Verdict = "future"
	VerdictInvalid Verdict = "invalid"
)

// Boardable reports whether the ticket should be accepted by the scanner.
// Future-dated tickets display as acceptable but cannot be checked in yet.
func (v Verdict) Boardable() bool {
	return v == VerdictValid || v == VerdictFuture
}

// Message returns the operator-facing description for the verdict.
func (v Verdict) Message() string {
	switch v {
	case VerdictValid:
		return "Tiket valid untuk perjalanan hari ini"
	case VerdictUsed:
		return "Tiket sudah digunakan"
	case VerdictExpired:
		return "Tiket sudah kedaluwarsa"
	case VerdictFuture:
		return "Tiket berlaku untuk tanggal mendatang"
	default:
		return "Tiket tidak ditemukan atau tidak valid"
	}
}

// Decide derives a verdict from booking status and travel date. The current
// date is injected so the function stays deterministic. Travel dates are
// YYYY-MM-DD strings, so lexicographic comparison is date comparison.
func Decide(bookingStatus, travelDate string, today time.Time) Verdict {
	todayStr := today.Format("2006-01-02")

	switch {
	case bookingStatus == string(BookingCompleted):
		return VerdictUsed
	case travelDate == todayStr:
		return VerdictValid
	case travelDate < todayStr:
		return VerdictExpired
	default:
		return VerdictFuture
	}
}
