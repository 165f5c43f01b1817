package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// referencePrefix is printed on every ticket; kept short so it fits QR
// payloads and phone screens.
const referencePrefix = "WFB"

// NewBookingReference builds a human-readable reference like WFB20250610042.
// Uniqueness is enforced by the bookings.booking_reference unique key; on a
// rare collision the insert fails and the caller retries with a fresh one.
func NewBookingReference(now time.Time) string {
	return fmt.Sprintf("%s%s%03d", referencePrefix, now.Format("20060102"), rand.Intn(1000))
}

// QRPayload derives the string encoded into the ticket QR code. Assigned
// only once payment succeeds.
func QRPayload(bookingReference string) string {
	return referencePrefix + "-" + bookingReference
}

// NewTransactionID builds a provider-style transaction id for simulated
// payments.
func NewTransactionID() string {
	return "TXN-" + uuid.NewString()
}
