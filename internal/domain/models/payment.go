package models

// Payment records a (simulated) payment attempt for a booking.
type Payment struct {
	ID            int64  `json:"id"`
	BookingID     int64  `json:"booking_id"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id,omitempty"`
	PaymentStatus string `json:"payment_status"` // pending / completed / failed / refunded
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}
