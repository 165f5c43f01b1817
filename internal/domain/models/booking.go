package models

// Booking is the only entity with interesting state: two independent status
// fields plus a qr_code that exists only once payment succeeds.
type Booking struct {
	ID               int64    `json:"id"`
	UserID           int64    `json:"user_id"`
	ScheduleID       int64    `json:"schedule_id"`
	TravelDate       string   `json:"travel_date"` // YYYY-MM-DD
	SeatNumbers      []int    `json:"seat_numbers"`
	PassengerNames   []string `json:"passenger_names"`
	PassengerPhones  []string `json:"passenger_phones"`
	TotalAmount      int64    `json:"total_amount"`
	BookingReference string   `json:"booking_reference"`
	PaymentStatus    string   `json:"payment_status"`
	BookingStatus    string   `json:"booking_status"`
	QRCode           string   `json:"qr_code,omitempty"`
	CreatedAt        string   `json:"created_at,omitempty"`
	UpdatedAt        string   `json:"updated_at,omitempty"`
}

// BookingDetail is the composed read model: booking joined with its
// schedule, route and bus. Explicit struct instead of a loose map so field
// mismatches fail at compile time.
type BookingDetail struct {
	Booking
	Schedule Schedule `json:"schedule"`
	Route    Route    `json:"route"`
	Bus      Bus      `json:"bus"`
}

// BookingInput carries the booking-creation payload.
type BookingInput struct {
	ScheduleID      int64    `json:"schedule_id"`
	TravelDate      string   `json:"travel_date"`
	SeatNumbers     []int    `json:"seat_numbers"`
	PassengerNames  []string `json:"passenger_names"`
	PassengerPhones []string `json:"passenger_phones"`
}
