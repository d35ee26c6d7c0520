// Package bookings manages table reservations. A booking starts pending
// and can transition exactly once to confirmed; there is no further state.
package bookings

import "time"

// Booking is one table reservation.
type Booking struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Guests    int       `json:"guests"`
	Phone     string    `json:"phone"`
	IsPending bool      `json:"isPending"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateBookingRequest carries the fields accepted on creation. The pending
// flag is not accepted from the caller; new bookings are always pending.
type CreateBookingRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Date   string `json:"date" validate:"required"`
	Time   string `json:"time" validate:"required"`
	Guests int    `json:"guests" validate:"gte=1"`
	Phone  string `json:"phone"`
}
