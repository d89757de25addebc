package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when a booking id is unknown.
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidDates is returned when check-out is not after check-in.
	ErrInvalidDates = errors.New("bookings: check-out must be after check-in")
)
