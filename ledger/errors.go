package ledger

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrDuplicateBooking    = errors.New("user already booked this event")
	ErrInsufficientSeats   = errors.New("not enough seats available")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrCapacityUnderBooked = errors.New("booked seats exceed new capacity")
	ErrInvalidTickets      = errors.New("tickets must be at least 1")
)
