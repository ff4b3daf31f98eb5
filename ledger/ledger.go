// Package ledger keeps event seat accounting consistent under concurrent
// booking and cancellation requests. The seat check-and-decrement is the
// only read-check-write sequence in the system; everything here exists to
// make sure it cannot oversell.
package ledger

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"vesna/models"
	"vesna/utils"
)

// Store is the persistence boundary the ledger drives. GetEvent and
// FindBooking return ErrEventNotFound / ErrBookingNotFound when the
// document is missing. DecrementSeats must apply the seat check and the
// decrement as one atomic conditional update at the storage layer.
type Store interface {
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	FindBooking(ctx context.Context, eventID, userID string) (*models.Booking, error)
	InsertBooking(ctx context.Context, b *models.Booking) error
	DeleteBooking(ctx context.Context, bookingID string) error

	// DecrementSeats subtracts n from the event's available seats only if
	// at least n are free; reports whether the decrement was applied.
	DecrementSeats(ctx context.Context, eventID string, n int) (bool, error)
	// IncrementSeats returns n seats to the event and reports the updated
	// available count.
	IncrementSeats(ctx context.Context, eventID string, n int) (int, error)
	// SetCapacity overwrites the event's capacity pair.
	SetCapacity(ctx context.Context, eventID string, total, available int) error
}

// Contact is the optional contact metadata attached to a booking.
type Contact struct {
	Name  string
	Phone string
}

const lockStripes = 64

// Ledger serializes seat mutations per event. The striped mutexes close
// the check-then-act window between the duplicate check, the seat
// decrement, and the booking insert; the store's conditional decrement is
// the backstop for writers outside this process.
type Ledger struct {
	store Store
	locks [lockStripes]sync.Mutex
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) lockFor(eventID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(eventID))
	return &l.locks[h.Sum32()%lockStripes]
}

// CreateBooking reserves tickets seats on an event for a user. At most one
// booking per (event, user) pair is allowed regardless of remaining seats.
func (l *Ledger) CreateBooking(ctx context.Context, eventID, userID string, tickets int, contact Contact) (*models.Booking, error) {
	if tickets < 1 {
		return nil, ErrInvalidTickets
	}

	mu := l.lockFor(eventID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := l.store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	_, err := l.store.FindBooking(ctx, eventID, userID)
	if err == nil {
		return nil, ErrDuplicateBooking
	}
	if err != ErrBookingNotFound {
		return nil, err
	}

	ok, err := l.store.DecrementSeats(ctx, eventID, tickets)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientSeats
	}

	booking := &models.Booking{
		BookingID:    utils.GetUUID(),
		EventID:      eventID,
		UserID:       userID,
		Tickets:      tickets,
		ContactName:  contact.Name,
		ContactPhone: contact.Phone,
		BookedAt:     time.Now().UTC(),
	}

	if err := l.store.InsertBooking(ctx, booking); err != nil {
		// Return the seats we already took so a failed insert cannot leak
		// capacity.
		l.store.IncrementSeats(ctx, eventID, tickets)
		return nil, err
	}

	return booking, nil
}

// CancelBooking deletes the user's booking and returns its tickets to the
// event. Reports the updated available-seat count.
func (l *Ledger) CancelBooking(ctx context.Context, eventID, userID string) (int, error) {
	mu := l.lockFor(eventID)
	mu.Lock()
	defer mu.Unlock()

	booking, err := l.store.FindBooking(ctx, eventID, userID)
	if err != nil {
		return 0, err
	}

	if err := l.store.DeleteBooking(ctx, booking.BookingID); err != nil {
		return 0, err
	}

	return l.store.IncrementSeats(ctx, eventID, booking.Tickets)
}

// RecomputeCapacity applies a new total-seat count to an event while
// keeping already-booked seats booked. Rejects totals smaller than the
// number of seats already claimed.
func (l *Ledger) RecomputeCapacity(ctx context.Context, eventID string, newTotal int) (int, error) {
	mu := l.lockFor(eventID)
	mu.Lock()
	defer mu.Unlock()

	event, err := l.store.GetEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}

	booked := event.TotalSeats - event.AvailableSeats
	if booked > newTotal {
		return 0, ErrCapacityUnderBooked
	}

	available := newTotal - booked
	if available < 0 {
		available = 0
	}
	if available > newTotal {
		available = newTotal
	}

	if err := l.store.SetCapacity(ctx, eventID, newTotal, available); err != nil {
		return 0, err
	}

	return available, nil
}
