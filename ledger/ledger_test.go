package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"vesna/models"
)

// memStore is an in-memory Store with the same atomicity guarantees the
// Mongo store provides for single-document updates.
type memStore struct {
	mu       sync.Mutex
	events   map[string]*models.Event
	bookings map[string]*models.Booking // keyed by eventID+"/"+userID
}

func newMemStore(events ...*models.Event) *memStore {
	s := &memStore{
		events:   make(map[string]*models.Event),
		bookings: make(map[string]*models.Booking),
	}
	for _, e := range events {
		s.events[e.EventID] = e
	}
	return s
}

func (s *memStore) GetEvent(_ context.Context, eventID string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (s *memStore) FindBooking(_ context.Context, eventID, userID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[eventID+"/"+userID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *memStore) InsertBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.EventID+"/"+b.UserID] = b
	return nil
}

func (s *memStore) DeleteBooking(_ context.Context, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, b := range s.bookings {
		if b.BookingID == bookingID {
			delete(s.bookings, key)
			return nil
		}
	}
	return ErrBookingNotFound
}

func (s *memStore) DecrementSeats(_ context.Context, eventID string, n int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok {
		return false, ErrEventNotFound
	}
	if e.AvailableSeats < n {
		return false, nil
	}
	e.AvailableSeats -= n
	return true, nil
}

func (s *memStore) IncrementSeats(_ context.Context, eventID string, n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok {
		return 0, ErrEventNotFound
	}
	e.AvailableSeats += n
	return e.AvailableSeats, nil
}

func (s *memStore) SetCapacity(_ context.Context, eventID string, total, available int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	e.TotalSeats = total
	e.AvailableSeats = available
	return nil
}

func testEvent(id string, total, available int) *models.Event {
	return &models.Event{
		EventID:        id,
		Name:           "test event",
		TotalSeats:     total,
		AvailableSeats: available,
		Status:         models.EventVerified,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(testEvent("e1", 10, 10))
	l := New(store)

	booking, err := l.CreateBooking(ctx, "e1", "u1", 3, Contact{Name: "Olha"})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.Tickets != 3 || booking.EventID != "e1" || booking.UserID != "u1" {
		t.Fatalf("unexpected booking: %+v", booking)
	}
	if booking.BookingID == "" {
		t.Fatal("booking has no ID")
	}

	e, _ := store.GetEvent(ctx, "e1")
	if e.AvailableSeats != 7 {
		t.Fatalf("available seats = %d, want 7", e.AvailableSeats)
	}
}

func TestCreateBookingErrors(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(testEvent("e1", 10, 2))
	l := New(store)

	if _, err := l.CreateBooking(ctx, "e1", "u1", 0, Contact{}); !errors.Is(err, ErrInvalidTickets) {
		t.Fatalf("tickets=0: got %v, want ErrInvalidTickets", err)
	}
	if _, err := l.CreateBooking(ctx, "missing", "u1", 1, Contact{}); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("missing event: got %v, want ErrEventNotFound", err)
	}

	if _, err := l.CreateBooking(ctx, "e1", "u1", 3, Contact{}); !errors.Is(err, ErrInsufficientSeats) {
		t.Fatalf("overdraw: got %v, want ErrInsufficientSeats", err)
	}
	// A failed attempt must leave the count untouched.
	e, _ := store.GetEvent(ctx, "e1")
	if e.AvailableSeats != 2 {
		t.Fatalf("available seats changed on failed booking: %d", e.AvailableSeats)
	}

	if _, err := l.CreateBooking(ctx, "e1", "u1", 1, Contact{}); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := l.CreateBooking(ctx, "e1", "u1", 1, Contact{}); !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("second booking: got %v, want ErrDuplicateBooking", err)
	}
}

func TestCancelBookingRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(testEvent("e1", 10, 10))
	l := New(store)

	if _, err := l.CreateBooking(ctx, "e1", "u1", 4, Contact{}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	available, err := l.CancelBooking(ctx, "e1", "u1")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if available != 10 {
		t.Fatalf("available after cancel = %d, want 10", available)
	}

	// Cancelled booking is gone; a second cancel fails.
	if _, err := l.CancelBooking(ctx, "e1", "u1"); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("second cancel: got %v, want ErrBookingNotFound", err)
	}

	// And the user can book again.
	if _, err := l.CreateBooking(ctx, "e1", "u1", 1, Contact{}); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestRecomputeCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("shrink keeps booked seats", func(t *testing.T) {
		store := newMemStore(testEvent("e1", 10, 4)) // 6 booked
		l := New(store)

		available, err := l.RecomputeCapacity(ctx, "e1", 8)
		if err != nil {
			t.Fatalf("RecomputeCapacity: %v", err)
		}
		if available != 2 {
			t.Fatalf("available = %d, want 2", available)
		}
		e, _ := store.GetEvent(ctx, "e1")
		if e.TotalSeats != 8 || e.AvailableSeats != 2 {
			t.Fatalf("capacity pair = (%d,%d), want (8,2)", e.TotalSeats, e.AvailableSeats)
		}
	})

	t.Run("rejects under-booked total", func(t *testing.T) {
		store := newMemStore(testEvent("e1", 10, 4)) // 6 booked
		l := New(store)

		if _, err := l.RecomputeCapacity(ctx, "e1", 5); !errors.Is(err, ErrCapacityUnderBooked) {
			t.Fatalf("got %v, want ErrCapacityUnderBooked", err)
		}
		e, _ := store.GetEvent(ctx, "e1")
		if e.TotalSeats != 10 || e.AvailableSeats != 4 {
			t.Fatalf("rejected edit mutated capacity: (%d,%d)", e.TotalSeats, e.AvailableSeats)
		}
	})

	t.Run("grow", func(t *testing.T) {
		store := newMemStore(testEvent("e1", 10, 0)) // sold out
		l := New(store)

		available, err := l.RecomputeCapacity(ctx, "e1", 15)
		if err != nil {
			t.Fatalf("RecomputeCapacity: %v", err)
		}
		if available != 5 {
			t.Fatalf("available = %d, want 5", available)
		}
	})
}

// N concurrent single-ticket bookings against k available seats must yield
// exactly k successes, N-k ErrInsufficientSeats, and zero seats left.
func TestConcurrentBookingsNeverOversell(t *testing.T) {
	const n = 100
	const k = 37

	ctx := context.Background()
	store := newMemStore(testEvent("e1", k, k))
	l := New(store)

	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := l.CreateBooking(ctx, "e1", userID(i), 1, Contact{})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var successes, soldOut int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrInsufficientSeats):
			soldOut++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != k || soldOut != n-k {
		t.Fatalf("successes=%d soldOut=%d, want %d and %d", successes, soldOut, k, n-k)
	}

	e, _ := store.GetEvent(ctx, "e1")
	if e.AvailableSeats != 0 {
		t.Fatalf("available seats = %d, want 0", e.AvailableSeats)
	}
}

// Interleaved creates and cancels must keep available within [0, total].
func TestInterleavedBookingsStayInBounds(t *testing.T) {
	const total = 10
	const workers = 20

	ctx := context.Background()
	store := newMemStore(testEvent("e1", total, total))
	l := New(store)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uid := userID(i)
			for j := 0; j < 25; j++ {
				if _, err := l.CreateBooking(ctx, "e1", uid, 1, Contact{}); err == nil {
					l.CancelBooking(ctx, "e1", uid)
				}
			}
		}(i)
	}
	wg.Wait()

	e, _ := store.GetEvent(ctx, "e1")
	if e.AvailableSeats < 0 || e.AvailableSeats > total {
		t.Fatalf("available seats out of bounds: %d", e.AvailableSeats)
	}
}

func userID(i int) string {
	return "user-" + string(rune('a'+i%26)) + string(rune('a'+(i/26)%26))
}
