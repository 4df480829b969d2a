package booking

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cinetick/cinetick-go/internal/domain"
)

// Repository holds the user's confirmed bookings. Refresh replaces the whole
// list with the server's authoritative one; RecordLocally inserts a
// just-created booking optimistically so callers see it before the next
// refresh confirms it.
type Repository struct {
	mu      sync.Mutex
	api     domain.BookingAPI
	session Session
	logger  *slog.Logger

	bookings []domain.Booking
	subs     []func()
}

func NewRepository(api domain.BookingAPI, session Session, logger *slog.Logger) *Repository {
	return &Repository{
		api:     api,
		session: session,
		logger:  logger,
	}
}

// Refresh replaces the local list with the server's. Optimistic entries are
// superseded wholesale, which also deduplicates them.
func (r *Repository) Refresh(ctx context.Context) error {
	if !r.session.Authenticated() {
		return domain.ErrNotAuthenticated
	}

	bookings, err := r.api.MyBookings(ctx)
	if err != nil {
		r.logger.Error("failed to fetch bookings", "error", err)
		return err
	}

	r.mu.Lock()
	r.bookings = bookings
	r.mu.Unlock()

	r.notify()

	return nil
}

// RecordLocally appends a booking without a network round trip. A booking
// whose id is already present is skipped, so replaying a creation event
// cannot produce duplicates.
func (r *Repository) RecordLocally(booking domain.Booking) {
	r.mu.Lock()

	for _, b := range r.bookings {
		if b.ID == booking.ID {
			r.mu.Unlock()
			return
		}
	}

	r.bookings = append(r.bookings, booking)
	r.mu.Unlock()

	r.notify()
}

// Bookings returns a copy of the current list.
func (r *Repository) Bookings() []domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings := make([]domain.Booking, len(r.bookings))
	copy(bookings, r.bookings)

	return bookings
}

// Subscribe registers a callback invoked after every list change.
func (r *Repository) Subscribe(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = append(r.subs, fn)
}

func (r *Repository) notify() {
	r.mu.Lock()
	subs := make([]func(), len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
