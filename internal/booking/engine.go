// Package booking holds the seat reservation engine and the booking
// repository: local selection state reconciled against server truth, and the
// user's confirmed booking list.
package booking

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/cinetick/cinetick-go/internal/domain"
)

// Session is the slice of the session manager the booking components need.
type Session interface {
	Authenticated() bool
}

// Showing identifies the screening an engine is scoped to. A different
// showing gets a fresh engine.
type Showing struct {
	MovieID  string
	Date     string
	Time     string
	Location string
}

type EngineState int

const (
	Ready EngineState = iota
	Submitting
	Submitted
)

type EventKind int

const (
	EventGridChanged EventKind = iota
	EventBookingCreated
)

// Event is a discrete state-change notification. Booking is set only for
// EventBookingCreated.
type Event struct {
	Kind    EventKind
	Booking *domain.Booking
}

// Engine owns the seat grid for one showing. Grid and selection mutations are
// serialized behind one mutex; network I/O happens outside it. Conflicts with
// server-reported availability always resolve in the server's favor.
type Engine struct {
	mu      sync.Mutex
	api     domain.BookingAPI
	session Session
	logger  *slog.Logger

	showing   Showing
	unitPrice decimal.Decimal

	grid      *domain.SeatGrid
	selection map[domain.SeatCode]struct{}
	state     EngineState

	// Availability responses are last-requested-wins: a response whose
	// sequence number is no longer the latest issued is discarded.
	fetchSeq uint64

	closed bool
	subs   []func(Event)
}

// NewEngine builds an engine with every seat available.
func NewEngine(api domain.BookingAPI, session Session, showing Showing, layout domain.GridLayout, unitPrice decimal.Decimal, logger *slog.Logger) *Engine {
	return &Engine{
		api:       api,
		session:   session,
		logger:    logger,
		showing:   showing,
		unitPrice: unitPrice,
		grid:      domain.NewSeatGrid(layout),
		selection: make(map[domain.SeatCode]struct{}),
		state:     Ready,
	}
}

// RefreshAvailability fetches the seats the service reports as taken and
// merges them into the grid. A failed fetch leaves the last known-good grid
// untouched. Only the most recently issued fetch's result is applied.
func (e *Engine) RefreshAvailability(ctx context.Context) error {
	if !e.session.Authenticated() {
		return domain.ErrNotAuthenticated
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return domain.ErrEngineClosed
	}
	e.fetchSeq++
	seq := e.fetchSeq
	e.mu.Unlock()

	codes, err := e.api.BookedSeats(ctx, e.showing.MovieID, e.showing.Date, e.showing.Time)
	if err != nil {
		e.logger.Error("failed to fetch booked seats",
			"movie_id", e.showing.MovieID,
			"date", e.showing.Date,
			"time", e.showing.Time,
			"error", err,
		)
		return err
	}

	e.mu.Lock()
	if e.closed || seq != e.fetchSeq {
		e.mu.Unlock()
		e.logger.Debug("discarded stale availability response", "seq", seq)
		return nil
	}
	changed := e.applyAvailability(codes)
	e.mu.Unlock()

	if changed {
		e.notify(Event{Kind: EventGridChanged})
	}

	return nil
}

// applyAvailability is the server-truth merge. For every seat: a code the
// server reports as booked becomes unavailable, dropping out of the local
// selection if it was chosen; a seat the server no longer reports as booked
// recovers to available, never back to selected, since discarded local intent
// is not recoverable. Applying the same set twice is a no-op the second time.
// Callers hold e.mu.
func (e *Engine) applyAvailability(codes []string) bool {
	booked := make(map[domain.SeatCode]struct{}, len(codes))

	for _, raw := range codes {
		code, err := domain.ParseSeatCode(raw)
		if err != nil {
			e.logger.Warn("skipping malformed seat code from service", "code", raw)
			continue
		}
		booked[code] = struct{}{}
	}

	changed := false

	e.grid.Each(func(seat *domain.Seat) {
		_, isBooked := booked[seat.Code]

		switch {
		case isBooked:
			if seat.Status == domain.SeatUnavailable {
				return
			}
			if seat.Status == domain.SeatSelected {
				delete(e.selection, seat.Code)
			}
			seat.Status = domain.SeatUnavailable
			changed = true
		case seat.Status == domain.SeatUnavailable:
			seat.Status = domain.SeatAvailable
			changed = true
		}
	})

	return changed
}

// ToggleSeat flips a seat between available and selected as a single atomic
// transition. Toggling an unavailable seat is rejected. Toggling stays
// permitted while a submission is in flight.
func (e *Engine) ToggleSeat(code domain.SeatCode) error {
	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return domain.ErrEngineClosed
	}

	seat, ok := e.grid.Seat(code)
	if !ok {
		e.mu.Unlock()
		return domain.ErrUnknownSeat
	}

	switch seat.Status {
	case domain.SeatUnavailable:
		e.mu.Unlock()
		return domain.ErrSeatUnavailable
	case domain.SeatSelected:
		seat.Status = domain.SeatAvailable
		delete(e.selection, code)
	default:
		seat.Status = domain.SeatSelected
		e.selection[code] = struct{}{}
	}

	e.mu.Unlock()

	e.notify(Event{Kind: EventGridChanged})

	return nil
}

// ComputeTotal is selection count times the unit price.
func (e *Engine) ComputeTotal() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	return decimal.NewFromInt(int64(len(e.selection))).Mul(e.unitPrice)
}

// Submit sends the current selection as a booking. At most one submission may
// be in flight per engine; a failed submission returns the engine to Ready
// with the selection preserved so the user can retry without re-selecting.
func (e *Engine) Submit(ctx context.Context) (*domain.Booking, error) {
	if !e.session.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	e.mu.Lock()

	switch {
	case e.closed:
		e.mu.Unlock()
		return nil, domain.ErrEngineClosed
	case e.state == Submitting:
		e.mu.Unlock()
		return nil, domain.ErrSubmitInFlight
	case e.state == Submitted:
		e.mu.Unlock()
		return nil, domain.ErrAlreadySubmitted
	case len(e.selection) == 0:
		e.mu.Unlock()
		return nil, domain.ErrEmptySelection
	}

	draft := domain.BookingDraft{
		MovieID:    e.showing.MovieID,
		Date:       e.showing.Date,
		Time:       e.showing.Time,
		Seats:      seatStrings(e.selection),
		TotalPrice: decimal.NewFromInt(int64(len(e.selection))).Mul(e.unitPrice),
		Location:   e.showing.Location,
	}
	e.state = Submitting

	e.mu.Unlock()

	booking, err := e.api.CreateBooking(ctx, draft)

	e.mu.Lock()
	if err != nil {
		e.state = Ready
		e.mu.Unlock()
		e.logger.Error("booking submission failed", "movie_id", e.showing.MovieID, "error", err)
		return nil, err
	}
	e.state = Submitted
	e.mu.Unlock()

	e.logger.Info("booking created", "booking_id", booking.ID, "seats", booking.Seats)
	e.notify(Event{Kind: EventBookingCreated, Booking: booking})

	return booking, nil
}

// Grid returns a deep copy of the current seat rows.
func (e *Engine) Grid() [][]domain.Seat {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.grid.Snapshot()
}

// Selection returns the locally selected seat codes in row-major order.
func (e *Engine) Selection() []domain.SeatCode {
	e.mu.Lock()
	defer e.mu.Unlock()

	return sortedCodes(e.selection)
}

func (e *Engine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Subscribe registers a callback for grid-changed and booking-created events.
func (e *Engine) Subscribe(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.subs = append(e.subs, fn)
}

// Close marks the engine as discarded. Results of in-flight requests arriving
// afterwards never mutate its state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
}

func (e *Engine) notify(ev Event) {
	e.mu.Lock()
	subs := make([]func(Event), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func sortedCodes(selection map[domain.SeatCode]struct{}) []domain.SeatCode {
	codes := make([]domain.SeatCode, 0, len(selection))
	for code := range selection {
		codes = append(codes, code)
	}

	sort.Slice(codes, func(i, j int) bool {
		if codes[i].Row != codes[j].Row {
			return codes[i].Row < codes[j].Row
		}
		return codes[i].Number < codes[j].Number
	})

	return codes
}

func seatStrings(selection map[domain.SeatCode]struct{}) []string {
	codes := sortedCodes(selection)

	seats := make([]string, len(codes))
	for i, code := range codes {
		seats[i] = code.String()
	}

	return seats
}
