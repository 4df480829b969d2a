package domain

import "context"

// AuthAPI is the authentication surface of the remote service.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*Credentials, error)
	Register(ctx context.Context, name, email, password string) (*User, error)
}

// MovieAPI exposes the catalog endpoints.
type MovieAPI interface {
	Movies(ctx context.Context, genre string) ([]Movie, error)
}

// BookingAPI exposes the booking endpoints.
type BookingAPI interface {
	MyBookings(ctx context.Context) ([]Booking, error)
	BookedSeats(ctx context.Context, movieID, date, time string) ([]string, error)
	CreateBooking(ctx context.Context, draft BookingDraft) (*Booking, error)
}
