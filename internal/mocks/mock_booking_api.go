package mocks

import (
	"context"

	"github.com/cinetick/cinetick-go/internal/domain"
)

type MockBookingAPI struct {
	domain.BookingAPI
	MyBookingsFunc    func(ctx context.Context) ([]domain.Booking, error)
	BookedSeatsFunc   func(ctx context.Context, movieID, date, time string) ([]string, error)
	CreateBookingFunc func(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error)
}

func (m *MockBookingAPI) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	return m.MyBookingsFunc(ctx)
}

func (m *MockBookingAPI) BookedSeats(ctx context.Context, movieID, date, time string) ([]string, error) {
	return m.BookedSeatsFunc(ctx, movieID, date, time)
}

func (m *MockBookingAPI) CreateBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	return m.CreateBookingFunc(ctx, draft)
}
