package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cinetick/cinetick-go/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login implements domain.AuthAPI.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Credentials, error) {
	creds, err := Do[domain.Credentials](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Email: email, Password: password},
	})
	if err != nil {
		return nil, err
	}

	return &creds, nil
}

// Register implements domain.AuthAPI. The response carries no session token;
// the caller must log in explicitly afterwards.
func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	user, err := Do[domain.User](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/users/register",
		Body:   registerRequest{Name: name, Email: email, Password: password},
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Movies implements domain.MovieAPI. An empty genre fetches the whole catalog.
func (c *Client) Movies(ctx context.Context, genre string) ([]domain.Movie, error) {
	query := url.Values{}
	if genre != "" {
		query.Set("genre", genre)
	}

	return Do[[]domain.Movie](ctx, c, Request{
		Method: http.MethodGet,
		Path:   "/movies",
		Query:  query,
	})
}

// MyBookings implements domain.BookingAPI.
func (c *Client) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	return Do[[]domain.Booking](ctx, c, Request{
		Method:        http.MethodGet,
		Path:          "/bookings/my-bookings",
		Authenticated: true,
	})
}

// BookedSeats implements domain.BookingAPI. It returns the seat codes the
// service reports as taken for one showing.
func (c *Client) BookedSeats(ctx context.Context, movieID, date, showTime string) ([]string, error) {
	query := url.Values{}
	query.Set("movieId", movieID)
	query.Set("date", date)
	query.Set("time", showTime)

	return Do[[]string](ctx, c, Request{
		Method:        http.MethodGet,
		Path:          "/bookings/booked-seats",
		Query:         query,
		Authenticated: true,
	})
}

// CreateBooking implements domain.BookingAPI.
func (c *Client) CreateBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	booking, err := Do[domain.Booking](ctx, c, Request{
		Method:        http.MethodPost,
		Path:          "/bookings",
		Body:          draft,
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}
