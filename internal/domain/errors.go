package domain

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnknownSeat      = errors.New("seat does not exist in this hall")
	ErrSeatUnavailable  = errors.New("seat is already taken")
	ErrEmptySelection   = errors.New("no seats selected")
	ErrSubmitInFlight   = errors.New("a booking submission is already in progress")
	ErrAlreadySubmitted = errors.New("booking has already been submitted")
	ErrEngineClosed     = errors.New("reservation engine has been closed")
)
