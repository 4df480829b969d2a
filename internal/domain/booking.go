package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MovieRef is the polymorphic movie field of a Booking. The service returns
// either a bare movie id or a fully embedded Movie object; on write it always
// expects the bare id. Decoding tries the embedded shape first and falls back
// to the id shape.
type MovieRef struct {
	id    string
	movie *Movie
}

// MovieRefFromID builds a reference holding only the identifier.
func MovieRefFromID(id string) MovieRef {
	return MovieRef{id: id}
}

// ID returns the movie identifier regardless of which shape was decoded.
func (r MovieRef) ID() string {
	if r.movie != nil {
		return r.movie.ID
	}

	return r.id
}

// Movie returns the embedded movie, if the richer shape was present.
func (r MovieRef) Movie() (*Movie, bool) {
	return r.movie, r.movie != nil
}

func (r *MovieRef) UnmarshalJSON(data []byte) error {
	var movie Movie
	if err := json.Unmarshal(data, &movie); err == nil && movie.ID != "" {
		r.movie = &movie
		r.id = movie.ID
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err == nil && id != "" {
		r.movie = nil
		r.id = id
		return nil
	}

	return fmt.Errorf("movie field is neither an embedded movie nor an id: %s", data)
}

// MarshalJSON always emits the bare identifier form; the embedded shape is a
// read-only convenience and is never round-tripped on write.
func (r MovieRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID())
}

// Booking is a confirmed reservation as reported by the service.
type Booking struct {
	ID         string          `json:"_id"`
	Movie      MovieRef        `json:"movie"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	Seats      []string        `json:"seats"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Location   string          `json:"location"`
}

// BookingDraft is the transient payload of one submission attempt.
type BookingDraft struct {
	MovieID    string          `json:"movieId" validate:"required"`
	Date       string          `json:"date" validate:"required"`
	Time       string          `json:"time" validate:"required"`
	Seats      []string        `json:"seats" validate:"required,min=1"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Location   string          `json:"location" validate:"required"`
}
