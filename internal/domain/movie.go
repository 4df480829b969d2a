package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Movie is a catalog entry. PosterURL is stored as received from the service;
// use NormalizePosterURL to turn it into a resolvable locator at read time.
type Movie struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	PosterURL   string          `json:"posterUrl"`
	Genres      []string        `json:"genre"`
	Description string          `json:"description,omitempty"`
	Duration    string          `json:"duration,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
	ReleaseDate string          `json:"releaseDate,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Showtimes   []string        `json:"showtimes,omitempty"`
}

// NormalizePosterURL rewrites poster references that point at the service's own
// loopback address onto the configured base URL. The transform is pure and
// idempotent; callers apply it at read time and never write the result back.
func NormalizePosterURL(baseURL, raw string) string {
	const loopback = "http://localhost:3000"

	if strings.Contains(raw, loopback) && baseURL != loopback {
		return strings.Replace(raw, loopback, baseURL, 1)
	}

	return raw
}
