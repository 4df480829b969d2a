// Package catalog fetches movie catalog entries.
package catalog

import (
	"context"
	"log/slog"

	"github.com/cinetick/cinetick-go/internal/domain"
)

// Accessor is a thin read path over the movie endpoints. Poster references
// are normalized onto the configured base URL at read time; stored values are
// never mutated server-side.
type Accessor struct {
	api     domain.MovieAPI
	baseURL string
	logger  *slog.Logger
}

func NewAccessor(api domain.MovieAPI, baseURL string, logger *slog.Logger) *Accessor {
	return &Accessor{
		api:     api,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Movies fetches the catalog, optionally filtered by genre.
func (a *Accessor) Movies(ctx context.Context, genre string) ([]domain.Movie, error) {
	movies, err := a.api.Movies(ctx, genre)
	if err != nil {
		a.logger.Error("failed to fetch movies", "genre", genre, "error", err)
		return nil, err
	}

	for i := range movies {
		movies[i].PosterURL = domain.NormalizePosterURL(a.baseURL, movies[i].PosterURL)
	}

	return movies, nil
}
