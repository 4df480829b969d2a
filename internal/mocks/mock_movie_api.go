package mocks

import (
	"context"

	"github.com/cinetick/cinetick-go/internal/domain"
)

type MockMovieAPI struct {
	domain.MovieAPI
	MoviesFunc func(ctx context.Context, genre string) ([]domain.Movie, error)
}

func (m *MockMovieAPI) Movies(ctx context.Context, genre string) ([]domain.Movie, error) {
	return m.MoviesFunc(ctx, genre)
}
