package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePosterURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		raw  string
		want string
	}{
		{
			name: "should rewrite loopback reference onto base",
			base: "http://192.168.1.5:3000",
			raw:  "http://localhost:3000/posters/m1.jpg",
			want: "http://192.168.1.5:3000/posters/m1.jpg",
		},
		{
			name: "should leave external references untouched",
			base: "http://192.168.1.5:3000",
			raw:  "https://cdn.example.com/posters/m1.jpg",
			want: "https://cdn.example.com/posters/m1.jpg",
		},
		{
			name: "should be a no-op when base is the loopback itself",
			base: "http://localhost:3000",
			raw:  "http://localhost:3000/posters/m1.jpg",
			want: "http://localhost:3000/posters/m1.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePosterURL(tt.base, tt.raw)
			assert.Equal(t, tt.want, got)

			// Idempotence: applying the transform again changes nothing.
			assert.Equal(t, got, NormalizePosterURL(tt.base, got))
		})
	}
}

func TestMovieDecodeToleratesMissingOptionalFields(t *testing.T) {
	payload := `{"_id": "m1", "title": "Heat", "posterUrl": "http://img/m1.jpg", "genre": ["Crime", "Drama"]}`

	var movie Movie
	require.NoError(t, json.Unmarshal([]byte(payload), &movie))

	assert.Equal(t, "m1", movie.ID)
	assert.Equal(t, "Heat", movie.Title)
	assert.Equal(t, []string{"Crime", "Drama"}, movie.Genres)
	assert.Empty(t, movie.Description)
	assert.Empty(t, movie.Showtimes)
}
