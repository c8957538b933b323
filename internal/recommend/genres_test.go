package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ratedMovie(rating int, genres ...string) RatedMovie {
	return RatedMovie{Rating: rating, Movie: MovieSummary{Genres: genres}}
}

func TestFavoriteGenresCountsHighlyRatedOnly(t *testing.T) {
	rated := []RatedMovie{
		ratedMovie(9, "Drama", "Crime"),
		ratedMovie(8, "Drama"),
		ratedMovie(7, "Comedy"),
		ratedMovie(6, "Horror"), // below threshold, must not count
		ratedMovie(3, "Horror"),
	}

	assert.Equal(t, []string{"Drama", "Crime", "Comedy"}, FavoriteGenres(rated, 4))
}

func TestFavoriteGenresEmptyWhenNothingQualifies(t *testing.T) {
	rated := []RatedMovie{
		ratedMovie(6, "Drama"),
		ratedMovie(5, "Comedy"),
	}

	assert.Empty(t, FavoriteGenres(rated, 4))
	assert.Empty(t, FavoriteGenres(nil, 4))
}

func TestFavoriteGenresTruncatesToTopN(t *testing.T) {
	rated := []RatedMovie{
		ratedMovie(9, "Drama", "Crime", "Thriller", "Action", "Comedy"),
		ratedMovie(8, "Drama", "Crime"),
	}

	got := FavoriteGenres(rated, 2)
	assert.Equal(t, []string{"Drama", "Crime"}, got)
}

func TestFavoriteGenresTiesKeepEncounterOrder(t *testing.T) {
	rated := []RatedMovie{
		ratedMovie(8, "Western", "Noir"),
		ratedMovie(9, "Noir", "Western"),
	}

	// Both genres occur twice; Western was encountered first.
	assert.Equal(t, []string{"Western", "Noir"}, FavoriteGenres(rated, 4))
}

func TestOverlapGenres(t *testing.T) {
	a := []string{"Drama", "Crime", "Comedy", "Drama"}
	b := []string{"Comedy", "Drama", "Horror"}

	assert.Equal(t, []string{"Drama", "Comedy"}, OverlapGenres(a, b))
	assert.Empty(t, OverlapGenres(a, []string{"Sci-Fi"}))
	assert.Empty(t, OverlapGenres(nil, b))
}
