package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id int, rating float64, genres ...string) MovieSummary {
	return MovieSummary{ID: id, Title: "movie", CommunityRating: rating, Genres: genres}
}

func TestPersonalRecommendationsExcludesRatedAndQueued(t *testing.T) {
	candidates := []MovieSummary{
		candidate(1, 9.0),
		candidate(2, 8.5),
		candidate(3, 8.0),
	}
	excluded := ExclusionSet([]int{1}, []int{3})

	got := PersonalRecommendations(candidates, excluded, nil, 10)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].MovieID)
}

func TestPersonalRecommendationsGenreBonusAndReason(t *testing.T) {
	candidates := []MovieSummary{
		candidate(1, 7.0, "Drama", "Crime"),
		candidate(2, 8.0, "Horror"),
	}

	got := PersonalRecommendations(candidates, nil, []string{"Drama", "Crime"}, 10)
	require.Len(t, got, 2)

	// 7.0 + 2*0.7 = 8.4 beats the plain 8.0.
	assert.Equal(t, 1, got[0].MovieID)
	assert.InDelta(t, 8.4, got[0].Score, 1e-9)
	assert.Equal(t, "Matches your favorite genres: Drama, Crime", got[0].Reason)

	assert.Equal(t, 2, got[1].MovieID)
	assert.InDelta(t, 8.0, got[1].Score, 1e-9)
	assert.Equal(t, "Highly rated by community", got[1].Reason)
}

func TestPersonalRecommendationsNoFavoritesFallsBackToCommunity(t *testing.T) {
	// A user with no ratings >= 7 has no favorite genres: every candidate
	// keeps its community rating and the community reason, in pool order.
	candidates := []MovieSummary{
		candidate(1, 9.1, "Drama"),
		candidate(2, 8.7, "Comedy"),
		candidate(3, 8.7, "Horror"),
		candidate(4, 8.2),
	}

	got := PersonalRecommendations(candidates, nil, nil, 3)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].MovieID, got[1].MovieID, got[2].MovieID})
	for _, rec := range got {
		assert.Equal(t, "Highly rated by community", rec.Reason)
	}
}

func TestPersonalRecommendationsSortedDescending(t *testing.T) {
	candidates := []MovieSummary{
		candidate(1, 6.0, "Drama"),
		candidate(2, 9.0),
		candidate(3, 8.9, "Drama"), // 8.9 + 0.7 = 9.6
	}

	got := PersonalRecommendations(candidates, nil, []string{"Drama"}, 10)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	assert.Equal(t, 3, got[0].MovieID)
}

func TestPersonalRecommendationsShortPool(t *testing.T) {
	candidates := []MovieSummary{candidate(1, 7.0)}

	got := PersonalRecommendations(candidates, nil, nil, 10)
	assert.Len(t, got, 1)
}

func TestPersonalRecommendationsDeterministic(t *testing.T) {
	candidates := []MovieSummary{
		candidate(1, 8.0, "Drama"),
		candidate(2, 8.0, "Crime"),
		candidate(3, 8.0),
	}
	favorites := []string{"Drama", "Crime"}

	first := PersonalRecommendations(candidates, nil, favorites, 10)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, PersonalRecommendations(candidates, nil, favorites, 10))
	}
}
