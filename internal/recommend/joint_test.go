package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func friendPick(id int, rating int, communityRating float64, genres ...string) RatedMovie {
	return RatedMovie{
		Rating: rating,
		Movie:  MovieSummary{ID: id, Title: "movie", CommunityRating: communityRating, Genres: genres},
	}
}

func TestJointRecommendationsGenreOverlapOutranksRawRating(t *testing.T) {
	// Friend rated X=9 (Drama, Crime) and Y=8 (Comedy); only Drama is a
	// shared favorite. X gets the overlap bonus and ranks above Y.
	picks := []RatedMovie{
		friendPick(2, 8, 8.3, "Comedy"),
		friendPick(1, 9, 8.1, "Drama", "Crime"),
	}

	got := JointRecommendations(picks, nil, []string{"Drama"})
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].MovieID)
	assert.Equal(t, 89, got[0].CompatibilityScore) // round(8.1*10) + 1*8
	assert.Equal(t, 2, got[1].MovieID)
	assert.Equal(t, 83, got[1].CompatibilityScore)
}

func TestJointRecommendationsScoreCappedAt99(t *testing.T) {
	picks := []RatedMovie{
		friendPick(1, 10, 9.8, "Drama", "Crime", "Thriller"),
	}

	got := JointRecommendations(picks, nil, []string{"Drama", "Crime", "Thriller"})
	require.Len(t, got, 1)
	assert.Equal(t, 99, got[0].CompatibilityScore)
}

func TestJointRecommendationsExcludesAlreadyRated(t *testing.T) {
	picks := []RatedMovie{
		friendPick(1, 9, 8.0),
		friendPick(2, 9, 8.0),
	}
	excluded := ExclusionSet([]int{1})

	got := JointRecommendations(picks, excluded, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].MovieID)
}

func TestJointRecommendationsCappedAtLimit(t *testing.T) {
	var picks []RatedMovie
	for id := 1; id <= 20; id++ {
		picks = append(picks, friendPick(id, 9, 8.0))
	}

	got := JointRecommendations(picks, nil, nil)
	assert.Len(t, got, JointLimit)
}

func TestJointRecommendationsMutualRatersFixedAtOne(t *testing.T) {
	got := JointRecommendations([]RatedMovie{friendPick(1, 9, 8.0)}, nil, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].MutualRaters)
}
