package recommend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedPick(raterName string, movieID, rating int) FriendRating {
	return FriendRating{
		RaterName: raterName,
		Rating:    rating,
		Movie:     MovieSummary{ID: movieID, Title: fmt.Sprintf("movie %d", movieID)},
	}
}

func TestFriendsRecommendationsFirstOccurrenceWins(t *testing.T) {
	// Pool is pre-sorted by rating desc; both friends rated movie 1, so the
	// stronger signal (ana, 10) is the one kept.
	picks := []FriendRating{
		feedPick("ana", 1, 10),
		feedPick("ben", 1, 8),
		feedPick("ben", 2, 9),
	}

	got := FriendsRecommendations(picks, nil)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].MovieID)
	assert.Equal(t, "ana rated this 10/10", got[0].Reason)
	assert.Equal(t, 10, got[0].Score)
	assert.Equal(t, 2, got[1].MovieID)
	assert.Equal(t, "ben rated this 9/10", got[1].Reason)
}

func TestFriendsRecommendationsExcludesOwnMovies(t *testing.T) {
	picks := []FriendRating{
		feedPick("ana", 1, 10),
		feedPick("ana", 2, 9),
		feedPick("ben", 3, 8),
	}
	excluded := ExclusionSet([]int{1}, []int{3})

	got := FriendsRecommendations(picks, excluded)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].MovieID)
}

func TestFriendsRecommendationsSortedAndCapped(t *testing.T) {
	var picks []FriendRating
	for id := 1; id <= 15; id++ {
		picks = append(picks, feedPick("ana", id, 8))
	}

	got := FriendsRecommendations(picks, nil)
	assert.Len(t, got, FriendsLimit)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestFriendsRecommendationsEmptyPool(t *testing.T) {
	assert.Empty(t, FriendsRecommendations(nil, nil))
}
