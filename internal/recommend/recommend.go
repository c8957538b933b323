// Package recommend implements the taste-compatibility and recommendation
// engine. Every ranker is a pure function over repository snapshots fetched
// at request time: identical inputs always produce identical output, so the
// functions are safe to call concurrently and trivial to test with fixture
// data.
package recommend

const (
	// HighRatingMin is the rating a movie needs before it counts toward a
	// user's favorite genres.
	HighRatingMin = 7

	// FriendRatingMin is the stricter bar a friend's rating must clear before
	// the movie is surfaced as a recommendation.
	FriendRatingMin = 8

	// FavoriteGenreCount bounds how many favorite genres feed the rankers.
	FavoriteGenreCount = 4

	// GenreMatchWeight is how many community-rating points one matching
	// favorite genre is worth when scoring personal recommendations.
	GenreMatchWeight = 0.7

	// GenreOverlapBonus is the compatibility-score bonus per genre both users
	// favor when scoring joint recommendations.
	GenreOverlapBonus = 8

	// CandidatePoolSize bounds the catalog slice considered for personal
	// recommendations. Exhaustive full-catalog scoring is deliberately not
	// performed.
	CandidatePoolSize = 100

	// FriendPoolSize bounds the friend's high ratings considered for joint
	// recommendations.
	FriendPoolSize = 50

	// FriendsFeedPoolSize bounds the pooled high ratings considered for
	// friends-sourced recommendations.
	FriendsFeedPoolSize = 100

	// PersonalDefaultLimit is the personal recommendation count when the
	// caller does not specify one.
	PersonalDefaultLimit = 10

	// JointLimit caps joint recommendation output.
	JointLimit = 8

	// FriendsLimit caps friends-sourced recommendation output.
	FriendsLimit = 10
)

// ExclusionSet unions movie ID lists into a membership set. Rankers drop any
// candidate whose ID is in the set.
func ExclusionSet(idLists ...[]int) map[int]struct{} {
	excluded := make(map[int]struct{})
	for _, ids := range idLists {
		for _, id := range ids {
			excluded[id] = struct{}{}
		}
	}
	return excluded
}
