package recommend

import (
	"fmt"
	"sort"
)

// FriendsRecommendations walks a pool of friends' high ratings, pre-sorted by
// rating desc then recency desc, and keeps the first qualifying rating per
// movie. Because the pool is pre-sorted, first occurrence wins means the
// strongest and most recent friend signal for each movie is the one kept.
// Output is capped at FriendsLimit.
func FriendsRecommendations(picks []FriendRating, excluded map[int]struct{}) []FriendRecommendation {
	chosen := make(map[int]bool, len(picks))
	recs := make([]FriendRecommendation, 0, len(picks))
	for _, pick := range picks {
		movie := pick.Movie
		if _, skip := excluded[movie.ID]; skip {
			continue
		}
		if chosen[movie.ID] {
			continue
		}
		chosen[movie.ID] = true

		recs = append(recs, FriendRecommendation{
			MovieID: movie.ID,
			Title:   movie.Title,
			Poster:  movie.PosterURL,
			Reason:  fmt.Sprintf("%s rated this %d/10", pick.RaterName, pick.Rating),
			Score:   pick.Rating,
		})
	}

	// The pool order already implies this, but re-sorting keeps the contract
	// independent of the upstream query.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > FriendsLimit {
		recs = recs[:FriendsLimit]
	}
	return recs
}
