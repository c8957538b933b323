package recommend

import (
	"math"
	"sort"
)

// JointRecommendations ranks a friend's strongest picks (ratings >=
// FriendRatingMin) for watching together. The compatibility score folds the
// movie's community rating together with a bonus per genre both users favor,
// capped at 99. Movies either user already rated must be excluded upstream
// via the exclusion set. Output is capped at JointLimit.
func JointRecommendations(friendPicks []RatedMovie, excluded map[int]struct{}, overlapGenres []string) []JointRecommendation {
	overlap := make(map[string]bool, len(overlapGenres))
	for _, genre := range overlapGenres {
		overlap[genre] = true
	}

	recs := make([]JointRecommendation, 0, len(friendPicks))
	for _, pick := range friendPicks {
		movie := pick.Movie
		if _, skip := excluded[movie.ID]; skip {
			continue
		}

		matches := 0
		for _, genre := range movie.Genres {
			if overlap[genre] {
				matches++
			}
		}

		score := int(math.Round(movie.CommunityRating*10)) + matches*GenreOverlapBonus
		if score > 99 {
			score = 99
		}

		recs = append(recs, JointRecommendation{
			MovieID:            movie.ID,
			Title:              movie.Title,
			Poster:             movie.PosterURL,
			CompatibilityScore: score,
			// Single-friend signal, not a count of mutual raters.
			MutualRaters: 1,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CompatibilityScore > recs[j].CompatibilityScore
	})

	if len(recs) > JointLimit {
		recs = recs[:JointLimit]
	}
	return recs
}
