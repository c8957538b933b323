package recommend

import (
	"sort"
	"strings"
)

// PersonalRecommendations scores catalog candidates for a single user:
// community rating plus GenreMatchWeight per candidate genre that appears in
// the user's favorites. Candidates in the exclusion set (already rated or
// queued) never appear in the output. The candidate slice is expected to be
// pre-sorted by community rating desc, release date desc; the stable sort
// keeps that order among equal final scores.
func PersonalRecommendations(candidates []MovieSummary, excluded map[int]struct{}, favoriteGenres []string, limit int) []PersonalRecommendation {
	favs := make(map[string]bool, len(favoriteGenres))
	for _, genre := range favoriteGenres {
		favs[genre] = true
	}

	recs := make([]PersonalRecommendation, 0, len(candidates))
	for _, movie := range candidates {
		if _, skip := excluded[movie.ID]; skip {
			continue
		}

		var matching []string
		for _, genre := range movie.Genres {
			if favs[genre] {
				matching = append(matching, genre)
			}
		}

		reason := "Highly rated by community"
		if len(matching) > 0 {
			reason = "Matches your favorite genres: " + strings.Join(matching, ", ")
		}

		recs = append(recs, PersonalRecommendation{
			MovieID: movie.ID,
			Title:   movie.Title,
			Poster:  movie.PosterURL,
			Score:   movie.CommunityRating + float64(len(matching))*GenreMatchWeight,
			Reason:  reason,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
