package recommend

import "sort"

// FavoriteGenres ranks the genres of a user's highly rated movies (rating >=
// HighRatingMin) by occurrence count, most frequent first, truncated to topN.
// Ties keep first-encountered order, so the result is stable for a given
// snapshot. A user with no qualifying ratings gets an empty list.
func FavoriteGenres(rated []RatedMovie, topN int) []string {
	counts := make(map[string]int)
	var order []string
	for _, rm := range rated {
		if rm.Rating < HighRatingMin {
			continue
		}
		for _, genre := range rm.Movie.Genres {
			if _, seen := counts[genre]; !seen {
				order = append(order, genre)
			}
			counts[genre]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if topN > 0 && len(order) > topN {
		order = order[:topN]
	}
	return order
}

// OverlapGenres returns the deduplicated intersection of two genre lists,
// preserving the order of the first list.
func OverlapGenres(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, genre := range b {
		in[genre] = true
	}

	var overlap []string
	seen := make(map[string]bool, len(a))
	for _, genre := range a {
		if in[genre] && !seen[genre] {
			seen[genre] = true
			overlap = append(overlap, genre)
		}
	}
	return overlap
}
