package recommend

import "math"

// TasteMatch computes a symmetric 0-100 compatibility score from two users'
// rating snapshots. Only movies both users rated contribute: the average
// absolute rating difference maps to a percentage, so identical taste over a
// shared set scores 100 and zero overlap scores 0.
func TasteMatch(a, b []RatingRecord) Match {
	byMovie := make(map[int]int, len(a))
	for _, r := range a {
		byMovie[r.MovieID] = r.Rating
	}

	var common, diffSum int
	for _, r := range b {
		own, ok := byMovie[r.MovieID]
		if !ok {
			continue
		}
		common++
		d := own - r.Rating
		if d < 0 {
			d = -d
		}
		diffSum += d
	}

	if common == 0 {
		return Match{}
	}

	avgDiff := float64(diffSum) / float64(common)
	score := int(math.Round(100 - avgDiff*10))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Match{Score: score, CommonCount: common}
}
