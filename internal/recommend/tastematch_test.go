package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ratings(userID int, pairs map[int]int) []RatingRecord {
	out := make([]RatingRecord, 0, len(pairs))
	for movieID, value := range pairs {
		out = append(out, RatingRecord{UserID: userID, MovieID: movieID, Rating: value})
	}
	return out
}

func TestTasteMatchNoOverlap(t *testing.T) {
	a := ratings(1, map[int]int{1: 8, 2: 6})
	b := ratings(2, map[int]int{3: 7, 4: 9})

	assert.Equal(t, Match{Score: 0, CommonCount: 0}, TasteMatch(a, b))
}

func TestTasteMatchEmptyInputs(t *testing.T) {
	assert.Equal(t, Match{}, TasteMatch(nil, nil))
	assert.Equal(t, Match{}, TasteMatch(ratings(1, map[int]int{1: 5}), nil))
}

func TestTasteMatchIdenticalRatings(t *testing.T) {
	a := ratings(1, map[int]int{1: 8, 2: 6, 3: 10})
	b := ratings(2, map[int]int{1: 8, 2: 6, 3: 10})

	got := TasteMatch(a, b)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, 3, got.CommonCount)
}

func TestTasteMatchAveragesDifferences(t *testing.T) {
	// A: M1=8, M2=6. B: M1=6, M2=9, M3=7. Common {M1,M2}, diffs {2,3},
	// avg 2.5, score round(100-25) = 75.
	a := ratings(1, map[int]int{1: 8, 2: 6})
	b := ratings(2, map[int]int{1: 6, 2: 9, 3: 7})

	got := TasteMatch(a, b)
	assert.Equal(t, 75, got.Score)
	assert.Equal(t, 2, got.CommonCount)
}

func TestTasteMatchSymmetric(t *testing.T) {
	a := ratings(1, map[int]int{1: 8, 2: 6, 5: 3})
	b := ratings(2, map[int]int{1: 6, 2: 9, 3: 7, 5: 10})

	assert.Equal(t, TasteMatch(a, b), TasteMatch(b, a))
}

func TestTasteMatchFloorAtMaximumDisagreement(t *testing.T) {
	// Worst possible disagreement on every common movie: avg diff 9 maps to
	// score 10, never below zero.
	a := ratings(1, map[int]int{1: 1, 2: 10})
	b := ratings(2, map[int]int{1: 10, 2: 1})

	got := TasteMatch(a, b)
	assert.Equal(t, 10, got.Score)
	assert.Equal(t, 2, got.CommonCount)
}

func TestTasteMatchDeterministic(t *testing.T) {
	a := ratings(1, map[int]int{1: 4, 2: 7, 3: 9})
	b := ratings(2, map[int]int{2: 5, 3: 9, 4: 2})

	first := TasteMatch(a, b)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, TasteMatch(a, b))
	}
}
