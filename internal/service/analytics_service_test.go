package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
)

func ratedAt(rating int, created time.Time, genres ...string) models.RatingWithMovie {
	var item models.RatingWithMovie
	item.Rating.Rating = rating
	item.CreatedAt = created
	item.Movie.Genres = genres
	return item
}

func TestStreakDaysCountsBackFromToday(t *testing.T) {
	now := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)
	rated := []models.RatingWithMovie{
		ratedAt(8, now),
		ratedAt(7, now.AddDate(0, 0, -1)),
		ratedAt(6, now.AddDate(0, 0, -2)),
		// Gap on day -3 breaks the streak.
		ratedAt(9, now.AddDate(0, 0, -4)),
	}

	assert.Equal(t, 3, streakDays(rated, now))
}

func TestStreakDaysAllowsYesterdayStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	rated := []models.RatingWithMovie{
		ratedAt(8, now.AddDate(0, 0, -1)),
		ratedAt(7, now.AddDate(0, 0, -2)),
	}

	assert.Equal(t, 2, streakDays(rated, now))
}

func TestStreakDaysZeroWithoutRecentActivity(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	rated := []models.RatingWithMovie{ratedAt(8, now.AddDate(0, 0, -5))}

	assert.Equal(t, 0, streakDays(rated, now))
}

func TestStreakDaysPrefersWatchedDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	watched := now.AddDate(0, 0, -10)
	item := ratedAt(8, now)
	item.WatchedDate = &watched

	assert.Equal(t, 0, streakDays([]models.RatingWithMovie{item}, now))
}

func TestMonthlyStatsIncludesEmptyMonths(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	rated := []models.RatingWithMovie{
		ratedAt(8, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		ratedAt(6, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
		ratedAt(10, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)),
		// Outside the window.
		ratedAt(5, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	stats := monthlyStats(rated, now, 3)
	require.Len(t, stats, 3)

	assert.Equal(t, "2026-01", stats[0].Month)
	assert.Equal(t, 1, stats[0].Count)
	assert.Equal(t, 10.0, stats[0].AverageRating)

	assert.Equal(t, "2026-02", stats[1].Month)
	assert.Zero(t, stats[1].Count)
	assert.Zero(t, stats[1].AverageRating)

	assert.Equal(t, "2026-03", stats[2].Month)
	assert.Equal(t, 2, stats[2].Count)
	assert.Equal(t, 7.0, stats[2].AverageRating)
}

func TestTopGenresOrdersByCountThenName(t *testing.T) {
	dist := map[string]int{"Drama": 5, "Action": 3, "Comedy": 5, "Horror": 1}

	assert.Equal(t, []string{"Comedy", "Drama", "Action"}, topGenres(dist, 3))
}

func TestGenreDistribution(t *testing.T) {
	rated := []models.RatingWithMovie{
		ratedAt(8, time.Now(), "Drama", "Thriller"),
		ratedAt(6, time.Now(), "Drama"),
	}

	dist := genreDistribution(rated)
	assert.Equal(t, map[string]int{"Drama": 2, "Thriller": 1}, dist)
}

func TestAchievements(t *testing.T) {
	stats := &models.DashboardStats{
		TotalMoviesWatched: 52,
		StreakDays:         9,
		FriendsCount:       2,
		GenreDistribution:  map[string]int{"Drama": 10, "Action": 5},
	}

	earned := achievements(stats)
	assert.Contains(t, earned, "First Watch")
	assert.Contains(t, earned, "Movie Buff")
	assert.Contains(t, earned, "Film Fanatic")
	assert.NotContains(t, earned, "Century Club")
	assert.Contains(t, earned, "Week-Long Streak")
	assert.NotContains(t, earned, "Social Butterfly")
	assert.NotContains(t, earned, "Genre Explorer")
}

func TestAchievementsEmptyForNewUser(t *testing.T) {
	stats := &models.DashboardStats{GenreDistribution: map[string]int{}}

	assert.Empty(t, achievements(stats))
	assert.NotNil(t, achievements(stats))
}
