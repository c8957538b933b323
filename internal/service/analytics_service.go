package service

import (
	"context"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/repository"
)

const monthlyStatsWindow = 12

// AnalyticsService computes viewing statistics from the user's ratings.
type AnalyticsService struct {
	ratings *repository.RatingRepository
	watch   *repository.WatchlistRepository
	friends *repository.FriendRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	ratings *repository.RatingRepository,
	watch *repository.WatchlistRepository,
	friends *repository.FriendRepository,
) *AnalyticsService {
	return &AnalyticsService{ratings: ratings, watch: watch, friends: friends}
}

// Dashboard aggregates the user's full stats overview.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID int) (*models.DashboardStats, error) {
	var (
		rated          []models.RatingWithMovie
		watchlistCount int
		friendsCount   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rated, err = s.ratings.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		watchlistCount, err = s.watch.Count(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		friendsCount, err = s.friends.CountAccepted(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		TotalMoviesWatched: len(rated),
		GenreDistribution:  genreDistribution(rated),
		MonthlyStats:       monthlyStats(rated, time.Now(), monthlyStatsWindow),
		StreakDays:         streakDays(rated, time.Now()),
		WatchlistCount:     watchlistCount,
		FriendsCount:       friendsCount,
	}

	if len(rated) > 0 {
		sum := 0
		for _, r := range rated {
			sum += r.Rating.Rating
		}
		stats.AverageRating = math.Round(float64(sum)/float64(len(rated))*10) / 10
	}

	stats.FavoriteGenres = topGenres(stats.GenreDistribution, 3)
	stats.Achievements = achievements(stats)
	return stats, nil
}

// Genres returns the user's genre distribution across rated movies.
func (s *AnalyticsService) Genres(ctx context.Context, userID int) (map[string]int, error) {
	rated, err := s.ratings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return genreDistribution(rated), nil
}

// Monthly returns per-month rating stats for the last months calendar months.
func (s *AnalyticsService) Monthly(ctx context.Context, userID, months int) ([]models.MonthlyStat, error) {
	if months <= 0 || months > 36 {
		months = monthlyStatsWindow
	}
	rated, err := s.ratings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return monthlyStats(rated, time.Now(), months), nil
}

func genreDistribution(rated []models.RatingWithMovie) map[string]int {
	dist := make(map[string]int)
	for _, r := range rated {
		for _, g := range r.Movie.Genres {
			dist[g]++
		}
	}
	return dist
}

func topGenres(dist map[string]int, n int) []string {
	names := make([]string, 0, len(dist))
	for name := range dist {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if dist[names[i]] != dist[names[j]] {
			return dist[names[i]] > dist[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// monthlyStats buckets ratings into the last window calendar months, oldest
// first, including empty months. The rating date is the watched date when
// recorded, the rating timestamp otherwise.
func monthlyStats(rated []models.RatingWithMovie, now time.Time, window int) []models.MonthlyStat {
	type bucket struct {
		count int
		sum   int
	}
	buckets := make(map[string]*bucket, window)
	stats := make([]models.MonthlyStat, 0, window)

	for i := window - 1; i >= 0; i-- {
		key := now.AddDate(0, -i, 0).Format("2006-01")
		buckets[key] = &bucket{}
		stats = append(stats, models.MonthlyStat{Month: key})
	}

	for _, r := range rated {
		key := ratingDate(r).Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			continue
		}
		b.count++
		b.sum += r.Rating.Rating
	}

	for i := range stats {
		b := buckets[stats[i].Month]
		stats[i].Count = b.count
		if b.count > 0 {
			stats[i].AverageRating = math.Round(float64(b.sum)/float64(b.count)*10) / 10
		}
	}
	return stats
}

// streakDays counts consecutive days with at least one rated movie, ending
// today or yesterday.
func streakDays(rated []models.RatingWithMovie, now time.Time) int {
	days := make(map[string]bool, len(rated))
	for _, r := range rated {
		days[ratingDate(r).Format("2006-01-02")] = true
	}

	day := now
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func ratingDate(r models.RatingWithMovie) time.Time {
	if r.WatchedDate != nil {
		return *r.WatchedDate
	}
	return r.CreatedAt
}

func achievements(stats *models.DashboardStats) []string {
	earned := []string{}
	milestones := []struct {
		threshold int
		name      string
	}{
		{1, "First Watch"},
		{10, "Movie Buff"},
		{50, "Film Fanatic"},
		{100, "Century Club"},
	}
	for _, m := range milestones {
		if stats.TotalMoviesWatched >= m.threshold {
			earned = append(earned, m.name)
		}
	}
	if stats.StreakDays >= 7 {
		earned = append(earned, "Week-Long Streak")
	}
	if stats.FriendsCount >= 5 {
		earned = append(earned, "Social Butterfly")
	}
	if len(stats.GenreDistribution) >= 10 {
		earned = append(earned, "Genre Explorer")
	}
	return earned
}
