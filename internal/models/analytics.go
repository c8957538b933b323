package models

// MonthlyStat aggregates a user's ratings for one calendar month.
type MonthlyStat struct {
	Month         string  `json:"month"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}

// DashboardStats is the analytics dashboard response.
type DashboardStats struct {
	TotalMoviesWatched int            `json:"totalMoviesWatched"`
	AverageRating      float64        `json:"averageRating"`
	FavoriteGenres     []string       `json:"favoriteGenres"`
	GenreDistribution  map[string]int `json:"genreDistribution"`
	MonthlyStats       []MonthlyStat  `json:"monthlyStats"`
	StreakDays         int            `json:"streakDays"`
	WatchlistCount     int            `json:"watchlistCount"`
	FriendsCount       int            `json:"friendsCount"`
	Achievements       []string       `json:"achievements"`
}
