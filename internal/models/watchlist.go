package models

import "time"

// WatchlistItem is a movie a user queued to watch later.
type WatchlistItem struct {
	ID       int       `json:"id"`
	UserID   int       `json:"user_id"`
	MovieID  int       `json:"movie_id"`
	Priority string    `json:"priority"` // high, medium, low
	Notes    string    `json:"notes"`
	AddedAt  time.Time `json:"added_at"`
}

// WatchlistEntry is a watchlist item joined with its movie.
type WatchlistEntry struct {
	WatchlistItem
	Movie MovieDetail `json:"movie"`
}

// AddWatchlistRequest is the request body for queueing a movie.
type AddWatchlistRequest struct {
	MovieID  int    `json:"movie_id"`
	Priority string `json:"priority"`
	Notes    string `json:"notes"`
}

// UpdateWatchlistRequest is the request body for editing a queued movie.
type UpdateWatchlistRequest struct {
	Priority string `json:"priority"`
	Notes    string `json:"notes"`
}

// ValidPriorities are the accepted watchlist priorities.
var ValidPriorities = map[string]bool{
	"high":   true,
	"medium": true,
	"low":    true,
}
