package models

import "time"

// Rating is a user's rating of a movie. A user rates a movie at most once;
// re-rating overwrites the existing row.
type Rating struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	MovieID     int        `json:"movie_id"`
	Rating      int        `json:"rating"` // 1..10
	Review      string     `json:"review"`
	WatchedDate *time.Time `json:"watched_date,omitempty"`
	IsFavorite  bool       `json:"is_favorite"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RatingWithMovie is a rating joined with its movie for listing responses.
type RatingWithMovie struct {
	Rating
	Movie MovieDetail `json:"movie"`
}

// RateRequest is the request body for creating or updating a rating.
type RateRequest struct {
	MovieID     int    `json:"movie_id"`
	Rating      int    `json:"rating"`
	Review      string `json:"review"`
	WatchedDate string `json:"watched_date"` // YYYY-MM-DD, optional
	IsFavorite  bool   `json:"is_favorite"`
}
