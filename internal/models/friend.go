package models

import "time"

// Friend is one direction of a friendship relation. Accepting a request
// upserts the reciprocal row, so accepted friendships exist in both
// directions.
type Friend struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	FriendID  int       `json:"friend_id"`
	Status    string    `json:"status"` // pending, accepted
	CreatedAt time.Time `json:"created_at"`
}

// Friendship statuses.
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// FriendRequestInput identifies the user to befriend, either directly by ID
// or by email/username lookup.
type FriendRequestInput struct {
	FriendID   int    `json:"friend_id"`
	Identifier string `json:"identifier"`
}

// FriendSummary is an accepted friend annotated with taste compatibility.
type FriendSummary struct {
	ID           int    `json:"id"`
	RelationID   int    `json:"relation_id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Avatar       string `json:"avatar"`
	TasteMatch   int    `json:"tasteMatch"`
	CommonMovies int    `json:"commonMovies"`
	Status       string `json:"status"`
}

// PendingRequest is an incoming friend request awaiting a decision.
type PendingRequest struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityItem is one entry of the friends activity feed.
type ActivityItem struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	Username    string    `json:"username"`
	Avatar      string    `json:"avatar"`
	Action      string    `json:"action"` // rated, added_to_watchlist
	MovieID     int       `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	MoviePoster string    `json:"movie_poster"`
	Rating      int       `json:"rating,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
