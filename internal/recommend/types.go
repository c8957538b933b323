package recommend

import "time"

// RatingRecord is one user's rating of one movie.
type RatingRecord struct {
	UserID    int
	MovieID   int
	Rating    int // 1..10
	CreatedAt time.Time
}

// MovieSummary is the catalog snapshot the rankers score against.
type MovieSummary struct {
	ID              int
	Title           string
	PosterURL       string
	Genres          []string
	CommunityRating float64 // 0..10
	ReleaseDate     string
}

// RatedMovie couples a rating value with the movie it applies to.
type RatedMovie struct {
	Rating int
	Movie  MovieSummary
}

// FriendRating is a friend's rating of a movie, carrying the rater's display
// name so the recommendation can say who vouched for it.
type FriendRating struct {
	RaterName string
	Rating    int
	CreatedAt time.Time
	Movie     MovieSummary
}

// Match is the taste-compatibility result for a pair of users.
type Match struct {
	Score       int `json:"tasteMatch"`
	CommonCount int `json:"commonMovies"`
}

// PersonalRecommendation is one entry of a single-user recommendation list.
type PersonalRecommendation struct {
	MovieID int     `json:"movieId"`
	Title   string  `json:"title"`
	Poster  string  `json:"poster"`
	Score   float64 `json:"score"`
	Reason  string  `json:"reason"`
}

// JointRecommendation is one entry of a watch-together list for two users.
type JointRecommendation struct {
	MovieID            int    `json:"movieId"`
	Title              string `json:"title"`
	Poster             string `json:"poster"`
	CompatibilityScore int    `json:"compatibilityScore"`
	MutualRaters       int    `json:"mutualRaters"`
}

// FriendRecommendation is one entry of the friends-sourced list.
type FriendRecommendation struct {
	MovieID int    `json:"movieId"`
	Title   string `json:"title"`
	Poster  string `json:"poster"`
	Reason  string `json:"reason"`
	Score   int    `json:"score"`
}
