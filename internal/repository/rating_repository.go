package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/recommend"
)

// RatingRepository handles database operations for ratings. It also produces
// the rating snapshots the recommendation engine consumes.
type RatingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new RatingRepository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert creates or overwrites the user's rating of a movie.
func (r *RatingRepository) Upsert(ctx context.Context, userID int, req models.RateRequest) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO ratings (user_id, movie_id, rating, review, watched_date, is_favorite)
		VALUES ($1, $2, $3, $4, $5::date, $6)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			review = EXCLUDED.review,
			watched_date = EXCLUDED.watched_date,
			is_favorite = EXCLUDED.is_favorite
		RETURNING id, user_id, movie_id, rating, review, watched_date, is_favorite, created_at
	`, userID, req.MovieID, req.Rating, req.Review, nullableDate(req.WatchedDate), req.IsFavorite).Scan(
		&rating.ID, &rating.UserID, &rating.MovieID, &rating.Rating,
		&rating.Review, &rating.WatchedDate, &rating.IsFavorite, &rating.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}
	return &rating, nil
}

// Delete removes the user's rating of a movie.
func (r *RatingRepository) Delete(ctx context.Context, userID, movieID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM ratings WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	return nil
}

// ListByUser returns all of a user's ratings joined with their movies,
// newest first.
func (r *RatingRepository) ListByUser(ctx context.Context, userID int) ([]models.RatingWithMovie, error) {
	return r.list(ctx, `WHERE r.user_id = $1`, userID)
}

// Favorites returns the user's favorite-flagged ratings, newest first.
func (r *RatingRepository) Favorites(ctx context.Context, userID int) ([]models.RatingWithMovie, error) {
	return r.list(ctx, `WHERE r.user_id = $1 AND r.is_favorite`, userID)
}

func (r *RatingRepository) list(ctx context.Context, where string, userID int) ([]models.RatingWithMovie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.movie_id, r.rating, r.review, r.watched_date,
			r.is_favorite, r.created_at,
			m.id, m.title, COALESCE(m.overview, ''),
			COALESCE(TO_CHAR(m.release_date, 'YYYY-MM-DD'), ''),
			m.original_language, m.runtime, m.rating, m.popularity,
			COALESCE(m.poster_path, ''), COALESCE(m.backdrop_path, ''),
			COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
		FROM ratings r
		JOIN movies m ON m.id = r.movie_id
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres g ON g.id = mg.genre_id
		`+where+`
		GROUP BY r.id, m.id
		ORDER BY r.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ratings query failed: %w", err)
	}
	defer rows.Close()

	items := make([]models.RatingWithMovie, 0)
	for rows.Next() {
		var item models.RatingWithMovie
		var posterPath, backdropPath string
		var genres pq.StringArray
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.MovieID, &item.Rating.Rating,
			&item.Review, &item.WatchedDate, &item.IsFavorite, &item.CreatedAt,
			&item.Movie.ID, &item.Movie.Title, &item.Movie.Overview,
			&item.Movie.ReleaseDate, &item.Movie.Language, &item.Movie.Duration,
			&item.Movie.Rating, &item.Movie.Popularity, &posterPath, &backdropPath,
			&genres,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		item.Movie.PosterURL = posterURL(posterPath)
		if backdropPath != "" {
			item.Movie.BackdropURL = models.TMDBImageBaseW780 + backdropPath
		}
		item.Movie.Genres = []string(genres)
		items = append(items, item)
	}
	return items, rows.Err()
}

// RatedMovieIDs returns the IDs of every movie the user rated.
func (r *RatingRepository) RatedMovieIDs(ctx context.Context, userID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT movie_id FROM ratings WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("rated movie IDs query failed: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan movie ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UserRatings returns the user's full rating snapshot for taste matching.
func (r *RatingRepository) UserRatings(ctx context.Context, userID int) ([]recommend.RatingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, movie_id, rating, created_at
		FROM ratings WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("user ratings query failed: %w", err)
	}
	defer rows.Close()

	var records []recommend.RatingRecord
	for rows.Next() {
		var rec recommend.RatingRecord
		if err := rows.Scan(&rec.UserID, &rec.MovieID, &rec.Rating, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// HighRated returns the user's ratings at or above min joined with their
// movies, strongest and newest first. A limit of 0 means unbounded.
func (r *RatingRepository) HighRated(ctx context.Context, userID, min, limit int) ([]recommend.RatedMovie, error) {
	query := `
		SELECT r.rating, m.id, m.title, COALESCE(m.poster_path, ''), m.rating,
			COALESCE(TO_CHAR(m.release_date, 'YYYY-MM-DD'), ''),
			COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
		FROM ratings r
		JOIN movies m ON m.id = r.movie_id
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres g ON g.id = mg.genre_id
		WHERE r.user_id = $1 AND r.rating >= $2
		GROUP BY r.id, m.id
		ORDER BY r.rating DESC, r.created_at DESC
	`
	args := []interface{}{userID, min}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("high rated query failed: %w", err)
	}
	defer rows.Close()

	var rated []recommend.RatedMovie
	for rows.Next() {
		var rm recommend.RatedMovie
		var posterPath string
		var genres pq.StringArray
		if err := rows.Scan(&rm.Rating, &rm.Movie.ID, &rm.Movie.Title, &posterPath,
			&rm.Movie.CommunityRating, &rm.Movie.ReleaseDate, &genres); err != nil {
			return nil, fmt.Errorf("failed to scan high rated row: %w", err)
		}
		rm.Movie.PosterURL = posterURL(posterPath)
		rm.Movie.Genres = []string(genres)
		rated = append(rated, rm)
	}
	return rated, rows.Err()
}

// HighRatedByUsers pools ratings at or above min across a set of users,
// ordered by rating desc then recency desc, with the rater's display name.
func (r *RatingRepository) HighRatedByUsers(ctx context.Context, userIDs []int, min, limit int) ([]recommend.FriendRating, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT COALESCE(NULLIF(u.display_name, ''), u.username), r.rating, r.created_at,
			m.id, m.title, COALESCE(m.poster_path, ''), m.rating,
			COALESCE(TO_CHAR(m.release_date, 'YYYY-MM-DD'), ''),
			COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		JOIN movies m ON m.id = r.movie_id
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres g ON g.id = mg.genre_id
		WHERE r.user_id = ANY($1) AND r.rating >= $2
		GROUP BY r.id, u.id, m.id
		ORDER BY r.rating DESC, r.created_at DESC
		LIMIT $3
	`, pq.Array(userIDs), min, limit)
	if err != nil {
		return nil, fmt.Errorf("pooled ratings query failed: %w", err)
	}
	defer rows.Close()

	var picks []recommend.FriendRating
	for rows.Next() {
		var pick recommend.FriendRating
		var posterPath string
		var genres pq.StringArray
		if err := rows.Scan(&pick.RaterName, &pick.Rating, &pick.CreatedAt,
			&pick.Movie.ID, &pick.Movie.Title, &posterPath,
			&pick.Movie.CommunityRating, &pick.Movie.ReleaseDate, &genres); err != nil {
			return nil, fmt.Errorf("failed to scan pooled rating row: %w", err)
		}
		pick.Movie.PosterURL = posterURL(posterPath)
		pick.Movie.Genres = []string(genres)
		picks = append(picks, pick)
	}
	return picks, rows.Err()
}

// RecentByUsers returns recent rating activity for a set of users, newest
// first, for the friends activity feed.
func (r *RatingRepository) RecentByUsers(ctx context.Context, userIDs []int, limit int) ([]models.ActivityItem, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, u.id, COALESCE(NULLIF(u.display_name, ''), u.username),
			u.avatar, r.rating, r.created_at,
			m.id, m.title, COALESCE(m.poster_path, '')
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		JOIN movies m ON m.id = r.movie_id
		WHERE r.user_id = ANY($1)
		ORDER BY r.created_at DESC
		LIMIT $2
	`, pq.Array(userIDs), limit)
	if err != nil {
		return nil, fmt.Errorf("recent ratings query failed: %w", err)
	}
	defer rows.Close()

	var items []models.ActivityItem
	for rows.Next() {
		var item models.ActivityItem
		var ratingID int
		var posterPath string
		if err := rows.Scan(&ratingID, &item.UserID, &item.Username, &item.Avatar,
			&item.Rating, &item.Timestamp, &item.MovieID, &item.MovieTitle, &posterPath); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		item.ID = fmt.Sprintf("rating-%d", ratingID)
		item.Action = "rated"
		item.MoviePoster = posterURL(posterPath)
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountByUser returns how many movies the user rated.
func (r *RatingRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ratings WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return count, nil
}
