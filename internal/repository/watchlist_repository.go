package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
)

// WatchlistRepository handles database operations for watchlist items.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Add queues a movie on the user's watchlist.
func (r *WatchlistRepository) Add(ctx context.Context, userID int, req models.AddWatchlistRequest) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO watchlist_items (user_id, movie_id, priority, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, movie_id, priority, notes, added_at
	`, userID, req.MovieID, req.Priority, req.Notes).Scan(
		&item.ID, &item.UserID, &item.MovieID, &item.Priority, &item.Notes, &item.AddedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("movie already on watchlist: %w", models.ErrConflict)
		}
		return nil, fmt.Errorf("failed to add watchlist item: %w", err)
	}
	return &item, nil
}

// Update edits the priority and notes of a queued movie.
func (r *WatchlistRepository) Update(ctx context.Context, userID, movieID int, req models.UpdateWatchlistRequest) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	err := r.db.QueryRowContext(ctx, `
		UPDATE watchlist_items SET priority = $3, notes = $4
		WHERE user_id = $1 AND movie_id = $2
		RETURNING id, user_id, movie_id, priority, notes, added_at
	`, userID, movieID, req.Priority, req.Notes).Scan(
		&item.ID, &item.UserID, &item.MovieID, &item.Priority, &item.Notes, &item.AddedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("watchlist item: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update watchlist item: %w", err)
	}
	return &item, nil
}

// Remove deletes a movie from the user's watchlist.
func (r *WatchlistRepository) Remove(ctx context.Context, userID, movieID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM watchlist_items WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to remove watchlist item: %w", err)
	}
	return nil
}

// List returns the user's watchlist joined with movies, newest first.
func (r *WatchlistRepository) List(ctx context.Context, userID int) ([]models.WatchlistEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, w.user_id, w.movie_id, w.priority, w.notes, w.added_at,
			m.id, m.title, COALESCE(m.overview, ''),
			COALESCE(TO_CHAR(m.release_date, 'YYYY-MM-DD'), ''),
			m.original_language, m.runtime, m.rating, m.popularity,
			COALESCE(m.poster_path, ''), COALESCE(m.backdrop_path, ''),
			COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
		FROM watchlist_items w
		JOIN movies m ON m.id = w.movie_id
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres g ON g.id = mg.genre_id
		WHERE w.user_id = $1
		GROUP BY w.id, m.id
		ORDER BY w.added_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("watchlist query failed: %w", err)
	}
	defer rows.Close()

	entries := make([]models.WatchlistEntry, 0)
	for rows.Next() {
		var entry models.WatchlistEntry
		var posterPath, backdropPath string
		var genres pq.StringArray
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.MovieID, &entry.Priority, &entry.Notes, &entry.AddedAt,
			&entry.Movie.ID, &entry.Movie.Title, &entry.Movie.Overview,
			&entry.Movie.ReleaseDate, &entry.Movie.Language, &entry.Movie.Duration,
			&entry.Movie.Rating, &entry.Movie.Popularity, &posterPath, &backdropPath,
			&genres,
		); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist row: %w", err)
		}
		entry.Movie.PosterURL = posterURL(posterPath)
		if backdropPath != "" {
			entry.Movie.BackdropURL = models.TMDBImageBaseW780 + backdropPath
		}
		entry.Movie.Genres = []string(genres)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// MovieIDs returns the IDs of every movie on the user's watchlist.
func (r *WatchlistRepository) MovieIDs(ctx context.Context, userID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT movie_id FROM watchlist_items WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("watchlist movie IDs query failed: %w", err)
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

// Count returns how many movies are on the user's watchlist.
func (r *WatchlistRepository) Count(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM watchlist_items WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count watchlist items: %w", err)
	}
	return count, nil
}

// RecentByUsers returns recent watchlist activity for a set of users, newest
// first, for the friends activity feed.
func (r *WatchlistRepository) RecentByUsers(ctx context.Context, userIDs []int, limit int) ([]models.ActivityItem, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, u.id, COALESCE(NULLIF(u.display_name, ''), u.username),
			u.avatar, w.added_at,
			m.id, m.title, COALESCE(m.poster_path, '')
		FROM watchlist_items w
		JOIN users u ON u.id = w.user_id
		JOIN movies m ON m.id = w.movie_id
		WHERE w.user_id = ANY($1)
		ORDER BY w.added_at DESC
		LIMIT $2
	`, pq.Array(userIDs), limit)
	if err != nil {
		return nil, fmt.Errorf("recent watchlist query failed: %w", err)
	}
	defer rows.Close()

	var items []models.ActivityItem
	for rows.Next() {
		var item models.ActivityItem
		var itemID int
		var posterPath string
		if err := rows.Scan(&itemID, &item.UserID, &item.Username, &item.Avatar,
			&item.Timestamp, &item.MovieID, &item.MovieTitle, &posterPath); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		item.ID = fmt.Sprintf("watchlist-%d", itemID)
		item.Action = "added_to_watchlist"
		item.MoviePoster = posterURL(posterPath)
		items = append(items, item)
	}
	return items, rows.Err()
}
