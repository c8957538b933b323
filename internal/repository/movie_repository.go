package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/recommend"
)

// MovieRepository handles database operations for movies.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// UpsertGenre inserts or updates a genre.
func (r *MovieRepository) UpsertGenre(ctx context.Context, tmdbID int, name string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO genres (tmdb_id, name)
		VALUES ($1, $2)
		ON CONFLICT (tmdb_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, tmdbID, name).Scan(&id)
	return id, err
}

// UpsertMovie inserts or updates a movie.
func (r *MovieRepository) UpsertMovie(ctx context.Context, m *models.Movie) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO movies (tmdb_id, title, overview, release_date, rating, popularity,
			poster_path, backdrop_path, original_language, runtime, updated_at)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tmdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			overview = EXCLUDED.overview,
			release_date = EXCLUDED.release_date,
			rating = EXCLUDED.rating,
			popularity = EXCLUDED.popularity,
			poster_path = EXCLUDED.poster_path,
			backdrop_path = EXCLUDED.backdrop_path,
			original_language = EXCLUDED.original_language,
			runtime = EXCLUDED.runtime,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`, m.TMDBId, m.Title, m.Overview, nullableDate(m.ReleaseDate),
		m.Rating, m.Popularity, m.PosterPath, m.BackdropPath,
		m.OriginalLanguage, m.Runtime, time.Now()).Scan(&id)
	return id, err
}

// LinkMovieGenre creates the movie-genre association.
func (r *MovieRepository) LinkMovieGenre(ctx context.Context, movieID, genreID int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO movie_genres (movie_id, genre_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, movieID, genreID)
	return err
}

// ClearMovieGenres removes all genre links for a movie.
func (r *MovieRepository) ClearMovieGenres(ctx context.Context, movieID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID)
	return err
}

// GetGenreIDByTMDBId returns the internal genre ID for a TMDB genre ID.
func (r *MovieRepository) GetGenreIDByTMDBId(ctx context.Context, tmdbID int) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `SELECT id FROM genres WHERE tmdb_id = $1`, tmdbID).Scan(&id)
	return id, err
}

// List returns a paginated list of movies matching the given filters.
func (r *MovieRepository) List(ctx context.Context, params models.MovieListParams) (*models.MovieListResponse, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if params.ReleaseDateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("m.release_date >= $%d::date", argIdx))
		args = append(args, params.ReleaseDateFrom)
		argIdx++
	}
	if params.ReleaseDateTo != "" {
		conditions = append(conditions, fmt.Sprintf("m.release_date <= $%d::date", argIdx))
		args = append(args, params.ReleaseDateTo)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Validate sort column to prevent SQL injection
	sortColumn := "rating"
	switch params.SortBy {
	case "release_date":
		sortColumn = "release_date"
	case "title":
		sortColumn = "title"
	case "popularity":
		sortColumn = "popularity"
	case "rating":
		sortColumn = "rating"
	}
	orderDir := "DESC"
	if params.Order == "asc" {
		orderDir = "ASC"
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM movies m WHERE %s", whereClause)
	var totalResults int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalResults); err != nil {
		return nil, fmt.Errorf("count query failed: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	totalPages := 0
	if totalResults > 0 {
		totalPages = (totalResults + params.PageSize - 1) / params.PageSize
	}

	listQuery := fmt.Sprintf(`
		SELECT m.id, m.title,
			COALESCE(TO_CHAR(m.release_date, 'YYYY-MM-DD'), '') as release_date,
			m.rating, m.popularity, COALESCE(m.poster_path, '') as poster_path
		FROM movies m
		WHERE %s
		ORDER BY m.%s %s NULLS LAST
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, orderDir, argIdx, argIdx+1)

	args = append(args, params.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	items := make([]models.MovieListItem, 0)
	for rows.Next() {
		var item models.MovieListItem
		var posterPath string
		if err := rows.Scan(&item.ID, &item.Title, &item.ReleaseDate, &item.Rating, &item.Popularity, &posterPath); err != nil {
			slog.Error("failed to scan movie row", "error", err)
			continue
		}
		item.PosterURL = posterURL(posterPath)
		items = append(items, item)
	}

	return &models.MovieListResponse{
		Page:         params.Page,
		PageSize:     params.PageSize,
		TotalPages:   totalPages,
		TotalResults: totalResults,
		Data:         items,
	}, nil
}

// GetByID returns detailed movie information by internal ID.
func (r *MovieRepository) GetByID(ctx context.Context, id int) (*models.MovieDetail, error) {
	var detail models.MovieDetail
	var posterPath, backdropPath string
	var genres pq.StringArray

	err := r.db.QueryRowContext(ctx, `
		SELECT m.id, m.title, COALESCE(m.overview, ''),
			COALESCE(TO_CHAR(m.release_date, 'YYYY-MM-DD'), ''),
			m.original_language, m.runtime, m.rating, m.popularity,
			COALESCE(m.poster_path, ''), COALESCE(m.backdrop_path, ''),
			COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
		FROM movies m
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres g ON g.id = mg.genre_id
		WHERE m.id = $1
		GROUP BY m.id
	`, id).Scan(
		&detail.ID, &detail.Title, &detail.Overview,
		&detail.ReleaseDate, &detail.Language, &detail.Duration,
		&detail.Rating, &detail.Popularity, &posterPath, &backdropPath,
		&genres,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movie: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	detail.PosterURL = posterURL(posterPath)
	if backdropPath != "" {
		detail.BackdropURL = models.TMDBImageBaseW780 + backdropPath
	}
	detail.Genres = []string(genres)

	return &detail, nil
}

// TopRated returns the candidate pool for personal recommendations: the top
// movies by community rating, ties broken by newest release first.
func (r *MovieRepository) TopRated(ctx context.Context, limit int) ([]recommend.MovieSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.title, COALESCE(m.poster_path, ''), m.rating,
			COALESCE(TO_CHAR(m.release_date, 'YYYY-MM-DD'), ''),
			COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
		FROM movies m
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres g ON g.id = mg.genre_id
		GROUP BY m.id
		ORDER BY m.rating DESC, m.release_date DESC NULLS LAST
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top rated query failed: %w", err)
	}
	defer rows.Close()

	var movies []recommend.MovieSummary
	for rows.Next() {
		var m recommend.MovieSummary
		var posterPath string
		var genres pq.StringArray
		if err := rows.Scan(&m.ID, &m.Title, &posterPath, &m.CommunityRating, &m.ReleaseDate, &genres); err != nil {
			return nil, fmt.Errorf("failed to scan top rated row: %w", err)
		}
		m.PosterURL = posterURL(posterPath)
		m.Genres = []string(genres)
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// Summaries returns catalog snapshots for a set of movie IDs.
func (r *MovieRepository) Summaries(ctx context.Context, ids []int) ([]recommend.MovieSummary, error) {
	if len(ids) == 0 {
		return []recommend.MovieSummary{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.title, COALESCE(m.poster_path, ''), m.rating,
			COALESCE(TO_CHAR(m.release_date, 'YYYY-MM-DD'), ''),
			COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
		FROM movies m
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres g ON g.id = mg.genre_id
		WHERE m.id = ANY($1)
		GROUP BY m.id
		ORDER BY m.title
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("summaries query failed: %w", err)
	}
	defer rows.Close()

	movies := make([]recommend.MovieSummary, 0, len(ids))
	for rows.Next() {
		var m recommend.MovieSummary
		var posterPath string
		var genres pq.StringArray
		if err := rows.Scan(&m.ID, &m.Title, &posterPath, &m.CommunityRating, &m.ReleaseDate, &genres); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		m.PosterURL = posterURL(posterPath)
		m.Genres = []string(genres)
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return models.TMDBImageBaseW500 + path
}

func nullableDate(dateStr string) interface{} {
	if dateStr == "" {
		return nil
	}
	return dateStr
}
