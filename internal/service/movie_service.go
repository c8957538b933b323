package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/repository"
	"github.com/tobiasreicht/film-tracker-backend/internal/tmdb"
)

const (
	movieListCacheTTL   = 5 * time.Minute
	movieDetailCacheTTL = 30 * time.Minute
)

// MovieService handles business logic for the movie catalog. Catalog reads
// are cached in Redis; recommendation output never is.
type MovieService struct {
	repo       *repository.MovieRepository
	tmdbClient *tmdb.Client
	redis      *redis.Client
}

// NewMovieService creates a new MovieService.
func NewMovieService(repo *repository.MovieRepository, tmdbClient *tmdb.Client, rdb *redis.Client) *MovieService {
	return &MovieService{
		repo:       repo,
		tmdbClient: tmdbClient,
		redis:      rdb,
	}
}

// Sync fetches movies from TMDB and stores them in PostgreSQL.
func (s *MovieService) Sync(ctx context.Context, pages int) (int, error) {
	slog.Info("starting TMDB sync", "pages", pages)

	// First, sync genres
	genres, err := s.tmdbClient.GetGenres()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch TMDB genres: %w", err)
	}
	for _, g := range genres {
		if _, err := s.repo.UpsertGenre(ctx, g.ID, g.Name); err != nil {
			slog.Error("failed to upsert genre", "genre", g.Name, "error", err)
		}
	}
	slog.Info("synced genres", "count", len(genres))

	// Then, sync movies from discover endpoint
	totalSynced := 0
	for page := 1; page <= pages; page++ {
		result, err := s.tmdbClient.DiscoverMovies(page)
		if err != nil {
			slog.Error("failed to fetch TMDB page", "page", page, "error", err)
			continue
		}

		for _, tmdbMovie := range result.Results {
			movie := &models.Movie{
				TMDBId:           tmdbMovie.ID,
				Title:            tmdbMovie.Title,
				Overview:         tmdbMovie.Overview,
				ReleaseDate:      tmdbMovie.ReleaseDate,
				Rating:           tmdbMovie.VoteAverage,
				Popularity:       tmdbMovie.Popularity,
				PosterPath:       tmdbMovie.PosterPath,
				BackdropPath:     tmdbMovie.BackdropPath,
				OriginalLanguage: tmdbMovie.OriginalLanguage,
			}

			movieID, err := s.repo.UpsertMovie(ctx, movie)
			if err != nil {
				slog.Error("failed to upsert movie", "title", movie.Title, "error", err)
				continue
			}

			// Clear existing genre links and re-create
			_ = s.repo.ClearMovieGenres(ctx, movieID)
			for _, genreID := range tmdbMovie.GenreIDs {
				internalGenreID, err := s.repo.GetGenreIDByTMDBId(ctx, genreID)
				if err != nil {
					continue
				}
				_ = s.repo.LinkMovieGenre(ctx, movieID, internalGenreID)
			}

			totalSynced++
		}

		slog.Info("synced page", "page", page, "movies", len(result.Results))
	}

	// Invalidate Redis cache after sync
	s.invalidateCache()

	slog.Info("TMDB sync completed", "total_synced", totalSynced)
	return totalSynced, nil
}

// List returns a paginated list of movies.
func (s *MovieService) List(ctx context.Context, params models.MovieListParams) (*models.MovieListResponse, error) {
	params.Validate()

	cacheKey := fmt.Sprintf("movies:list:%d:%d:%s:%s:%s:%s",
		params.Page, params.PageSize, params.SortBy, params.Order,
		params.ReleaseDateFrom, params.ReleaseDateTo)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var result models.MovieListResponse
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return &result, nil
		}
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	if data, err := json.Marshal(result); err == nil {
		s.setCache(ctx, cacheKey, string(data), movieListCacheTTL)
	}

	return result, nil
}

// GetDetail returns detailed movie info by ID.
func (s *MovieService) GetDetail(ctx context.Context, id int) (*models.MovieDetail, error) {
	cacheKey := fmt.Sprintf("movie:detail:%d", id)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var result models.MovieDetail
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return &result, nil
		}
	}

	detail, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(detail); err == nil {
		s.setCache(ctx, cacheKey, string(data), movieDetailCacheTTL)
	}

	return detail, nil
}

// ---- Redis Helpers ----

func (s *MovieService) getFromCache(ctx context.Context, key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(ctx, key).Result()
}

func (s *MovieService) setCache(ctx context.Context, key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (s *MovieService) invalidateCache() {
	if s.redis == nil {
		return
	}
	ctx := context.Background()
	for _, pattern := range []string{"movies:*", "movie:*"} {
		iter := s.redis.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			s.redis.Del(ctx, iter.Val())
		}
	}
	slog.Info("Redis cache invalidated")
}
