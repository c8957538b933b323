package service

import (
	"context"
	"fmt"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/repository"
)

// RatingService handles business logic for ratings.
type RatingService struct {
	ratings *repository.RatingRepository
	movies  *repository.MovieRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratings *repository.RatingRepository, movies *repository.MovieRepository) *RatingService {
	return &RatingService{ratings: ratings, movies: movies}
}

// Rate creates or overwrites the user's rating of a movie.
func (s *RatingService) Rate(ctx context.Context, userID int, req models.RateRequest) (*models.Rating, error) {
	if req.Rating < 1 || req.Rating > 10 {
		return nil, fmt.Errorf("rating must be between 1 and 10: %w", models.ErrInvalid)
	}

	// The movie must exist before it can be rated.
	if _, err := s.movies.GetByID(ctx, req.MovieID); err != nil {
		return nil, err
	}

	return s.ratings.Upsert(ctx, userID, req)
}

// List returns the user's ratings with their movies.
func (s *RatingService) List(ctx context.Context, userID int) ([]models.RatingWithMovie, error) {
	return s.ratings.ListByUser(ctx, userID)
}

// Favorites returns the user's favorite-flagged ratings.
func (s *RatingService) Favorites(ctx context.Context, userID int) ([]models.RatingWithMovie, error) {
	return s.ratings.Favorites(ctx, userID)
}

// Delete removes the user's rating of a movie.
func (s *RatingService) Delete(ctx context.Context, userID, movieID int) error {
	return s.ratings.Delete(ctx, userID, movieID)
}
