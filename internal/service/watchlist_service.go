package service

import (
	"context"
	"fmt"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/repository"
)

// WatchlistService handles business logic for watchlists.
type WatchlistService struct {
	watchlist *repository.WatchlistRepository
	movies    *repository.MovieRepository
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(watchlist *repository.WatchlistRepository, movies *repository.MovieRepository) *WatchlistService {
	return &WatchlistService{watchlist: watchlist, movies: movies}
}

// Add queues a movie on the user's watchlist.
func (s *WatchlistService) Add(ctx context.Context, userID int, req models.AddWatchlistRequest) (*models.WatchlistItem, error) {
	if req.Priority == "" {
		req.Priority = "medium"
	}
	if !models.ValidPriorities[req.Priority] {
		return nil, fmt.Errorf("invalid priority %q: %w", req.Priority, models.ErrInvalid)
	}

	if _, err := s.movies.GetByID(ctx, req.MovieID); err != nil {
		return nil, err
	}

	return s.watchlist.Add(ctx, userID, req)
}

// List returns the user's watchlist with movies.
func (s *WatchlistService) List(ctx context.Context, userID int) ([]models.WatchlistEntry, error) {
	return s.watchlist.List(ctx, userID)
}

// Update edits the priority and notes of a queued movie.
func (s *WatchlistService) Update(ctx context.Context, userID, movieID int, req models.UpdateWatchlistRequest) (*models.WatchlistItem, error) {
	if req.Priority == "" {
		req.Priority = "medium"
	}
	if !models.ValidPriorities[req.Priority] {
		return nil, fmt.Errorf("invalid priority %q: %w", req.Priority, models.ErrInvalid)
	}
	return s.watchlist.Update(ctx, userID, movieID, req)
}

// Remove deletes a movie from the user's watchlist.
func (s *WatchlistService) Remove(ctx context.Context, userID, movieID int) error {
	return s.watchlist.Remove(ctx, userID, movieID)
}
