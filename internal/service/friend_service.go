package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/recommend"
	"github.com/tobiasreicht/film-tracker-backend/internal/repository"
)

const activityFeedLimit = 30

// FriendService handles business logic for friendships and the social feed.
type FriendService struct {
	friends *repository.FriendRepository
	users   *repository.UserRepository
	ratings *repository.RatingRepository
	watch   *repository.WatchlistRepository
	movies  *repository.MovieRepository
}

// NewFriendService creates a new FriendService.
func NewFriendService(
	friends *repository.FriendRepository,
	users *repository.UserRepository,
	ratings *repository.RatingRepository,
	watch *repository.WatchlistRepository,
	movies *repository.MovieRepository,
) *FriendService {
	return &FriendService{
		friends: friends,
		users:   users,
		ratings: ratings,
		watch:   watch,
		movies:  movies,
	}
}

// Request sends a friend request. The target is identified by ID or by
// email/username lookup.
func (s *FriendService) Request(ctx context.Context, userID int, input models.FriendRequestInput) (*models.Friend, error) {
	friendID := input.FriendID
	if friendID == 0 {
		if input.Identifier == "" {
			return nil, fmt.Errorf("friend_id or identifier is required: %w", models.ErrInvalid)
		}
		target, err := s.users.GetByIdentifier(ctx, input.Identifier)
		if err != nil {
			return nil, err
		}
		friendID = target.ID
	} else {
		if _, err := s.users.GetByID(ctx, friendID); err != nil {
			return nil, err
		}
	}

	if friendID == userID {
		return nil, fmt.Errorf("cannot add yourself as a friend: %w", models.ErrInvalid)
	}

	// Reject duplicates in either direction.
	for _, pair := range [][2]int{{userID, friendID}, {friendID, userID}} {
		rel, err := s.friends.Relation(ctx, pair[0], pair[1])
		if err == nil {
			return nil, fmt.Errorf("request already %s: %w", rel.Status, models.ErrConflict)
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}

	return s.friends.Create(ctx, userID, friendID)
}

// Friends returns the user's accepted friends, each annotated with the taste
// compatibility computed from both rating snapshots.
func (s *FriendService) Friends(ctx context.Context, userID int) ([]models.FriendSummary, error) {
	summaries, err := s.friends.AcceptedRelations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return summaries, nil
	}

	mine, err := s.ratings.UserRatings(ctx, userID)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range summaries {
		g.Go(func() error {
			theirs, err := s.ratings.UserRatings(ctx, summaries[i].ID)
			if err != nil {
				return err
			}
			match := recommend.TasteMatch(mine, theirs)
			summaries[i].TasteMatch = match.Score
			summaries[i].CommonMovies = match.CommonCount
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Accept approves an incoming friend request. Only the addressee of a
// pending request may accept it.
func (s *FriendService) Accept(ctx context.Context, userID, requestID int) (*models.Friend, error) {
	rel, err := s.friends.ByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if rel.FriendID != userID {
		return nil, fmt.Errorf("friend request: %w", models.ErrNotFound)
	}
	if rel.Status != models.FriendStatusPending {
		return nil, fmt.Errorf("request already %s: %w", rel.Status, models.ErrConflict)
	}

	if err := s.friends.Accept(ctx, rel); err != nil {
		return nil, err
	}
	rel.Status = models.FriendStatusAccepted
	return rel, nil
}

// Pending returns incoming friend requests awaiting the user's decision.
func (s *FriendService) Pending(ctx context.Context, userID int) ([]models.PendingRequest, error) {
	return s.friends.Pending(ctx, userID)
}

// Remove ends a friendship in both directions.
func (s *FriendService) Remove(ctx context.Context, userID, friendID int) error {
	return s.friends.Remove(ctx, userID, friendID)
}

// Activity returns the merged recent activity of the user's friends, newest
// first.
func (s *FriendService) Activity(ctx context.Context, userID int) ([]models.ActivityItem, error) {
	friendIDs, err := s.friends.AcceptedFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.ActivityItem{}, nil
	}

	var rated, queued []models.ActivityItem
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rated, err = s.ratings.RecentByUsers(ctx, friendIDs, activityFeedLimit)
		return err
	})
	g.Go(func() error {
		var err error
		queued, err = s.watch.RecentByUsers(ctx, friendIDs, activityFeedLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	feed := append(rated, queued...)
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > activityFeedLimit {
		feed = feed[:activityFeedLimit]
	}
	return feed, nil
}

// CommonMovies returns the movies both users have rated.
func (s *FriendService) CommonMovies(ctx context.Context, userID, friendID int) ([]recommend.MovieSummary, error) {
	if _, err := s.users.GetByID(ctx, friendID); err != nil {
		return nil, err
	}

	var mine, theirs []int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mine, err = s.ratings.RatedMovieIDs(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		theirs, err = s.ratings.RatedMovieIDs(gctx, friendID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(mine))
	for _, id := range mine {
		seen[id] = struct{}{}
	}
	var common []int
	for _, id := range theirs {
		if _, ok := seen[id]; ok {
			common = append(common, id)
		}
	}
	if len(common) == 0 {
		return []recommend.MovieSummary{}, nil
	}

	return s.movies.Summaries(ctx, common)
}
