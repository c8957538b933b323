package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/recommend"
)

// Snapshot sources the recommendation engine reads through. Repository
// failures propagate unchanged; the service performs no retries since every
// computation is idempotent and recomputed per request.

// UserSource resolves users for existence checks.
type UserSource interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// RatingSource provides per-user rating snapshots.
type RatingSource interface {
	UserRatings(ctx context.Context, userID int) ([]recommend.RatingRecord, error)
	RatedMovieIDs(ctx context.Context, userID int) ([]int, error)
	HighRated(ctx context.Context, userID, min, limit int) ([]recommend.RatedMovie, error)
	HighRatedByUsers(ctx context.Context, userIDs []int, min, limit int) ([]recommend.FriendRating, error)
}

// WatchlistSource provides watchlist membership snapshots.
type WatchlistSource interface {
	MovieIDs(ctx context.Context, userID int) ([]int, error)
}

// CatalogSource provides the bounded candidate pool.
type CatalogSource interface {
	TopRated(ctx context.Context, limit int) ([]recommend.MovieSummary, error)
}

// FriendSource resolves the accepted friend set.
type FriendSource interface {
	AcceptedFriendIDs(ctx context.Context, userID int) ([]int, error)
}

// RecommendationService fetches repository snapshots and runs the ranking
// engine over them. It holds no state between requests.
type RecommendationService struct {
	users   UserSource
	ratings RatingSource
	watch   WatchlistSource
	catalog CatalogSource
	friends FriendSource
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(users UserSource, ratings RatingSource, watch WatchlistSource, catalog CatalogSource, friends FriendSource) *RecommendationService {
	return &RecommendationService{
		users:   users,
		ratings: ratings,
		watch:   watch,
		catalog: catalog,
		friends: friends,
	}
}

// TasteMatch computes the compatibility score between two users.
func (s *RecommendationService) TasteMatch(ctx context.Context, userID, friendID int) (recommend.Match, error) {
	if err := s.ensureUsers(ctx, userID, friendID); err != nil {
		return recommend.Match{}, err
	}

	var own, theirs []recommend.RatingRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		own, err = s.ratings.UserRatings(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		theirs, err = s.ratings.UserRatings(gctx, friendID)
		return err
	})
	if err := g.Wait(); err != nil {
		return recommend.Match{}, fmt.Errorf("fetch rating snapshots: %w", err)
	}

	return recommend.TasteMatch(own, theirs), nil
}

// Personal returns ranked recommendations for a single user.
func (s *RecommendationService) Personal(ctx context.Context, userID, limit int) ([]recommend.PersonalRecommendation, error) {
	if limit <= 0 {
		limit = recommend.PersonalDefaultLimit
	}
	if limit > 50 {
		limit = 50
	}

	if err := s.ensureUsers(ctx, userID); err != nil {
		return nil, err
	}

	var (
		ratedIDs, watchIDs []int
		highRated          []recommend.RatedMovie
		candidates         []recommend.MovieSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ratedIDs, err = s.ratings.RatedMovieIDs(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		watchIDs, err = s.watch.MovieIDs(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		highRated, err = s.ratings.HighRated(gctx, userID, recommend.HighRatingMin, 0)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = s.catalog.TopRated(gctx, recommend.CandidatePoolSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch recommendation snapshots: %w", err)
	}

	favorites := recommend.FavoriteGenres(highRated, recommend.FavoriteGenreCount)
	excluded := recommend.ExclusionSet(ratedIDs, watchIDs)
	return recommend.PersonalRecommendations(candidates, excluded, favorites, limit), nil
}

// Joint returns ranked watch-together recommendations for a user and one of
// their friends.
func (s *RecommendationService) Joint(ctx context.Context, userID, friendID int) ([]recommend.JointRecommendation, error) {
	if err := s.ensureUsers(ctx, userID, friendID); err != nil {
		return nil, err
	}

	var (
		myRatedIDs, friendRatedIDs []int
		myHigh, friendHigh         []recommend.RatedMovie
		friendPicks                []recommend.RatedMovie
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		myRatedIDs, err = s.ratings.RatedMovieIDs(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		friendRatedIDs, err = s.ratings.RatedMovieIDs(gctx, friendID)
		return err
	})
	g.Go(func() error {
		var err error
		myHigh, err = s.ratings.HighRated(gctx, userID, recommend.HighRatingMin, 0)
		return err
	})
	g.Go(func() error {
		var err error
		friendHigh, err = s.ratings.HighRated(gctx, friendID, recommend.HighRatingMin, 0)
		return err
	})
	g.Go(func() error {
		var err error
		friendPicks, err = s.ratings.HighRated(gctx, friendID, recommend.FriendRatingMin, recommend.FriendPoolSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch joint snapshots: %w", err)
	}

	overlap := recommend.OverlapGenres(
		recommend.FavoriteGenres(myHigh, recommend.FavoriteGenreCount),
		recommend.FavoriteGenres(friendHigh, recommend.FavoriteGenreCount),
	)
	excluded := recommend.ExclusionSet(myRatedIDs, friendRatedIDs)
	return recommend.JointRecommendations(friendPicks, excluded, overlap), nil
}

// FromFriends aggregates high ratings across all accepted friends into a
// deduplicated recommendation list. A user with no friends gets an empty
// list without any rating queries.
func (s *RecommendationService) FromFriends(ctx context.Context, userID int) ([]recommend.FriendRecommendation, error) {
	if err := s.ensureUsers(ctx, userID); err != nil {
		return nil, err
	}

	friendIDs, err := s.friends.AcceptedFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch friend set: %w", err)
	}
	if len(friendIDs) == 0 {
		return []recommend.FriendRecommendation{}, nil
	}

	var (
		ratedIDs, watchIDs []int
		picks              []recommend.FriendRating
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ratedIDs, err = s.ratings.RatedMovieIDs(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		watchIDs, err = s.watch.MovieIDs(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		picks, err = s.ratings.HighRatedByUsers(gctx, friendIDs, recommend.FriendRatingMin, recommend.FriendsFeedPoolSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch friends feed snapshots: %w", err)
	}

	return recommend.FriendsRecommendations(picks, recommend.ExclusionSet(ratedIDs, watchIDs)), nil
}

// ensureUsers fails with ErrNotFound if any referenced user is missing. A
// friend with zero ratings is fine; a friend that does not exist is not.
func (s *RecommendationService) ensureUsers(ctx context.Context, userIDs ...int) error {
	for _, id := range userIDs {
		exists, err := s.users.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check user %d: %w", id, err)
		}
		if !exists {
			return fmt.Errorf("user %d: %w", id, models.ErrNotFound)
		}
	}
	return nil
}
