package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/recommend"
)

type fakeUsers struct {
	known map[int]bool
}

func (f *fakeUsers) Exists(_ context.Context, id int) (bool, error) {
	return f.known[id], nil
}

type fakeRatings struct {
	byUser       map[int][]recommend.RatingRecord
	ratedIDs     map[int][]int
	highRated    map[int][]recommend.RatedMovie
	pooled       []recommend.FriendRating
	err          error
	pooledCalls  int
	ratingsCalls int
}

func (f *fakeRatings) UserRatings(_ context.Context, userID int) ([]recommend.RatingRecord, error) {
	f.ratingsCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeRatings) RatedMovieIDs(_ context.Context, userID int) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ratedIDs[userID], nil
}

func (f *fakeRatings) HighRated(_ context.Context, userID, min, limit int) ([]recommend.RatedMovie, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []recommend.RatedMovie
	for _, rm := range f.highRated[userID] {
		if rm.Rating >= min {
			out = append(out, rm)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRatings) HighRatedByUsers(_ context.Context, _ []int, _, _ int) ([]recommend.FriendRating, error) {
	f.pooledCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pooled, nil
}

type fakeWatchlist struct {
	ids map[int][]int
}

func (f *fakeWatchlist) MovieIDs(_ context.Context, userID int) ([]int, error) {
	return f.ids[userID], nil
}

type fakeCatalog struct {
	movies []recommend.MovieSummary
}

func (f *fakeCatalog) TopRated(_ context.Context, limit int) ([]recommend.MovieSummary, error) {
	if len(f.movies) > limit {
		return f.movies[:limit], nil
	}
	return f.movies, nil
}

type fakeFriends struct {
	ids map[int][]int
}

func (f *fakeFriends) AcceptedFriendIDs(_ context.Context, userID int) ([]int, error) {
	return f.ids[userID], nil
}

func newTestService(ratings *fakeRatings, watch *fakeWatchlist, catalog *fakeCatalog, friends *fakeFriends, knownUsers ...int) *RecommendationService {
	known := make(map[int]bool, len(knownUsers))
	for _, id := range knownUsers {
		known[id] = true
	}
	if watch == nil {
		watch = &fakeWatchlist{}
	}
	if catalog == nil {
		catalog = &fakeCatalog{}
	}
	if friends == nil {
		friends = &fakeFriends{}
	}
	return NewRecommendationService(&fakeUsers{known: known}, ratings, watch, catalog, friends)
}

func TestTasteMatchUnknownUser(t *testing.T) {
	svc := newTestService(&fakeRatings{}, nil, nil, nil, 1)

	_, err := svc.TasteMatch(context.Background(), 1, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTasteMatchCombinesSnapshots(t *testing.T) {
	ratings := &fakeRatings{byUser: map[int][]recommend.RatingRecord{
		1: {{UserID: 1, MovieID: 10, Rating: 8}, {UserID: 1, MovieID: 11, Rating: 6}},
		2: {{UserID: 2, MovieID: 10, Rating: 6}, {UserID: 2, MovieID: 11, Rating: 9}},
	}}
	svc := newTestService(ratings, nil, nil, nil, 1, 2)

	match, err := svc.TasteMatch(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 75, match.Score)
	assert.Equal(t, 2, match.CommonCount)
}

func TestPersonalExcludesRatedAndWatchlisted(t *testing.T) {
	ratings := &fakeRatings{
		ratedIDs: map[int][]int{1: {100}},
		highRated: map[int][]recommend.RatedMovie{1: {
			{Rating: 9, Movie: recommend.MovieSummary{ID: 100, Genres: []string{"Drama"}}},
		}},
	}
	watch := &fakeWatchlist{ids: map[int][]int{1: {101}}}
	catalog := &fakeCatalog{movies: []recommend.MovieSummary{
		{ID: 100, Title: "Rated", CommunityRating: 9, Genres: []string{"Drama"}},
		{ID: 101, Title: "Queued", CommunityRating: 8.5, Genres: []string{"Drama"}},
		{ID: 102, Title: "Fresh", CommunityRating: 7, Genres: []string{"Drama"}},
	}}
	svc := newTestService(ratings, watch, catalog, nil, 1)

	recs, err := svc.Personal(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 102, recs[0].MovieID)
	assert.InDelta(t, 7.7, recs[0].Score, 1e-9)
	assert.Equal(t, "Matches your favorite genres: Drama", recs[0].Reason)
}

func TestPersonalDefaultsAndClampsLimit(t *testing.T) {
	catalog := &fakeCatalog{}
	for i := 1; i <= 60; i++ {
		catalog.movies = append(catalog.movies, recommend.MovieSummary{ID: i, CommunityRating: 5})
	}
	svc := newTestService(&fakeRatings{}, nil, catalog, nil, 1)

	recs, err := svc.Personal(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, recs, recommend.PersonalDefaultLimit)

	recs, err = svc.Personal(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.Len(t, recs, 50)
}

func TestJointScoresFriendPicks(t *testing.T) {
	ratings := &fakeRatings{
		highRated: map[int][]recommend.RatedMovie{
			1: {{Rating: 9, Movie: recommend.MovieSummary{ID: 10, Genres: []string{"Sci-Fi", "Thriller"}}}},
			2: {
				{Rating: 9, Movie: recommend.MovieSummary{ID: 11, Genres: []string{"Sci-Fi", "Thriller"}}},
				{Rating: 8, Movie: recommend.MovieSummary{ID: 12, Title: "Pick", CommunityRating: 7.3, Genres: []string{"Sci-Fi", "Thriller"}}},
			},
		},
		ratedIDs: map[int][]int{1: {10}, 2: {11}},
	}
	svc := newTestService(ratings, nil, nil, nil, 1, 2)

	recs, err := svc.Joint(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 12, recs[0].MovieID)
	// 7.3*10 rounded = 73, plus two overlapping genres at 8 each.
	assert.Equal(t, 89, recs[0].CompatibilityScore)
	assert.Equal(t, 1, recs[0].MutualRaters)
}

func TestFromFriendsWithoutFriendsSkipsRatingQueries(t *testing.T) {
	ratings := &fakeRatings{pooled: []recommend.FriendRating{
		{RaterName: "ghost", Rating: 9, Movie: recommend.MovieSummary{ID: 10}},
	}}
	svc := newTestService(ratings, nil, nil, &fakeFriends{}, 1)

	recs, err := svc.FromFriends(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NotNil(t, recs)
	assert.Zero(t, ratings.pooledCalls)
}

func TestFromFriendsDeduplicatesAndAttributes(t *testing.T) {
	now := time.Now()
	ratings := &fakeRatings{pooled: []recommend.FriendRating{
		{RaterName: "anna", Rating: 9, CreatedAt: now, Movie: recommend.MovieSummary{ID: 10, Title: "Shared"}},
		{RaterName: "ben", Rating: 8, CreatedAt: now, Movie: recommend.MovieSummary{ID: 10, Title: "Shared"}},
		{RaterName: "ben", Rating: 8, CreatedAt: now, Movie: recommend.MovieSummary{ID: 11, Title: "Solo"}},
	}}
	friends := &fakeFriends{ids: map[int][]int{1: {2, 3}}}
	svc := newTestService(ratings, nil, nil, friends, 1)

	recs, err := svc.FromFriends(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "anna rated this 9/10", recs[0].Reason)
	assert.Equal(t, "ben rated this 8/10", recs[1].Reason)
}

func TestSnapshotErrorsPropagate(t *testing.T) {
	boom := errors.New("db down")
	ratings := &fakeRatings{err: boom}
	svc := newTestService(ratings, nil, nil, &fakeFriends{ids: map[int][]int{1: {2}}}, 1, 2)

	_, err := svc.TasteMatch(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Personal(context.Background(), 1, 10)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Joint(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)

	_, err = svc.FromFriends(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}
