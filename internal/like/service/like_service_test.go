package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/AndrejsVas/movie-rating-system/internal/like/domain"
	"github.com/AndrejsVas/movie-rating-system/internal/like/service"
	"github.com/AndrejsVas/movie-rating-system/internal/like/store"
)

func newTestService() (*service.LikeService, *store.MockUserLikeStore, *store.MockMovieLikeStore, *store.MockLookup) {
	userLikes := store.NewMockUserLikeStore()
	movieLikes := store.NewMockMovieLikeStore()
	lookup := store.NewMockLookup()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewLikeService(userLikes, movieLikes, lookup, logger), userLikes, movieLikes, lookup
}

func TestToggleReviewLike_RoundTrip(t *testing.T) {
	svc, userLikes, _, lookup := newTestService()
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddReview(domain.ReviewRef{ID: "review-42", MovieID: "movie-1", UserID: "user-1"})

	ctx := context.Background()

	like, err := svc.ToggleReviewLike(ctx, "review-42", "user-7")
	require.NoError(t, err)
	require.NotNil(t, like)
	assert.Equal(t, "user-7", like.UserID)
	assert.Equal(t, "review-42", like.ReviewID)
	assert.NotEmpty(t, like.ID)

	exists, err := userLikes.ExistsByUserAndReview(ctx, "user-7", "review-42")
	require.NoError(t, err)
	assert.True(t, exists)

	// Second toggle flips the pair back to its original state.
	like, err = svc.ToggleReviewLike(ctx, "review-42", "user-7")
	require.NoError(t, err)
	assert.Nil(t, like)

	exists, err = userLikes.ExistsByUserAndReview(ctx, "user-7", "review-42")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestToggleReviewLike_InvalidReference(t *testing.T) {
	svc, userLikes, _, lookup := newTestService()
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddReview(domain.ReviewRef{ID: "review-42", MovieID: "movie-1", UserID: "user-1"})

	ctx := context.Background()

	like, err := svc.ToggleReviewLike(ctx, "review-42", "user-9999")
	assert.ErrorIs(t, err, service.ErrInvalidReference)
	assert.Nil(t, like)

	like, err = svc.ToggleReviewLike(ctx, "review-9999", "user-7")
	assert.ErrorIs(t, err, service.ErrInvalidReference)
	assert.Nil(t, like)

	// No row may be created by a failed toggle.
	assert.Equal(t, 0, userLikes.Count())
}

func TestToggleReviewLike_StoreUnavailable(t *testing.T) {
	svc, userLikes, _, lookup := newTestService()
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddReview(domain.ReviewRef{ID: "review-42", MovieID: "movie-1", UserID: "user-1"})
	userLikes.FailWith = store.ErrStoreUnavailable

	like, err := svc.ToggleReviewLike(context.Background(), "review-42", "user-7")
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)
	assert.Nil(t, like)
}

func TestToggleReviewLike_ConcurrentTogglesKeepPairUnique(t *testing.T) {
	svc, userLikes, _, lookup := newTestService()
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddReview(domain.ReviewRef{ID: "review-42", MovieID: "movie-1", UserID: "user-1"})

	ctx := context.Background()
	const toggles = 10

	var g errgroup.Group
	for i := 0; i < toggles; i++ {
		g.Go(func() error {
			_, err := svc.ToggleReviewLike(ctx, "review-42", "user-7")
			return err
		})
	}
	require.NoError(t, g.Wait())

	// An even number of toggles must land back on "not liked",
	// and the store must never hold more than one row for the pair.
	exists, err := userLikes.ExistsByUserAndReview(ctx, "user-7", "review-42")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 0, userLikes.Count())
}

func TestToggleMovieLike_RoundTrip(t *testing.T) {
	svc, _, _, lookup := newTestService()
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddMovie(domain.MovieRef{ID: "movie-3", Title: "Solaris"})

	ctx := context.Background()

	like, err := svc.ToggleMovieLike(ctx, "movie-3", "user-7")
	require.NoError(t, err)
	require.NotNil(t, like)
	assert.Equal(t, "movie-3", like.MovieID)

	like, err = svc.ToggleMovieLike(ctx, "movie-3", "user-7")
	require.NoError(t, err)
	assert.Nil(t, like)
}

func TestToggleMovieLike_InvalidReference(t *testing.T) {
	svc, _, _, lookup := newTestService()
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})

	like, err := svc.ToggleMovieLike(context.Background(), "movie-9999", "user-7")
	assert.ErrorIs(t, err, service.ErrInvalidReference)
	assert.Nil(t, like)
}

func TestGetAllUserLikes_EmptyThenPopulated(t *testing.T) {
	svc, _, _, lookup := newTestService()
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddReview(domain.ReviewRef{ID: "review-42", MovieID: "movie-1", UserID: "user-1"})

	ctx := context.Background()

	likes, err := svc.GetAllUserLikes(ctx, "user-7")
	assert.ErrorIs(t, err, service.ErrNoLikes)
	assert.Nil(t, likes)

	_, err = svc.ToggleReviewLike(ctx, "review-42", "user-7")
	require.NoError(t, err)

	likes, err = svc.GetAllUserLikes(ctx, "user-7")
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, "review-42", likes[0].ReviewID)
}

func TestGetAllUserLikes_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService()

	likes, err := svc.GetAllUserLikes(context.Background(), "user-9999")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.Nil(t, likes)
}

func TestGetAllLikesForReview_EmptyAfterSecondToggle(t *testing.T) {
	svc, _, _, lookup := newTestService()
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddReview(domain.ReviewRef{ID: "review-42", MovieID: "movie-1", UserID: "user-1"})

	ctx := context.Background()

	_, err := svc.ToggleReviewLike(ctx, "review-42", "user-7")
	require.NoError(t, err)

	likes, err := svc.GetAllLikesForReview(ctx, "review-42")
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	_, err = svc.ToggleReviewLike(ctx, "review-42", "user-7")
	require.NoError(t, err)

	likes, err = svc.GetAllLikesForReview(ctx, "review-42")
	assert.ErrorIs(t, err, service.ErrNoLikes)
	assert.Nil(t, likes)
}

func TestGetAllLikesForMovie_UnknownMovie(t *testing.T) {
	svc, _, _, _ := newTestService()

	likes, err := svc.GetAllLikesForMovie(context.Background(), "movie-9999")
	assert.ErrorIs(t, err, store.ErrMovieNotFound)
	assert.Nil(t, likes)
}
