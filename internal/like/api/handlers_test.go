package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrejsVas/movie-rating-system/internal/like/api"
	"github.com/AndrejsVas/movie-rating-system/internal/like/domain"
	"github.com/AndrejsVas/movie-rating-system/internal/like/service"
	"github.com/AndrejsVas/movie-rating-system/internal/like/store"
)

func setupServer(t *testing.T) (http.Handler, *store.MockUserLikeStore, *store.MockLookup) {
	t.Helper()
	userLikes := store.NewMockUserLikeStore()
	movieLikes := store.NewMockMovieLikeStore()
	lookup := store.NewMockLookup()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewLikeService(userLikes, movieLikes, lookup, logger)
	handler := api.NewLikeHandler(svc, logger)
	return api.NewLikeRouter(handler), userLikes, lookup
}

func doRequest(router http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestToggleReviewLike_LikedThenUnliked(t *testing.T) {
	router, _, lookup := setupServer(t)
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddReview(domain.ReviewRef{ID: "review-42", MovieID: "movie-1", UserID: "user-1"})

	// First toggle: 200 with the created like record.
	w := doRequest(router, http.MethodPut, "/api/v1/like/review/review-42/reviewer/user-7")
	require.Equal(t, http.StatusOK, w.Code)

	var like domain.UserLike
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &like))
	assert.Equal(t, "user-7", like.UserID)
	assert.Equal(t, "review-42", like.ReviewID)

	// Second toggle: 200 with empty body.
	w = doRequest(router, http.MethodPut, "/api/v1/like/review/review-42/reviewer/user-7")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	// After the second toggle the review reports the no-likes condition.
	w = doRequest(router, http.MethodGet, "/api/v1/like/review/review-42")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleReviewLike_UnknownUser(t *testing.T) {
	router, userLikes, lookup := setupServer(t)
	lookup.AddReview(domain.ReviewRef{ID: "review-42", MovieID: "movie-1", UserID: "user-1"})

	w := doRequest(router, http.MethodPut, "/api/v1/like/review/review-42/reviewer/user-9999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid reviewer id or review id")
	assert.Equal(t, 0, userLikes.Count())
}

func TestGetAllUserLikes_StatusMapping(t *testing.T) {
	router, _, lookup := setupServer(t)
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddReview(domain.ReviewRef{ID: "review-42", MovieID: "movie-1", UserID: "user-1"})

	// Unknown user: 404.
	w := doRequest(router, http.MethodGet, "/api/v1/like/user/user-9999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Known user without likes: 404 (documented no-likes condition).
	w = doRequest(router, http.MethodGet, "/api/v1/like/user/user-7")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// After one like: 200 with exactly one record.
	w = doRequest(router, http.MethodPut, "/api/v1/like/review/review-42/reviewer/user-7")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/like/user/user-7")
	require.Equal(t, http.StatusOK, w.Code)

	var likes []domain.UserLike
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likes))
	require.Len(t, likes, 1)
	assert.Equal(t, "review-42", likes[0].ReviewID)
}

func TestGetAllLikesForMovie_StatusMapping(t *testing.T) {
	router, _, lookup := setupServer(t)
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddMovie(domain.MovieRef{ID: "movie-3", Title: "Solaris"})

	w := doRequest(router, http.MethodGet, "/api/v1/like/movie/movie-3")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodPut, "/api/v1/like/movie/movie-3/user/user-7")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/like/movie/movie-3")
	require.Equal(t, http.StatusOK, w.Code)

	var likes []domain.MovieLike
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likes))
	require.Len(t, likes, 1)
	assert.Equal(t, "user-7", likes[0].UserID)
}

func TestToggleReviewLike_StoreUnavailableMapsTo503(t *testing.T) {
	router, userLikes, lookup := setupServer(t)
	lookup.AddUser(domain.UserRef{ID: "user-7", Username: "reviewer"})
	lookup.AddReview(domain.ReviewRef{ID: "review-42", MovieID: "movie-1", UserID: "user-1"})
	userLikes.FailWith = store.ErrStoreUnavailable

	w := doRequest(router, http.MethodPut, "/api/v1/like/review/review-42/reviewer/user-7")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
