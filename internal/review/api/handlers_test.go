package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrejsVas/movie-rating-system/internal/review/api"
	"github.com/AndrejsVas/movie-rating-system/internal/review/domain"
	"github.com/AndrejsVas/movie-rating-system/internal/review/store"
)

func setupServer(t *testing.T) (http.Handler, *store.MockReviewStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reviews := store.NewMockReviewStore()
	handler := api.NewReviewHandler(reviews, logger, validator.New())
	return api.NewReviewRouter(handler), reviews
}

func createReview(t *testing.T, router http.Handler, movieID, userID string, rating int32) domain.Review {
	t.Helper()
	body, _ := json.Marshal(domain.CreateReviewRequest{MovieID: movieID, UserID: userID, Rating: rating})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/review", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code)

	var review domain.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &review))
	return review
}

func TestCreateReview_DuplicatePerUserMovieConflict(t *testing.T) {
	router, reviews := setupServer(t)
	movieID, userID := uuid.NewString(), uuid.NewString()
	reviews.AddMovie(movieID)
	reviews.AddUser(userID)

	createReview(t, router, movieID, userID, 8)

	body, _ := json.Marshal(domain.CreateReviewRequest{MovieID: movieID, UserID: userID, Rating: 3})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/review", bytes.NewReader(body)))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateReview_UnknownReferences(t *testing.T) {
	router, reviews := setupServer(t)
	movieID := uuid.NewString()
	reviews.AddMovie(movieID)

	body, _ := json.Marshal(domain.CreateReviewRequest{MovieID: movieID, UserID: uuid.NewString(), Rating: 7})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/review", bytes.NewReader(body)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	router, reviews := setupServer(t)
	movieID, userID := uuid.NewString(), uuid.NewString()
	reviews.AddMovie(movieID)
	reviews.AddUser(userID)

	body, _ := json.Marshal(domain.CreateReviewRequest{MovieID: movieID, UserID: userID, Rating: 11})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/review", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReviewsByMovie(t *testing.T) {
	router, reviews := setupServer(t)
	movieID := uuid.NewString()
	reviews.AddMovie(movieID)
	for _, rating := range []int32{4, 9} {
		userID := uuid.NewString()
		reviews.AddUser(userID)
		createReview(t, router, movieID, userID, rating)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/review/movie/"+movieID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var listed []domain.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)
}

func TestGetMovieRating_Aggregates(t *testing.T) {
	router, reviews := setupServer(t)
	movieID := uuid.NewString()
	reviews.AddMovie(movieID)
	for _, rating := range []int32{6, 9} {
		userID := uuid.NewString()
		reviews.AddUser(userID)
		createReview(t, router, movieID, userID, rating)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/review/movie/"+movieID+"/rating", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var agg domain.AggregatedRating
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &agg))
	assert.Equal(t, movieID, agg.MovieID)
	assert.Equal(t, int64(2), agg.RatingCount)
	assert.InDelta(t, 7.5, agg.AverageRating, 0.001)
}

func TestGetMovieRating_NoReviews(t *testing.T) {
	router, _ := setupServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/review/movie/"+uuid.NewString()+"/rating", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var agg domain.AggregatedRating
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &agg))
	assert.Equal(t, int64(0), agg.RatingCount)
	assert.Equal(t, 0.0, agg.AverageRating)
}

func TestUpdateAndDeleteReview(t *testing.T) {
	router, reviews := setupServer(t)
	movieID, userID := uuid.NewString(), uuid.NewString()
	reviews.AddMovie(movieID)
	reviews.AddUser(userID)
	created := createReview(t, router, movieID, userID, 5)

	newRating := int32(9)
	body, _ := json.Marshal(domain.UpdateReviewRequest{Rating: &newRating})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/v1/review/"+created.ID, bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, int32(9), updated.Rating)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/review/"+created.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/review/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
