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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrejsVas/movie-rating-system/internal/movie/api"
	"github.com/AndrejsVas/movie-rating-system/internal/movie/domain"
	"github.com/AndrejsVas/movie-rating-system/internal/movie/store"
)

func setupServer(t *testing.T) (http.Handler, *store.MockMovieStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	movies := store.NewMockMovieStore()
	handler := api.NewMovieHandler(movies, store.NewMockMovieTypeStore(), logger, validator.New())
	return api.NewMovieRouter(handler), movies
}

func createMovie(t *testing.T, router http.Handler, title string, year int) domain.Movie {
	t.Helper()
	body, _ := json.Marshal(domain.CreateMovieRequest{Title: title, ReleaseYear: year})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/movie", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code)

	var movie domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movie))
	return movie
}

func TestListMovies_EmptyReturnsOK(t *testing.T) {
	router, _ := setupServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/movie", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateMovie_DuplicateTitleYearConflict(t *testing.T) {
	router, _ := setupServer(t)
	createMovie(t, router, "Solaris", 1972)

	body, _ := json.Marshal(domain.CreateMovieRequest{Title: "Solaris", ReleaseYear: 1972})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/movie", bytes.NewReader(body)))
	assert.Equal(t, http.StatusConflict, w.Code)

	// Ремейк с другим годом — не дубликат
	body, _ = json.Marshal(domain.CreateMovieRequest{Title: "Solaris", ReleaseYear: 2002})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/movie", bytes.NewReader(body)))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetMovie_NotFound(t *testing.T) {
	router, _ := setupServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/movie/unknown-id", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTop10Movies_OrderedByRating(t *testing.T) {
	router, movies := setupServer(t)
	low := createMovie(t, router, "Low", 2000)
	high := createMovie(t, router, "High", 2001)
	movies.SetRating(low.ID, 2.5)
	movies.SetRating(high.ID, 4.8)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/movie/top10", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var rated []domain.RatedMovie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rated))
	require.Len(t, rated, 2)
	assert.Equal(t, high.ID, rated[0].ID)
	assert.InDelta(t, 4.8, rated[0].AverageRating, 0.001)
	assert.Equal(t, low.ID, rated[1].ID)
}

func TestRandomMovie(t *testing.T) {
	router, _ := setupServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/movie/random", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	created := createMovie(t, router, "Stalker", 1979)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/movie/random", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var movie domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movie))
	assert.Equal(t, created.ID, movie.ID)
}

func TestListMoviesByType(t *testing.T) {
	router, movies := setupServer(t)

	body, _ := json.Marshal(domain.CreateMovieTypeRequest{Type: "drama"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/movie_type", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code)

	var genre domain.MovieType
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &genre))
	movies.SetTypeName(genre.ID, genre.Type)

	movieBody, _ := json.Marshal(domain.CreateMovieRequest{Title: "Mirror", ReleaseYear: 1975, MovieTypeID: genre.ID})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/movie", bytes.NewReader(movieBody)))
	require.Equal(t, http.StatusCreated, w.Code)
	createMovie(t, router, "Untyped", 1990)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/movie/movie_type/DRAMA", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var listed []domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Mirror", listed[0].Title)
}

func TestUpdateAndDeleteMovie(t *testing.T) {
	router, _ := setupServer(t)
	created := createMovie(t, router, "Original", 1999)

	newTitle := "Renamed"
	body, _ := json.Marshal(domain.UpdateMovieRequest{Title: &newTitle})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/v1/movie/"+created.ID, bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Title)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/movie/"+created.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/movie/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
