package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AndrejsVas/movie-rating-system/internal/movie/domain"
	"github.com/AndrejsVas/movie-rating-system/internal/movie/store"
)

type MovieHandler struct {
	movies     store.MovieStore
	movieTypes store.MovieTypeStore
	logger     *slog.Logger
	validator  *validator.Validate
}

func NewMovieHandler(movies store.MovieStore, movieTypes store.MovieTypeStore, l *slog.Logger, v *validator.Validate) *MovieHandler {
	return &MovieHandler{
		movies:     movies,
		movieTypes: movieTypes,
		logger:     l,
		validator:  v,
	}
}

// --- Вспомогательные функции ---
func (h *MovieHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *MovieHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// --- Обработчики фильмов ---

// ListMovies обрабатывает GET /api/v1/movie.
// Пустая база — это 200 с пустым массивом, а не 404.
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	movies, err := h.movies.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list movies from store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve movies")
		return
	}
	h.logger.InfoContext(ctx, "Movies listed successfully", slog.Int("count", len(movies)))
	h.respondJSON(w, r, http.StatusOK, movies)
}

// GetMovie обрабатывает GET /api/v1/movie/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["id"]

	movie, err := h.movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Movie not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get movie from store", slog.String("movieID", movieID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve movie")
		return
	}
	h.respondJSON(w, r, http.StatusOK, movie)
}

// Top10Movies обрабатывает GET /api/v1/movie/top10
func (h *MovieHandler) Top10Movies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	movies, err := h.movies.Top10(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load top 10 movies from store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve top movies")
		return
	}
	h.respondJSON(w, r, http.StatusOK, movies)
}

// RandomMovie обрабатывает GET /api/v1/movie/random
func (h *MovieHandler) RandomMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	movie, err := h.movies.Random(ctx)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			h.respondError(w, r, http.StatusNotFound, "No movies available")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get random movie from store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve random movie")
		return
	}
	h.respondJSON(w, r, http.StatusOK, movie)
}

// ListMoviesByType обрабатывает GET /api/v1/movie/movie_type/{genre}
func (h *MovieHandler) ListMoviesByType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	genre := mux.Vars(r)["genre"]

	movies, err := h.movies.ListByType(ctx, genre)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list movies by type from store", slog.String("genre", genre), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve movies by type")
		return
	}
	h.respondJSON(w, r, http.StatusOK, movies)
}

// CreateMovie обрабатывает POST /api/v1/movie
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode create movie request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.ErrorContext(ctx, "Create movie request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	movie := &domain.Movie{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		Director:    req.Director,
		MovieTypeID: req.MovieTypeID,
	}

	if err := h.movies.Create(ctx, movie); err != nil {
		if errors.Is(err, store.ErrMovieAlreadyExists) {
			h.respondError(w, r, http.StatusConflict, "Movie with this title and release year already exists")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to create movie in store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to create movie")
		return
	}
	h.logger.InfoContext(ctx, "Movie created successfully", slog.String("movieID", movie.ID))
	h.respondJSON(w, r, http.StatusCreated, movie)
}

// UpdateMovie обрабатывает PUT /api/v1/movie/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["id"]

	var req domain.UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode update movie request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	movie, err := h.movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Movie not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get movie for update", slog.String("movieID", movieID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to update movie")
		return
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.ReleaseYear != nil {
		movie.ReleaseYear = *req.ReleaseYear
	}
	if req.Director != nil {
		movie.Director = *req.Director
	}
	if req.MovieTypeID != nil {
		movie.MovieTypeID = *req.MovieTypeID
	}

	if err := h.movies.Update(ctx, movie); err != nil {
		switch {
		case errors.Is(err, store.ErrMovieNotFound):
			h.respondError(w, r, http.StatusNotFound, "Movie not found")
		case errors.Is(err, store.ErrMovieAlreadyExists):
			h.respondError(w, r, http.StatusConflict, "Movie with this title and release year already exists")
		default:
			h.logger.ErrorContext(ctx, "Failed to update movie in store", slog.String("movieID", movieID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update movie")
		}
		return
	}
	h.logger.InfoContext(ctx, "Movie updated successfully", slog.String("movieID", movieID))
	h.respondJSON(w, r, http.StatusOK, movie)
}

// DeleteMovie обрабатывает DELETE /api/v1/movie/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["id"]

	if err := h.movies.Delete(ctx, movieID); err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Movie not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete movie from store", slog.String("movieID", movieID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to delete movie")
		return
	}
	h.logger.InfoContext(ctx, "Movie deleted successfully", slog.String("movieID", movieID))
	h.respondJSON(w, r, http.StatusNoContent, nil)
}

// --- Обработчики жанров ---

// ListMovieTypes обрабатывает GET /api/v1/movie_type
func (h *MovieHandler) ListMovieTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	types, err := h.movieTypes.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list movie types from store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve movie types")
		return
	}
	h.respondJSON(w, r, http.StatusOK, types)
}

// GetMovieType обрабатывает GET /api/v1/movie_type/{id}
func (h *MovieHandler) GetMovieType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	typeID := mux.Vars(r)["id"]

	movieType, err := h.movieTypes.GetByID(ctx, typeID)
	if err != nil {
		if errors.Is(err, store.ErrMovieTypeNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Movie type not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get movie type from store", slog.String("typeID", typeID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve movie type")
		return
	}
	h.respondJSON(w, r, http.StatusOK, movieType)
}

// CreateMovieType обрабатывает POST /api/v1/movie_type
func (h *MovieHandler) CreateMovieType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateMovieTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	movieType := &domain.MovieType{
		ID:   uuid.NewString(),
		Type: req.Type,
	}

	if err := h.movieTypes.Create(ctx, movieType); err != nil {
		if errors.Is(err, store.ErrMovieTypeAlreadyExists) {
			h.respondError(w, r, http.StatusConflict, "Movie type with this name already exists")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to create movie type in store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to create movie type")
		return
	}
	h.logger.InfoContext(ctx, "Movie type created successfully", slog.String("typeID", movieType.ID))
	h.respondJSON(w, r, http.StatusCreated, movieType)
}

// UpdateMovieType обрабатывает PUT /api/v1/movie_type/{id}
func (h *MovieHandler) UpdateMovieType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	typeID := mux.Vars(r)["id"]

	var req domain.UpdateMovieTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	movieType := &domain.MovieType{ID: typeID, Type: req.Type}
	if err := h.movieTypes.Update(ctx, movieType); err != nil {
		switch {
		case errors.Is(err, store.ErrMovieTypeNotFound):
			h.respondError(w, r, http.StatusNotFound, "Movie type not found")
		case errors.Is(err, store.ErrMovieTypeAlreadyExists):
			h.respondError(w, r, http.StatusConflict, "Movie type with this name already exists")
		default:
			h.logger.ErrorContext(ctx, "Failed to update movie type in store", slog.String("typeID", typeID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update movie type")
		}
		return
	}
	h.respondJSON(w, r, http.StatusOK, movieType)
}

// DeleteMovieType обрабатывает DELETE /api/v1/movie_type/{id}
func (h *MovieHandler) DeleteMovieType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	typeID := mux.Vars(r)["id"]

	if err := h.movieTypes.Delete(ctx, typeID); err != nil {
		if errors.Is(err, store.ErrMovieTypeNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Movie type not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete movie type from store", slog.String("typeID", typeID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to delete movie type")
		return
	}
	h.respondJSON(w, r, http.StatusNoContent, nil)
}
