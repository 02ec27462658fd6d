package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AndrejsVas/movie-rating-system/internal/like/domain"
	"github.com/AndrejsVas/movie-rating-system/internal/like/service"
	"github.com/AndrejsVas/movie-rating-system/internal/like/store"
)

// LikeService определяет операции, которые нужны HTTP-слою от сервиса лайков.
type LikeService interface {
	ToggleReviewLike(ctx context.Context, reviewID, userID string) (*domain.UserLike, error)
	ToggleMovieLike(ctx context.Context, movieID, userID string) (*domain.MovieLike, error)
	GetAllUserLikes(ctx context.Context, userID string) ([]domain.UserLike, error)
	GetAllLikesForReview(ctx context.Context, reviewID string) ([]domain.UserLike, error)
	GetAllLikesForMovie(ctx context.Context, movieID string) ([]domain.MovieLike, error)
}

type LikeHandler struct {
	service LikeService
	logger  *slog.Logger
}

func NewLikeHandler(s LikeService, l *slog.Logger) *LikeHandler {
	return &LikeHandler{service: s, logger: l}
}

// --- Вспомогательные функции ---
func (h *LikeHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *LikeHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// respondServiceError переводит типизированные ошибки сервиса в статус-коды.
// Сервис никогда не решает HTTP-семантику сам.
func (h *LikeHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidReference):
		h.respondError(w, r, http.StatusNotFound, "Invalid reviewer id or review id")
	case errors.Is(err, service.ErrNoLikes):
		h.respondError(w, r, http.StatusNotFound, "No likes found")
	case errors.Is(err, store.ErrUserNotFound):
		h.respondError(w, r, http.StatusNotFound, "User not found")
	case errors.Is(err, store.ErrReviewNotFound):
		h.respondError(w, r, http.StatusNotFound, "Review not found")
	case errors.Is(err, store.ErrMovieNotFound):
		h.respondError(w, r, http.StatusNotFound, "Movie not found")
	case errors.Is(err, store.ErrStoreUnavailable):
		h.respondError(w, r, http.StatusServiceUnavailable, "Store temporarily unavailable, retry later")
	default:
		h.respondError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// --- Обработчики ---

// GetAllUserLikes обрабатывает GET /api/v1/like/user/{userId}
func (h *LikeHandler) GetAllUserLikes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["userId"]

	likes, err := h.service.GetAllUserLikes(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to get likes for user",
			slog.String("userID", userID), slog.String("error", err.Error()))
		h.respondServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "Likes for user retrieved successfully",
		slog.String("userID", userID), slog.Int("count", len(likes)))
	h.respondJSON(w, r, http.StatusOK, likes)
}

// GetAllLikesForReview обрабатывает GET /api/v1/like/review/{reviewId}
func (h *LikeHandler) GetAllLikesForReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID := mux.Vars(r)["reviewId"]

	likes, err := h.service.GetAllLikesForReview(ctx, reviewID)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to get likes for review",
			slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		h.respondServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "Likes for review retrieved successfully",
		slog.String("reviewID", reviewID), slog.Int("count", len(likes)))
	h.respondJSON(w, r, http.StatusOK, likes)
}

// GetAllLikesForMovie обрабатывает GET /api/v1/like/movie/{movieId}
func (h *LikeHandler) GetAllLikesForMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["movieId"]

	likes, err := h.service.GetAllLikesForMovie(ctx, movieID)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to get likes for movie",
			slog.String("movieID", movieID), slog.String("error", err.Error()))
		h.respondServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "Likes for movie retrieved successfully",
		slog.String("movieID", movieID), slog.Int("count", len(likes)))
	h.respondJSON(w, r, http.StatusOK, likes)
}

// ToggleReviewLike обрабатывает PUT /api/v1/like/review/{reviewId}/reviewer/{userId}.
// 200 с телом лайка, если лайк поставлен; 200 с пустым телом, если снят.
func (h *LikeHandler) ToggleReviewLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	reviewID := vars["reviewId"]
	userID := vars["userId"]

	like, err := h.service.ToggleReviewLike(ctx, reviewID, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to toggle review like",
			slog.String("reviewID", reviewID), slog.String("userID", userID), slog.String("error", err.Error()))
		h.respondServiceError(w, r, err)
		return
	}
	if like == nil {
		h.respondJSON(w, r, http.StatusOK, nil)
		return
	}
	h.respondJSON(w, r, http.StatusOK, like)
}

// ToggleMovieLike обрабатывает PUT /api/v1/like/movie/{movieId}/user/{userId}.
func (h *LikeHandler) ToggleMovieLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	movieID := vars["movieId"]
	userID := vars["userId"]

	like, err := h.service.ToggleMovieLike(ctx, movieID, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to toggle movie like",
			slog.String("movieID", movieID), slog.String("userID", userID), slog.String("error", err.Error()))
		h.respondServiceError(w, r, err)
		return
	}
	if like == nil {
		h.respondJSON(w, r, http.StatusOK, nil)
		return
	}
	h.respondJSON(w, r, http.StatusOK, like)
}
