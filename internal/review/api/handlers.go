package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AndrejsVas/movie-rating-system/internal/review/domain"
	"github.com/AndrejsVas/movie-rating-system/internal/review/store"
)

type ReviewHandler struct {
	reviews   store.ReviewStore
	logger    *slog.Logger
	validator *validator.Validate
}

func NewReviewHandler(reviews store.ReviewStore, l *slog.Logger, v *validator.Validate) *ReviewHandler {
	return &ReviewHandler{
		reviews:   reviews,
		logger:    l,
		validator: v,
	}
}

// --- Вспомогательные функции ---
func (h *ReviewHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *ReviewHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// ListReviews обрабатывает GET /api/v1/review.
// Пустая база — это 200 с пустым массивом, а не 404.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviews, err := h.reviews.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list reviews from store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	h.logger.InfoContext(ctx, "Reviews listed successfully", slog.Int("count", len(reviews)))
	h.respondJSON(w, r, http.StatusOK, reviews)
}

// GetReview обрабатывает GET /api/v1/review/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID := mux.Vars(r)["id"]

	review, err := h.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Review not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get review from store", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve review")
		return
	}
	h.respondJSON(w, r, http.StatusOK, review)
}

// GetReviewsByMovie обрабатывает GET /api/v1/review/movie/{movieId}
func (h *ReviewHandler) GetReviewsByMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["movieId"]

	reviews, err := h.reviews.GetByMovieID(ctx, movieID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list reviews by movie from store", slog.String("movieID", movieID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	h.respondJSON(w, r, http.StatusOK, reviews)
}

// GetReviewsByUser обрабатывает GET /api/v1/review/user/{userId}
func (h *ReviewHandler) GetReviewsByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["userId"]

	reviews, err := h.reviews.GetByUserID(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list reviews by user from store", slog.String("userID", userID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	h.respondJSON(w, r, http.StatusOK, reviews)
}

// GetMovieRating обрабатывает GET /api/v1/review/movie/{movieId}/rating
func (h *ReviewHandler) GetMovieRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["movieId"]

	rating, err := h.reviews.GetAggregatedRating(ctx, movieID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get aggregated rating from store", slog.String("movieID", movieID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve movie rating")
		return
	}
	h.respondJSON(w, r, http.StatusOK, rating)
}

// CreateReview обрабатывает POST /api/v1/review
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode create review request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.ErrorContext(ctx, "Create review request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	review := &domain.Review{
		ID:      uuid.NewString(),
		MovieID: req.MovieID,
		UserID:  req.UserID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := h.reviews.Create(ctx, review); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateReview):
			h.respondError(w, r, http.StatusConflict, "User has already reviewed this movie")
		case errors.Is(err, store.ErrInvalidReference):
			h.respondError(w, r, http.StatusNotFound, "Unknown user id or movie id")
		default:
			h.logger.ErrorContext(ctx, "Failed to create review in store", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to create review")
		}
		return
	}
	h.logger.InfoContext(ctx, "Review created successfully", slog.String("reviewID", review.ID))
	h.respondJSON(w, r, http.StatusCreated, review)
}

// UpdateReview обрабатывает PUT /api/v1/review/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID := mux.Vars(r)["id"]

	var req domain.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	review, err := h.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Review not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get review for update", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to update review")
		return
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := h.reviews.Update(ctx, review); err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Review not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update review in store", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to update review")
		return
	}
	h.logger.InfoContext(ctx, "Review updated successfully", slog.String("reviewID", reviewID))
	h.respondJSON(w, r, http.StatusOK, review)
}

// DeleteReview обрабатывает DELETE /api/v1/review/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID := mux.Vars(r)["id"]

	if err := h.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Review not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete review from store", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	h.logger.InfoContext(ctx, "Review deleted successfully", slog.String("reviewID", reviewID))
	h.respondJSON(w, r, http.StatusNoContent, nil)
}
