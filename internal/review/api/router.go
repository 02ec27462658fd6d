package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewReviewRouter создает и настраивает маршрутизатор для ReviewService
func NewReviewRouter(handler *ReviewHandler) *mux.Router {
	router := mux.NewRouter()

	reviewRouter := router.PathPrefix("/api/v1/review").Subrouter()
	reviewRouter.HandleFunc("", handler.ListReviews).Methods(http.MethodGet)
	reviewRouter.HandleFunc("", handler.CreateReview).Methods(http.MethodPost)
	// Фиксированные маршруты регистрируются раньше "/{id}"
	reviewRouter.HandleFunc("/movie/{movieId}/rating", handler.GetMovieRating).Methods(http.MethodGet)
	reviewRouter.HandleFunc("/movie/{movieId}", handler.GetReviewsByMovie).Methods(http.MethodGet)
	reviewRouter.HandleFunc("/user/{userId}", handler.GetReviewsByUser).Methods(http.MethodGet)
	reviewRouter.HandleFunc("/{id}", handler.GetReview).Methods(http.MethodGet)
	reviewRouter.HandleFunc("/{id}", handler.UpdateReview).Methods(http.MethodPut)
	reviewRouter.HandleFunc("/{id}", handler.DeleteReview).Methods(http.MethodDelete)

	return router
}
