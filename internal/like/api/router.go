package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewLikeRouter создает и настраивает маршрутизатор для LikeService
func NewLikeRouter(handler *LikeHandler) *mux.Router {
	router := mux.NewRouter()

	likeRouter := router.PathPrefix("/api/v1/like").Subrouter()
	likeRouter.HandleFunc("/user/{userId}", handler.GetAllUserLikes).Methods(http.MethodGet)
	likeRouter.HandleFunc("/review/{reviewId}", handler.GetAllLikesForReview).Methods(http.MethodGet)
	likeRouter.HandleFunc("/review/{reviewId}/reviewer/{userId}", handler.ToggleReviewLike).Methods(http.MethodPut)
	likeRouter.HandleFunc("/movie/{movieId}", handler.GetAllLikesForMovie).Methods(http.MethodGet)
	likeRouter.HandleFunc("/movie/{movieId}/user/{userId}", handler.ToggleMovieLike).Methods(http.MethodPut)

	return router
}
