package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewMovieRouter создает и настраивает маршрутизатор для MovieService
func NewMovieRouter(handler *MovieHandler) *mux.Router {
	router := mux.NewRouter()

	movieRouter := router.PathPrefix("/api/v1/movie").Subrouter()
	movieRouter.HandleFunc("", handler.ListMovies).Methods(http.MethodGet)
	movieRouter.HandleFunc("", handler.CreateMovie).Methods(http.MethodPost)
	// Фиксированные маршруты регистрируются раньше "/{id}"
	movieRouter.HandleFunc("/top10", handler.Top10Movies).Methods(http.MethodGet)
	movieRouter.HandleFunc("/random", handler.RandomMovie).Methods(http.MethodGet)
	movieRouter.HandleFunc("/movie_type/{genre}", handler.ListMoviesByType).Methods(http.MethodGet)
	movieRouter.HandleFunc("/{id}", handler.GetMovie).Methods(http.MethodGet)
	movieRouter.HandleFunc("/{id}", handler.UpdateMovie).Methods(http.MethodPut)
	movieRouter.HandleFunc("/{id}", handler.DeleteMovie).Methods(http.MethodDelete)

	typeRouter := router.PathPrefix("/api/v1/movie_type").Subrouter()
	typeRouter.HandleFunc("", handler.ListMovieTypes).Methods(http.MethodGet)
	typeRouter.HandleFunc("", handler.CreateMovieType).Methods(http.MethodPost)
	typeRouter.HandleFunc("/{id}", handler.GetMovieType).Methods(http.MethodGet)
	typeRouter.HandleFunc("/{id}", handler.UpdateMovieType).Methods(http.MethodPut)
	typeRouter.HandleFunc("/{id}", handler.DeleteMovieType).Methods(http.MethodDelete)

	return router
}
