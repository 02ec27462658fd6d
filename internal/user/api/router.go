package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewUserRouter создает и настраивает маршрутизатор для UserService
func NewUserRouter(handler *UserHandler) *mux.Router {
	router := mux.NewRouter()

	userRouter := router.PathPrefix("/api/v1/user").Subrouter()
	userRouter.HandleFunc("", handler.ListUsers).Methods(http.MethodGet)
	userRouter.HandleFunc("", handler.CreateUser).Methods(http.MethodPost)
	userRouter.HandleFunc("/{id}", handler.GetUser).Methods(http.MethodGet)
	userRouter.HandleFunc("/{id}", handler.UpdateUser).Methods(http.MethodPut)
	userRouter.HandleFunc("/{id}", handler.DeleteUser).Methods(http.MethodDelete)

	typeRouter := router.PathPrefix("/api/v1/user_type").Subrouter()
	typeRouter.HandleFunc("", handler.ListUserTypes).Methods(http.MethodGet)
	typeRouter.HandleFunc("", handler.CreateUserType).Methods(http.MethodPost)
	typeRouter.HandleFunc("/{id}", handler.GetUserType).Methods(http.MethodGet)
	typeRouter.HandleFunc("/{id}", handler.UpdateUserType).Methods(http.MethodPut)
	typeRouter.HandleFunc("/{id}", handler.DeleteUserType).Methods(http.MethodDelete)

	return router
}
