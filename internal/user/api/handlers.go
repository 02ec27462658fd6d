package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AndrejsVas/movie-rating-system/internal/user/domain"
	"github.com/AndrejsVas/movie-rating-system/internal/user/store"
)

type UserHandler struct {
	users     store.UserStore
	userTypes store.UserTypeStore
	logger    *slog.Logger
	validator *validator.Validate
}

func NewUserHandler(users store.UserStore, userTypes store.UserTypeStore, l *slog.Logger, v *validator.Validate) *UserHandler {
	return &UserHandler{
		users:     users,
		userTypes: userTypes,
		logger:    l,
		validator: v,
	}
}

// --- Вспомогательные функции ---
func (h *UserHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *UserHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// --- Обработчики пользователей ---

// ListUsers обрабатывает GET /api/v1/user.
// Пустая база — это 200 с пустым массивом, а не 404.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.users.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list users from store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	h.logger.InfoContext(ctx, "Users listed successfully", slog.Int("count", len(users)))
	h.respondJSON(w, r, http.StatusOK, users)
}

// GetUser обрабатывает GET /api/v1/user/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["id"]

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.respondError(w, r, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get user from store", slog.String("userID", userID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

// CreateUser обрабатывает POST /api/v1/user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode create user request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.ErrorContext(ctx, "Create user request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user := &domain.User{
		ID:         uuid.NewString(),
		Username:   req.Username,
		Email:      req.Email,
		UserTypeID: req.UserTypeID,
	}

	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserAlreadyExists) {
			h.respondError(w, r, http.StatusConflict, "User with this email or username already exists")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to create user in store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	h.logger.InfoContext(ctx, "User created successfully", slog.String("userID", user.ID))
	h.respondJSON(w, r, http.StatusCreated, user)
}

// UpdateUser обрабатывает PUT /api/v1/user/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["id"]

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode update user request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.respondError(w, r, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get user for update", slog.String("userID", userID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to update user")
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.UserTypeID != nil {
		user.UserTypeID = *req.UserTypeID
	}

	if err := h.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			h.respondError(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, store.ErrUserAlreadyExists):
			h.respondError(w, r, http.StatusConflict, "User with this email or username already exists")
		default:
			h.logger.ErrorContext(ctx, "Failed to update user in store", slog.String("userID", userID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}
	h.logger.InfoContext(ctx, "User updated successfully", slog.String("userID", userID))
	h.respondJSON(w, r, http.StatusOK, user)
}

// DeleteUser обрабатывает DELETE /api/v1/user/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mux.Vars(r)["id"]

	if err := h.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.respondError(w, r, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete user from store", slog.String("userID", userID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	h.logger.InfoContext(ctx, "User deleted successfully", slog.String("userID", userID))
	h.respondJSON(w, r, http.StatusNoContent, nil)
}

// --- Обработчики типов пользователей ---

// ListUserTypes обрабатывает GET /api/v1/user_type
func (h *UserHandler) ListUserTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	types, err := h.userTypes.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list user types from store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve user types")
		return
	}
	h.respondJSON(w, r, http.StatusOK, types)
}

// GetUserType обрабатывает GET /api/v1/user_type/{id}
func (h *UserHandler) GetUserType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	typeID := mux.Vars(r)["id"]

	userType, err := h.userTypes.GetByID(ctx, typeID)
	if err != nil {
		if errors.Is(err, store.ErrUserTypeNotFound) {
			h.respondError(w, r, http.StatusNotFound, "User type not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get user type from store", slog.String("typeID", typeID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve user type")
		return
	}
	h.respondJSON(w, r, http.StatusOK, userType)
}

// CreateUserType обрабатывает POST /api/v1/user_type
func (h *UserHandler) CreateUserType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateUserTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	userType := &domain.UserType{
		ID:   uuid.NewString(),
		Type: req.Type,
	}

	if err := h.userTypes.Create(ctx, userType); err != nil {
		if errors.Is(err, store.ErrUserTypeAlreadyExists) {
			h.respondError(w, r, http.StatusConflict, "User type with this name already exists")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to create user type in store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to create user type")
		return
	}
	h.logger.InfoContext(ctx, "User type created successfully", slog.String("typeID", userType.ID))
	h.respondJSON(w, r, http.StatusCreated, userType)
}

// UpdateUserType обрабатывает PUT /api/v1/user_type/{id}
func (h *UserHandler) UpdateUserType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	typeID := mux.Vars(r)["id"]

	var req domain.UpdateUserTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	userType := &domain.UserType{ID: typeID, Type: req.Type}
	if err := h.userTypes.Update(ctx, userType); err != nil {
		switch {
		case errors.Is(err, store.ErrUserTypeNotFound):
			h.respondError(w, r, http.StatusNotFound, "User type not found")
		case errors.Is(err, store.ErrUserTypeAlreadyExists):
			h.respondError(w, r, http.StatusConflict, "User type with this name already exists")
		default:
			h.logger.ErrorContext(ctx, "Failed to update user type in store", slog.String("typeID", typeID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update user type")
		}
		return
	}
	h.respondJSON(w, r, http.StatusOK, userType)
}

// DeleteUserType обрабатывает DELETE /api/v1/user_type/{id}
func (h *UserHandler) DeleteUserType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	typeID := mux.Vars(r)["id"]

	if err := h.userTypes.Delete(ctx, typeID); err != nil {
		if errors.Is(err, store.ErrUserTypeNotFound) {
			h.respondError(w, r, http.StatusNotFound, "User type not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete user type from store", slog.String("typeID", typeID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to delete user type")
		return
	}
	h.respondJSON(w, r, http.StatusNoContent, nil)
}
