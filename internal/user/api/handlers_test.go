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

	"github.com/AndrejsVas/movie-rating-system/internal/user/api"
	"github.com/AndrejsVas/movie-rating-system/internal/user/domain"
	"github.com/AndrejsVas/movie-rating-system/internal/user/store"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := api.NewUserHandler(store.NewMockUserStore(), store.NewMockUserTypeStore(), logger, validator.New())
	return api.NewUserRouter(handler)
}

func createUser(t *testing.T, router http.Handler, username, email string) domain.User {
	t.Helper()
	body, _ := json.Marshal(domain.CreateUserRequest{Username: username, Email: email})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func TestListUsers_EmptyReturnsOK(t *testing.T) {
	router := setupServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/user", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateAndGetUser(t *testing.T) {
	router := setupServer(t)
	created := createUser(t, router, "reviewer", "reviewer@example.com")
	assert.NotEmpty(t, created.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/user/"+created.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var fetched domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "reviewer", fetched.Username)
}

func TestCreateUser_DuplicateConflict(t *testing.T) {
	router := setupServer(t)
	createUser(t, router, "reviewer", "reviewer@example.com")

	body, _ := json.Marshal(domain.CreateUserRequest{Username: "reviewer", Email: "other@example.com"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/user", bytes.NewReader(body)))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUser_ValidationFailure(t *testing.T) {
	router := setupServer(t)

	body, _ := json.Marshal(domain.CreateUserRequest{Username: "ab", Email: "not-an-email"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/user", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUser_NotFound(t *testing.T) {
	router := setupServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/user/unknown-id", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserTypeCRUD(t *testing.T) {
	router := setupServer(t)

	body, _ := json.Marshal(domain.CreateUserTypeRequest{Type: "reviewer"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/user_type", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.UserType
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/user_type/"+created.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	body, _ = json.Marshal(domain.UpdateUserTypeRequest{Type: "critic"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/v1/user_type/"+created.ID, bytes.NewReader(body)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/user_type/"+created.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/user_type/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
