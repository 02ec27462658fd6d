package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AndrejsVas/movie-rating-system/internal/like/domain"
)

// Кастомные ошибки хранилища лайков
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrMovieNotFound    = errors.New("movie not found")
	ErrStoreUnavailable = errors.New("store temporarily unavailable")
)

// Lookup резолвит идентификаторы в проверенные сущности.
// Только чтение, без побочных эффектов. Отсутствующий идентификатор
// возвращается как Err*NotFound, это не то же самое, что пустой список лайков.
type Lookup interface {
	ResolveUser(ctx context.Context, userID string) (*domain.UserRef, error)
	ResolveReview(ctx context.Context, reviewID string) (*domain.ReviewRef, error)
	ResolveMovie(ctx context.Context, movieID string) (*domain.MovieRef, error)
}

// UserLikeStore определяет интерфейс для операций с лайками отзывов.
//
// Toggle атомарно переключает лайк для пары (user, review): если строки нет —
// вставляет и возвращает её, если есть — удаляет и возвращает nil. Для пары
// никогда не существует больше одной строки; конкурентные вызовы для одной
// пары сериализуются на уникальном ограничении.
type UserLikeStore interface {
	Toggle(ctx context.Context, userID, reviewID string) (*domain.UserLike, error)
	FindAllByUser(ctx context.Context, userID string) ([]domain.UserLike, error)
	FindAllByReview(ctx context.Context, reviewID string) ([]domain.UserLike, error)
	ExistsByUserAndReview(ctx context.Context, userID, reviewID string) (bool, error)
}

// MovieLikeStore — то же самое для лайков фильмов.
type MovieLikeStore interface {
	Toggle(ctx context.Context, userID, movieID string) (*domain.MovieLike, error)
	FindAllByMovie(ctx context.Context, movieID string) ([]domain.MovieLike, error)
}

// MockUserLikeStore для разработки и тестов.
type MockUserLikeStore struct {
	mu    sync.Mutex
	likes map[string]*domain.UserLike // Ключ: userID + "|" + reviewID

	// FailWith, если задана, возвращается из всех методов.
	FailWith error
}

func NewMockUserLikeStore() *MockUserLikeStore {
	return &MockUserLikeStore{likes: make(map[string]*domain.UserLike)}
}

func (m *MockUserLikeStore) Toggle(ctx context.Context, userID, reviewID string) (*domain.UserLike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	key := userID + "|" + reviewID
	if _, ok := m.likes[key]; ok {
		delete(m.likes, key)
		return nil, nil
	}
	like := &domain.UserLike{
		ID:        uuid.NewString(),
		UserID:    userID,
		ReviewID:  reviewID,
		CreatedAt: time.Now().UTC(),
	}
	m.likes[key] = like
	likeCopy := *like
	return &likeCopy, nil
}

func (m *MockUserLikeStore) FindAllByUser(ctx context.Context, userID string) ([]domain.UserLike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	likes := []domain.UserLike{}
	for _, like := range m.likes {
		if like.UserID == userID {
			likes = append(likes, *like)
		}
	}
	return likes, nil
}

func (m *MockUserLikeStore) FindAllByReview(ctx context.Context, reviewID string) ([]domain.UserLike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	likes := []domain.UserLike{}
	for _, like := range m.likes {
		if like.ReviewID == reviewID {
			likes = append(likes, *like)
		}
	}
	return likes, nil
}

func (m *MockUserLikeStore) ExistsByUserAndReview(ctx context.Context, userID, reviewID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return false, m.FailWith
	}
	_, ok := m.likes[userID+"|"+reviewID]
	return ok, nil
}

// Count возвращает общее число строк в моке (используется в тестах инварианта уникальности).
func (m *MockUserLikeStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.likes)
}

// MockMovieLikeStore для разработки и тестов.
type MockMovieLikeStore struct {
	mu    sync.Mutex
	likes map[string]*domain.MovieLike // Ключ: userID + "|" + movieID

	FailWith error
}

func NewMockMovieLikeStore() *MockMovieLikeStore {
	return &MockMovieLikeStore{likes: make(map[string]*domain.MovieLike)}
}

func (m *MockMovieLikeStore) Toggle(ctx context.Context, userID, movieID string) (*domain.MovieLike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	key := userID + "|" + movieID
	if _, ok := m.likes[key]; ok {
		delete(m.likes, key)
		return nil, nil
	}
	like := &domain.MovieLike{
		ID:        uuid.NewString(),
		UserID:    userID,
		MovieID:   movieID,
		CreatedAt: time.Now().UTC(),
	}
	m.likes[key] = like
	likeCopy := *like
	return &likeCopy, nil
}

func (m *MockMovieLikeStore) FindAllByMovie(ctx context.Context, movieID string) ([]domain.MovieLike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	likes := []domain.MovieLike{}
	for _, like := range m.likes {
		if like.MovieID == movieID {
			likes = append(likes, *like)
		}
	}
	return likes, nil
}

// MockLookup резолвит только заранее добавленные идентификаторы.
type MockLookup struct {
	mu      sync.RWMutex
	users   map[string]*domain.UserRef
	reviews map[string]*domain.ReviewRef
	movies  map[string]*domain.MovieRef

	FailWith error
}

func NewMockLookup() *MockLookup {
	return &MockLookup{
		users:   make(map[string]*domain.UserRef),
		reviews: make(map[string]*domain.ReviewRef),
		movies:  make(map[string]*domain.MovieRef),
	}
}

func (m *MockLookup) AddUser(user domain.UserRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = &user
}

func (m *MockLookup) AddReview(review domain.ReviewRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.ID] = &review
}

func (m *MockLookup) AddMovie(movie domain.MovieRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movies[movie.ID] = &movie
}

func (m *MockLookup) ResolveUser(ctx context.Context, userID string) (*domain.UserRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if user, ok := m.users[userID]; ok {
		userCopy := *user
		return &userCopy, nil
	}
	return nil, ErrUserNotFound
}

func (m *MockLookup) ResolveReview(ctx context.Context, reviewID string) (*domain.ReviewRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if review, ok := m.reviews[reviewID]; ok {
		reviewCopy := *review
		return &reviewCopy, nil
	}
	return nil, ErrReviewNotFound
}

func (m *MockLookup) ResolveMovie(ctx context.Context, movieID string) (*domain.MovieRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if movie, ok := m.movies[movieID]; ok {
		movieCopy := *movie
		return &movieCopy, nil
	}
	return nil, ErrMovieNotFound
}
