package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AndrejsVas/movie-rating-system/internal/review/domain"
)

// Кастомные ошибки хранилища
var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview: один пользователь — один отзыв на фильм.
	ErrDuplicateReview = errors.New("user has already reviewed this movie")
	// ErrInvalidReference: отзыв ссылается на несуществующего пользователя или фильм.
	ErrInvalidReference = errors.New("review references unknown user or movie")
)

// ReviewStore определяет интерфейс для операций с данными отзывов.
type ReviewStore interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, reviewID string) (*domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, reviewID string) error

	GetByMovieID(ctx context.Context, movieID string) ([]domain.Review, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Review, error)
	// GetAggregatedRating считает средний рейтинг и число оценок фильма.
	// Фильм без отзывов дает average_rating = 0 и rating_count = 0.
	GetAggregatedRating(ctx context.Context, movieID string) (*domain.AggregatedRating, error)
}

// MockReviewStore для начальной разработки и тестов.
// KnownUsers/KnownMovies имитируют ссылочную целостность схемы.
type MockReviewStore struct {
	mu          sync.RWMutex
	reviews     map[string]*domain.Review // Ключ: reviewID
	knownUsers  map[string]bool
	knownMovies map[string]bool
}

// NewMockReviewStore создает новый экземпляр MockReviewStore
func NewMockReviewStore() *MockReviewStore {
	return &MockReviewStore{
		reviews:     make(map[string]*domain.Review),
		knownUsers:  make(map[string]bool),
		knownMovies: make(map[string]bool),
	}
}

// AddUser регистрирует пользователя для проверки ссылок.
func (m *MockReviewStore) AddUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.knownUsers[userID] = true
}

// AddMovie регистрирует фильм для проверки ссылок.
func (m *MockReviewStore) AddMovie(movieID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.knownMovies[movieID] = true
}

func (m *MockReviewStore) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.knownUsers[review.UserID] || !m.knownMovies[review.MovieID] {
		return ErrInvalidReference
	}
	for _, existing := range m.reviews {
		if existing.UserID == review.UserID && existing.MovieID == review.MovieID {
			return ErrDuplicateReview
		}
	}

	reviewCopy := *review
	reviewCopy.CreatedAt = time.Now().UTC()
	reviewCopy.UpdatedAt = reviewCopy.CreatedAt
	m.reviews[review.ID] = &reviewCopy
	return nil
}

func (m *MockReviewStore) GetByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if review, ok := m.reviews[reviewID]; ok {
		reviewCopy := *review
		return &reviewCopy, nil
	}
	return nil, ErrReviewNotFound
}

func (m *MockReviewStore) List(ctx context.Context) ([]domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reviews := []domain.Review{}
	for _, review := range m.reviews {
		reviews = append(reviews, *review)
	}
	return reviews, nil
}

func (m *MockReviewStore) Update(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.reviews[review.ID]
	if !ok {
		return ErrReviewNotFound
	}
	existing.Rating = review.Rating
	existing.Comment = review.Comment
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockReviewStore) Delete(ctx context.Context, reviewID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[reviewID]; !ok {
		return ErrReviewNotFound
	}
	delete(m.reviews, reviewID)
	return nil
}

func (m *MockReviewStore) GetByMovieID(ctx context.Context, movieID string) ([]domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reviews := []domain.Review{}
	for _, review := range m.reviews {
		if review.MovieID == movieID {
			reviews = append(reviews, *review)
		}
	}
	return reviews, nil
}

func (m *MockReviewStore) GetByUserID(ctx context.Context, userID string) ([]domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reviews := []domain.Review{}
	for _, review := range m.reviews {
		if review.UserID == userID {
			reviews = append(reviews, *review)
		}
	}
	return reviews, nil
}

func (m *MockReviewStore) GetAggregatedRating(ctx context.Context, movieID string) (*domain.AggregatedRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	agg := &domain.AggregatedRating{MovieID: movieID}
	var sum int64
	for _, review := range m.reviews {
		if review.MovieID == movieID {
			sum += int64(review.Rating)
			agg.RatingCount++
		}
	}
	if agg.RatingCount > 0 {
		agg.AverageRating = float64(sum) / float64(agg.RatingCount)
	}
	return agg, nil
}
