package store

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AndrejsVas/movie-rating-system/internal/movie/domain"
)

// Кастомные ошибки хранилища
var (
	ErrMovieNotFound          = errors.New("movie not found")
	ErrMovieAlreadyExists     = errors.New("movie with this title and release year already exists")
	ErrMovieTypeNotFound      = errors.New("movie type not found")
	ErrMovieTypeAlreadyExists = errors.New("movie type with this name already exists")
)

// MovieStore определяет интерфейс для операций с данными фильмов.
type MovieStore interface {
	Create(ctx context.Context, movie *domain.Movie) error
	GetByID(ctx context.Context, movieID string) (*domain.Movie, error)
	List(ctx context.Context) ([]domain.Movie, error)
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, movieID string) error

	// ListByType возвращает фильмы жанра typeName (без учета регистра).
	ListByType(ctx context.Context, typeName string) ([]domain.Movie, error)
	// Top10 возвращает до 10 фильмов с наивысшей средней оценкой отзывов.
	Top10(ctx context.Context) ([]domain.RatedMovie, error)
	// Random возвращает случайный фильм или ErrMovieNotFound на пустой базе.
	Random(ctx context.Context) (*domain.Movie, error)
}

// MovieTypeStore определяет интерфейс для операций с жанрами.
type MovieTypeStore interface {
	Create(ctx context.Context, movieType *domain.MovieType) error
	GetByID(ctx context.Context, typeID string) (*domain.MovieType, error)
	List(ctx context.Context) ([]domain.MovieType, error)
	Update(ctx context.Context, movieType *domain.MovieType) error
	Delete(ctx context.Context, typeID string) error
}

// MockMovieStore для начальной разработки и тестов
type MockMovieStore struct {
	mu        sync.RWMutex
	movies    map[string]*domain.Movie // Ключ: MovieID
	typeNames map[string]string        // TypeID -> имя жанра, для ListByType
	ratings   map[string]float64       // MovieID -> средняя оценка, для Top10
}

// NewMockMovieStore создает новый экземпляр MockMovieStore
func NewMockMovieStore() *MockMovieStore {
	return &MockMovieStore{
		movies:    make(map[string]*domain.Movie),
		typeNames: make(map[string]string),
		ratings:   make(map[string]float64),
	}
}

// SetTypeName регистрирует имя жанра для ListByType.
func (m *MockMovieStore) SetTypeName(typeID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.typeNames[typeID] = name
}

// SetRating задает среднюю оценку фильма для Top10.
func (m *MockMovieStore) SetRating(movieID string, rating float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratings[movieID] = rating
}

func (m *MockMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.movies {
		if existing.Title == movie.Title && existing.ReleaseYear == movie.ReleaseYear {
			return ErrMovieAlreadyExists
		}
	}

	movieCopy := *movie
	movieCopy.CreatedAt = time.Now().UTC()
	movieCopy.UpdatedAt = movieCopy.CreatedAt
	m.movies[movie.ID] = &movieCopy
	return nil
}

func (m *MockMovieStore) GetByID(ctx context.Context, movieID string) (*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if movie, ok := m.movies[movieID]; ok {
		movieCopy := *movie
		return &movieCopy, nil
	}
	return nil, ErrMovieNotFound
}

func (m *MockMovieStore) List(ctx context.Context) ([]domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	movies := []domain.Movie{}
	for _, movie := range m.movies {
		movies = append(movies, *movie)
	}
	return movies, nil
}

func (m *MockMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.movies[movie.ID]
	if !ok {
		return ErrMovieNotFound
	}
	for _, other := range m.movies {
		if other.ID != movie.ID && other.Title == movie.Title && other.ReleaseYear == movie.ReleaseYear {
			return ErrMovieAlreadyExists
		}
	}
	existing.Title = movie.Title
	existing.Description = movie.Description
	existing.ReleaseYear = movie.ReleaseYear
	existing.Director = movie.Director
	existing.MovieTypeID = movie.MovieTypeID
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockMovieStore) Delete(ctx context.Context, movieID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movies[movieID]; !ok {
		return ErrMovieNotFound
	}
	delete(m.movies, movieID)
	return nil
}

func (m *MockMovieStore) ListByType(ctx context.Context, typeName string) ([]domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	movies := []domain.Movie{}
	for _, movie := range m.movies {
		if strings.EqualFold(m.typeNames[movie.MovieTypeID], typeName) {
			movies = append(movies, *movie)
		}
	}
	return movies, nil
}

func (m *MockMovieStore) Top10(ctx context.Context) ([]domain.RatedMovie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rated := []domain.RatedMovie{}
	for _, movie := range m.movies {
		rated = append(rated, domain.RatedMovie{Movie: *movie, AverageRating: m.ratings[movie.ID]})
	}
	sort.Slice(rated, func(i, j int) bool {
		if rated[i].AverageRating != rated[j].AverageRating {
			return rated[i].AverageRating > rated[j].AverageRating
		}
		return rated[i].Title < rated[j].Title
	})
	if len(rated) > 10 {
		rated = rated[:10]
	}
	return rated, nil
}

func (m *MockMovieStore) Random(ctx context.Context) (*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.movies) == 0 {
		return nil, ErrMovieNotFound
	}
	ids := make([]string, 0, len(m.movies))
	for id := range m.movies {
		ids = append(ids, id)
	}
	movieCopy := *m.movies[ids[rand.Intn(len(ids))]]
	return &movieCopy, nil
}

// MockMovieTypeStore для начальной разработки и тестов
type MockMovieTypeStore struct {
	mu    sync.RWMutex
	types map[string]*domain.MovieType // Ключ: TypeID
}

// NewMockMovieTypeStore создает новый экземпляр MockMovieTypeStore
func NewMockMovieTypeStore() *MockMovieTypeStore {
	return &MockMovieTypeStore{types: make(map[string]*domain.MovieType)}
}

func (m *MockMovieTypeStore) Create(ctx context.Context, movieType *domain.MovieType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.types {
		if existing.Type == movieType.Type {
			return ErrMovieTypeAlreadyExists
		}
	}
	typeCopy := *movieType
	typeCopy.CreatedAt = time.Now().UTC()
	typeCopy.UpdatedAt = typeCopy.CreatedAt
	m.types[movieType.ID] = &typeCopy
	return nil
}

func (m *MockMovieTypeStore) GetByID(ctx context.Context, typeID string) (*domain.MovieType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if movieType, ok := m.types[typeID]; ok {
		typeCopy := *movieType
		return &typeCopy, nil
	}
	return nil, ErrMovieTypeNotFound
}

func (m *MockMovieTypeStore) List(ctx context.Context) ([]domain.MovieType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	types := []domain.MovieType{}
	for _, movieType := range m.types {
		types = append(types, *movieType)
	}
	return types, nil
}

func (m *MockMovieTypeStore) Update(ctx context.Context, movieType *domain.MovieType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.types[movieType.ID]
	if !ok {
		return ErrMovieTypeNotFound
	}
	for _, t := range m.types {
		if t.ID != movieType.ID && t.Type == movieType.Type {
			return ErrMovieTypeAlreadyExists
		}
	}
	existing.Type = movieType.Type
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockMovieTypeStore) Delete(ctx context.Context, typeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.types[typeID]; !ok {
		return ErrMovieTypeNotFound
	}
	delete(m.types, typeID)
	return nil
}
