package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AndrejsVas/movie-rating-system/internal/user/domain"
)

// Кастомные ошибки хранилища
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user with this email or username already exists")
	ErrUserTypeNotFound      = errors.New("user type not found")
	ErrUserTypeAlreadyExists = errors.New("user type with this name already exists")
)

// UserStore определяет интерфейс для операций с данными пользователей.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID string) error
}

// UserTypeStore определяет интерфейс для операций с типами пользователей.
type UserTypeStore interface {
	Create(ctx context.Context, userType *domain.UserType) error
	GetByID(ctx context.Context, typeID string) (*domain.UserType, error)
	List(ctx context.Context) ([]domain.UserType, error)
	Update(ctx context.Context, userType *domain.UserType) error
	Delete(ctx context.Context, typeID string) error
}

// MockUserStore для начальной разработки и тестов
type MockUserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User // Ключ: UserID
}

// NewMockUserStore создает новый экземпляр MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existingUser := range m.users {
		if existingUser.Email == user.Email || existingUser.Username == user.Username {
			return ErrUserAlreadyExists
		}
	}

	userCopy := *user
	userCopy.CreatedAt = time.Now().UTC()
	userCopy.UpdatedAt = userCopy.CreatedAt
	m.users[user.ID] = &userCopy
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.users[userID]; ok {
		userCopy := *user
		return &userCopy, nil
	}
	return nil, ErrUserNotFound
}

func (m *MockUserStore) List(ctx context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := []domain.User{}
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existingUser, ok := m.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	for _, u := range m.users {
		if u.ID != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return ErrUserAlreadyExists
		}
	}
	existingUser.Username = user.Username
	existingUser.Email = user.Email
	existingUser.UserTypeID = user.UserTypeID
	existingUser.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockUserStore) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

// MockUserTypeStore для начальной разработки и тестов
type MockUserTypeStore struct {
	mu    sync.RWMutex
	types map[string]*domain.UserType // Ключ: TypeID
}

// NewMockUserTypeStore создает новый экземпляр MockUserTypeStore
func NewMockUserTypeStore() *MockUserTypeStore {
	return &MockUserTypeStore{types: make(map[string]*domain.UserType)}
}

func (m *MockUserTypeStore) Create(ctx context.Context, userType *domain.UserType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.types {
		if existing.Type == userType.Type {
			return ErrUserTypeAlreadyExists
		}
	}
	typeCopy := *userType
	typeCopy.CreatedAt = time.Now().UTC()
	typeCopy.UpdatedAt = typeCopy.CreatedAt
	m.types[userType.ID] = &typeCopy
	return nil
}

func (m *MockUserTypeStore) GetByID(ctx context.Context, typeID string) (*domain.UserType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if userType, ok := m.types[typeID]; ok {
		typeCopy := *userType
		return &typeCopy, nil
	}
	return nil, ErrUserTypeNotFound
}

func (m *MockUserTypeStore) List(ctx context.Context) ([]domain.UserType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	types := []domain.UserType{}
	for _, userType := range m.types {
		types = append(types, *userType)
	}
	return types, nil
}

func (m *MockUserTypeStore) Update(ctx context.Context, userType *domain.UserType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.types[userType.ID]
	if !ok {
		return ErrUserTypeNotFound
	}
	for _, t := range m.types {
		if t.ID != userType.ID && t.Type == userType.Type {
			return ErrUserTypeAlreadyExists
		}
	}
	existing.Type = userType.Type
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockUserTypeStore) Delete(ctx context.Context, typeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.types[typeID]; !ok {
		return ErrUserTypeNotFound
	}
	delete(m.types, typeID)
	return nil
}
