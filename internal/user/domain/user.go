package domain

import (
	"time"
)

// User представляет модель пользователя.
type User struct {
	ID         string    `json:"id" db:"id"` // UUID
	Username   string    `json:"username" db:"username"`
	Email      string    `json:"email" db:"email"`
	UserTypeID string    `json:"user_type_id,omitempty" db:"user_type_id"` // Ссылка на UserType
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// UserType представляет тип пользователя (например, "reviewer", "admin").
type UserType struct {
	ID        string    `json:"id" db:"id"` // UUID
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserRequest определяет тело запроса для создания пользователя.
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Email      string `json:"email" validate:"required,email"`
	UserTypeID string `json:"user_type_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateUserRequest определяет тело запроса для обновления пользователя.
type UpdateUserRequest struct {
	Username   *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	UserTypeID *string `json:"user_type_id,omitempty" validate:"omitempty,uuid"`
}

// CreateUserTypeRequest определяет тело запроса для создания типа пользователя.
type CreateUserTypeRequest struct {
	Type string `json:"type" validate:"required,min=2,max=50"`
}

// UpdateUserTypeRequest определяет тело запроса для обновления типа пользователя.
type UpdateUserTypeRequest struct {
	Type string `json:"type" validate:"required,min=2,max=50"`
}
