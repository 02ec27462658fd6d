package domain

import (
	"time"
)

// Movie представляет модель фильма.
type Movie struct {
	ID          string    `json:"id" db:"id"` // UUID
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	ReleaseYear int       `json:"release_year" db:"release_year"`
	Director    string    `json:"director,omitempty" db:"director"`
	MovieTypeID string    `json:"movie_type_id,omitempty" db:"movie_type_id"` // Ссылка на MovieType (жанр)
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MovieType представляет жанр фильма (например, "drama", "comedy").
type MovieType struct {
	ID        string    `json:"id" db:"id"` // UUID
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RatedMovie — фильм вместе со средней оценкой по его отзывам.
// Используется выборкой топ-10.
type RatedMovie struct {
	Movie
	AverageRating float64 `json:"average_rating" db:"average_rating"`
}

// CreateMovieRequest определяет тело запроса для создания фильма.
type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ReleaseYear int    `json:"release_year" validate:"required,gte=1888,lte=2100"`
	Director    string `json:"director,omitempty" validate:"omitempty,max=255"`
	MovieTypeID string `json:"movie_type_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateMovieRequest определяет тело запроса для обновления фильма.
type UpdateMovieRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ReleaseYear *int    `json:"release_year,omitempty" validate:"omitempty,gte=1888,lte=2100"`
	Director    *string `json:"director,omitempty" validate:"omitempty,max=255"`
	MovieTypeID *string `json:"movie_type_id,omitempty" validate:"omitempty,uuid"`
}

// CreateMovieTypeRequest определяет тело запроса для создания жанра.
type CreateMovieTypeRequest struct {
	Type string `json:"type" validate:"required,min=2,max=50"`
}

// UpdateMovieTypeRequest определяет тело запроса для обновления жанра.
type UpdateMovieTypeRequest struct {
	Type string `json:"type" validate:"required,min=2,max=50"`
}
