package domain

import (
	"time"
)

// Review представляет модель отзыва/оценки.
type Review struct {
	ID        string    `json:"id" db:"id"`             // UUID
	MovieID   string    `json:"movie_id" db:"movie_id"` // Ссылка на фильм
	UserID    string    `json:"user_id" db:"user_id"`   // Ссылка на автора
	Rating    int32     `json:"rating" db:"rating"`     // Оценка 1-10
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateReviewRequest определяет тело запроса для создания нового отзыва.
type CreateReviewRequest struct {
	MovieID string `json:"movie_id" validate:"required,uuid"`
	UserID  string `json:"user_id" validate:"required,uuid"`
	Rating  int32  `json:"rating" validate:"required,gte=1,lte=10"`
	Comment string `json:"comment,omitempty" validate:"max=2000"`
}

// UpdateReviewRequest определяет тело запроса для обновления отзыва.
type UpdateReviewRequest struct {
	Rating  *int32  `json:"rating,omitempty" validate:"omitempty,gte=1,lte=10"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// AggregatedRating содержит агрегированную информацию о рейтинге фильма.
type AggregatedRating struct {
	MovieID       string  `json:"movie_id" db:"movie_id"`
	AverageRating float64 `json:"average_rating" db:"average_rating"`
	RatingCount   int64   `json:"rating_count" db:"rating_count"`
}
