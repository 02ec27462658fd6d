package domain

import (
	"time"
)

// UserLike представляет лайк пользователя на отзыв.
// Само существование строки и есть состояние "нравится";
// отдельного булевого флага нет.
type UserLike struct {
	ID        string    `json:"id" db:"id"` // UUID
	UserID    string    `json:"user_id" db:"user_id"`
	ReviewID  string    `json:"review_id" db:"review_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MovieLike представляет лайк пользователя на фильм.
// Полностью симметричен UserLike.
type MovieLike struct {
	ID        string    `json:"id" db:"id"` // UUID
	UserID    string    `json:"user_id" db:"user_id"`
	MovieID   string    `json:"movie_id" db:"movie_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserRef — минимальная проекция пользователя, достаточная для проверки ссылки.
type UserRef struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
}

// ReviewRef — минимальная проекция отзыва.
type ReviewRef struct {
	ID      string `json:"id" db:"id"`
	MovieID string `json:"movie_id" db:"movie_id"`
	UserID  string `json:"user_id" db:"user_id"`
}

// MovieRef — минимальная проекция фильма.
type MovieRef struct {
	ID    string `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
}
