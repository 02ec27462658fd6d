package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/AndrejsVas/movie-rating-system/internal/like/domain"
)

// PostgresLookup реализует Lookup поверх общих таблиц users/reviews/movies.
//
// Сервисы делят одну схему PostgreSQL, поэтому проверка ссылок идёт прямым
// чтением, а не межсервисным вызовом: разрешение идентификатора остаётся
// на одном хранилище с переключением лайка.
type PostgresLookup struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresLookup создает новый экземпляр PostgresLookup.
func NewPostgresLookup(db *sqlx.DB, logger *slog.Logger) (*PostgresLookup, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil for PostgresLookup")
	}
	return &PostgresLookup{db: db, logger: logger}, nil
}

// ResolveUser находит пользователя по ID.
func (l *PostgresLookup) ResolveUser(ctx context.Context, userID string) (*domain.UserRef, error) {
	query := `SELECT id, username FROM users WHERE id = $1`
	var user domain.UserRef

	if err := l.db.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.logger.WarnContext(ctx, "User not found by ID in DB", slog.String("userID", userID))
			return nil, ErrUserNotFound
		}
		l.logger.ErrorContext(ctx, "Failed to resolve user in DB", slog.String("userID", userID), slog.String("error", err.Error()))
		return nil, wrapStoreError("failed to resolve user", err)
	}
	return &user, nil
}

// ResolveReview находит отзыв по ID.
func (l *PostgresLookup) ResolveReview(ctx context.Context, reviewID string) (*domain.ReviewRef, error) {
	query := `SELECT id, movie_id, user_id FROM reviews WHERE id = $1`
	var review domain.ReviewRef

	if err := l.db.GetContext(ctx, &review, query, reviewID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.logger.WarnContext(ctx, "Review not found by ID in DB", slog.String("reviewID", reviewID))
			return nil, ErrReviewNotFound
		}
		l.logger.ErrorContext(ctx, "Failed to resolve review in DB", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return nil, wrapStoreError("failed to resolve review", err)
	}
	return &review, nil
}

// ResolveMovie находит фильм по ID.
func (l *PostgresLookup) ResolveMovie(ctx context.Context, movieID string) (*domain.MovieRef, error) {
	query := `SELECT id, title FROM movies WHERE id = $1`
	var movie domain.MovieRef

	if err := l.db.GetContext(ctx, &movie, query, movieID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.logger.WarnContext(ctx, "Movie not found by ID in DB", slog.String("movieID", movieID))
			return nil, ErrMovieNotFound
		}
		l.logger.ErrorContext(ctx, "Failed to resolve movie in DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, wrapStoreError("failed to resolve movie", err)
	}
	return &movie, nil
}
