package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq" // Для обработки ошибок PostgreSQL

	"github.com/AndrejsVas/movie-rating-system/internal/review/domain"
)

// PostgresReviewStore реализует ReviewStore для PostgreSQL.
type PostgresReviewStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresReviewStore создает новый экземпляр PostgresReviewStore.
func NewPostgresReviewStore(db *sqlx.DB, logger *slog.Logger) (*PostgresReviewStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil for PostgresReviewStore")
	}
	return &PostgresReviewStore{db: db, logger: logger}, nil
}

// Create создает новый отзыв в базе данных.
// Дубликат пары (user_id, movie_id) ловит констрейнт uq_user_movie_review,
// ссылки на несуществующие строки — внешние ключи.
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (id, movie_id, user_id, rating, comment, created_at, updated_at)
              VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`

	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create review query",
		slog.String("reviewID", review.ID),
		slog.String("movieID", review.MovieID),
		slog.String("userID", review.UserID))
	_, err := s.db.ExecContext(ctx, query,
		review.ID, review.MovieID, review.UserID, review.Rating, review.Comment,
		review.CreatedAt, review.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				s.logger.WarnContext(ctx, "User has already reviewed this movie (DB constraint)",
					slog.String("movieID", review.MovieID), slog.String("userID", review.UserID),
					slog.String("constraint", pqErr.Constraint))
				return ErrDuplicateReview
			case "23503": // foreign_key_violation
				s.logger.WarnContext(ctx, "Review references unknown user or movie (DB constraint)",
					slog.String("movieID", review.MovieID), slog.String("userID", review.UserID),
					slog.String("constraint", pqErr.Constraint))
				return ErrInvalidReference
			}
		}
		s.logger.ErrorContext(ctx, "Failed to create review in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create review: %w", err)
	}
	s.logger.InfoContext(ctx, "Review created successfully in DB", slog.String("reviewID", review.ID))
	return nil
}

const reviewColumns = `id, movie_id, user_id, rating, COALESCE(comment, '') AS comment, created_at, updated_at`

// GetByID находит отзыв по его ID.
func (s *PostgresReviewStore) GetByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	var review domain.Review

	s.logger.DebugContext(ctx, "Executing GetReviewByID query", slog.String("reviewID", reviewID))
	err := s.db.GetContext(ctx, &review, query, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Review not found by ID in DB", slog.String("reviewID", reviewID))
			return nil, ErrReviewNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get review by ID from DB", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}
	return &review, nil
}

// List возвращает все отзывы.
func (s *PostgresReviewStore) List(ctx context.Context) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC`
	reviews := []domain.Review{}

	s.logger.DebugContext(ctx, "Executing List reviews query")
	if err := s.db.SelectContext(ctx, &reviews, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Update обновляет оценку и комментарий существующего отзыва.
func (s *PostgresReviewStore) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews SET rating = $1, comment = NULLIF($2, ''), updated_at = $3 WHERE id = $4`
	review.UpdatedAt = time.Now().UTC()

	s.logger.DebugContext(ctx, "Executing Update review query", slog.String("reviewID", review.ID))
	result, err := s.db.ExecContext(ctx, query, review.Rating, review.Comment, review.UpdatedAt, review.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update review in DB", slog.String("reviewID", review.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update review: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check review update result: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No review found to update in DB", slog.String("reviewID", review.ID))
		return ErrReviewNotFound
	}
	s.logger.InfoContext(ctx, "Review updated successfully in DB", slog.String("reviewID", review.ID))
	return nil
}

// Delete удаляет отзыв. Лайки отзыва подчищает ссылочная целостность схемы.
func (s *PostgresReviewStore) Delete(ctx context.Context, reviewID string) error {
	query := `DELETE FROM reviews WHERE id = $1`

	s.logger.DebugContext(ctx, "Executing Delete review query", slog.String("reviewID", reviewID))
	result, err := s.db.ExecContext(ctx, query, reviewID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete review from DB", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete review: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check review delete result: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No review found to delete in DB", slog.String("reviewID", reviewID))
		return ErrReviewNotFound
	}
	s.logger.InfoContext(ctx, "Review deleted successfully from DB", slog.String("reviewID", reviewID))
	return nil
}

// GetByMovieID получает все отзывы для указанного фильма.
func (s *PostgresReviewStore) GetByMovieID(ctx context.Context, movieID string) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE movie_id = $1 ORDER BY created_at DESC`
	reviews := []domain.Review{}

	s.logger.DebugContext(ctx, "Executing GetReviewsByMovieID query", slog.String("movieID", movieID))
	if err := s.db.SelectContext(ctx, &reviews, query, movieID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews by movieID from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews by movieID: %w", err)
	}
	return reviews, nil
}

// GetByUserID получает все отзывы, оставленные пользователем.
func (s *PostgresReviewStore) GetByUserID(ctx context.Context, userID string) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC`
	reviews := []domain.Review{}

	s.logger.DebugContext(ctx, "Executing GetReviewsByUserID query", slog.String("userID", userID))
	if err := s.db.SelectContext(ctx, &reviews, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews by userID from DB", slog.String("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews by userID: %w", err)
	}
	return reviews, nil
}

// GetAggregatedRating рассчитывает средний рейтинг и количество оценок фильма.
func (s *PostgresReviewStore) GetAggregatedRating(ctx context.Context, movieID string) (*domain.AggregatedRating, error) {
	query := `SELECT COALESCE(AVG(rating), 0) AS average_rating, COUNT(rating) AS rating_count
              FROM reviews WHERE movie_id = $1`

	var aggRating domain.AggregatedRating
	aggRating.MovieID = movieID

	s.logger.DebugContext(ctx, "Executing GetAggregatedRating query", slog.String("movieID", movieID))
	if err := s.db.GetContext(ctx, &aggRating, query, movieID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to get aggregated rating from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get aggregated rating for movieID %s: %w", movieID, err)
	}
	s.logger.InfoContext(ctx, "Aggregated rating calculated for movie",
		slog.String("movieID", movieID),
		slog.Float64("avg", aggRating.AverageRating),
		slog.Int64("count", aggRating.RatingCount))
	return &aggRating, nil
}
