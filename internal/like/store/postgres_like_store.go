package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq" // Для обработки ошибок PostgreSQL

	"github.com/AndrejsVas/movie-rating-system/internal/like/domain"
)

// toggleMaxAttempts ограничивает повторы переключения при проигрыше обеих гонок
// (вставка отвергнута по уникальности, а строку уже удалил конкурентный вызов).
const toggleMaxAttempts = 3

// PostgresUserLikeStore реализует UserLikeStore для PostgreSQL.
type PostgresUserLikeStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresUserLikeStore создает новый экземпляр PostgresUserLikeStore.
func NewPostgresUserLikeStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserLikeStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil for PostgresUserLikeStore")
	}
	return &PostgresUserLikeStore{db: db, logger: logger}, nil
}

// Toggle атомарно переключает лайк пары (user, review).
//
// Проверка и мутация не разделяются на два незащищенных шага: вставка идёт
// через ON CONFLICT DO NOTHING по ограничению uq_user_review_like, и только
// если строка уже существовала — удаление по ключу пары. Каждая мутация —
// одно выражение, поэтому частично применённый toggle невозможен. Если и
// вставка, и удаление не затронули ни одной строки, значит оба шага проиграли
// конкурентным вызовам, и попытка повторяется.
func (s *PostgresUserLikeStore) Toggle(ctx context.Context, userID, reviewID string) (*domain.UserLike, error) {
	insertQuery := `INSERT INTO user_likes (id, user_id, review_id, created_at)
                    VALUES ($1, $2, $3, $4)
                    ON CONFLICT ON CONSTRAINT uq_user_review_like DO NOTHING`
	deleteQuery := `DELETE FROM user_likes WHERE user_id = $1 AND review_id = $2`

	for attempt := 1; attempt <= toggleMaxAttempts; attempt++ {
		like := &domain.UserLike{
			ID:        uuid.NewString(),
			UserID:    userID,
			ReviewID:  reviewID,
			CreatedAt: time.Now().UTC(),
		}

		s.logger.DebugContext(ctx, "Executing toggle insert for user like",
			slog.String("userID", userID), slog.String("reviewID", reviewID), slog.Int("attempt", attempt))
		result, err := s.db.ExecContext(ctx, insertQuery, like.ID, like.UserID, like.ReviewID, like.CreatedAt)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to insert user like in DB", slog.String("error", err.Error()))
			return nil, wrapStoreError("failed to insert user like", err)
		}
		if rows, _ := result.RowsAffected(); rows == 1 {
			s.logger.InfoContext(ctx, "User like created in DB",
				slog.String("likeID", like.ID), slog.String("userID", userID), slog.String("reviewID", reviewID))
			return like, nil
		}

		// Строка уже существует — переключаем в "не нравится".
		result, err = s.db.ExecContext(ctx, deleteQuery, userID, reviewID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to delete user like from DB", slog.String("error", err.Error()))
			return nil, wrapStoreError("failed to delete user like", err)
		}
		if rows, _ := result.RowsAffected(); rows >= 1 {
			s.logger.InfoContext(ctx, "User like removed from DB",
				slog.String("userID", userID), slog.String("reviewID", reviewID))
			return nil, nil
		}

		// Пара исчезла между вставкой и удалением — повторяем.
		s.logger.WarnContext(ctx, "User like toggle lost both races, retrying",
			slog.String("userID", userID), slog.String("reviewID", reviewID), slog.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("user like toggle did not converge for user %s and review %s: %w",
		userID, reviewID, ErrStoreUnavailable)
}

// FindAllByUser возвращает все лайки, поставленные пользователем.
func (s *PostgresUserLikeStore) FindAllByUser(ctx context.Context, userID string) ([]domain.UserLike, error) {
	query := `SELECT id, user_id, review_id, created_at FROM user_likes WHERE user_id = $1`
	likes := []domain.UserLike{}

	s.logger.DebugContext(ctx, "Executing FindAllByUser query", slog.String("userID", userID))
	if err := s.db.SelectContext(ctx, &likes, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list user likes by userID from DB",
			slog.String("userID", userID), slog.String("error", err.Error()))
		return nil, wrapStoreError("failed to list user likes by user", err)
	}
	return likes, nil
}

// FindAllByReview возвращает все лайки на отзыве.
func (s *PostgresUserLikeStore) FindAllByReview(ctx context.Context, reviewID string) ([]domain.UserLike, error) {
	query := `SELECT id, user_id, review_id, created_at FROM user_likes WHERE review_id = $1`
	likes := []domain.UserLike{}

	s.logger.DebugContext(ctx, "Executing FindAllByReview query", slog.String("reviewID", reviewID))
	if err := s.db.SelectContext(ctx, &likes, query, reviewID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list user likes by reviewID from DB",
			slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return nil, wrapStoreError("failed to list user likes by review", err)
	}
	return likes, nil
}

// ExistsByUserAndReview проверяет наличие лайка для точной пары (user, review).
func (s *PostgresUserLikeStore) ExistsByUserAndReview(ctx context.Context, userID, reviewID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_likes WHERE user_id = $1 AND review_id = $2)`
	var exists bool

	if err := s.db.GetContext(ctx, &exists, query, userID, reviewID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to check user like existence in DB",
			slog.String("userID", userID), slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return false, wrapStoreError("failed to check user like existence", err)
	}
	return exists, nil
}

// PostgresMovieLikeStore реализует MovieLikeStore для PostgreSQL.
// Переключение устроено так же, как для лайков отзывов.
type PostgresMovieLikeStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresMovieLikeStore создает новый экземпляр PostgresMovieLikeStore.
func NewPostgresMovieLikeStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMovieLikeStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil for PostgresMovieLikeStore")
	}
	return &PostgresMovieLikeStore{db: db, logger: logger}, nil
}

// Toggle атомарно переключает лайк пары (user, movie).
func (s *PostgresMovieLikeStore) Toggle(ctx context.Context, userID, movieID string) (*domain.MovieLike, error) {
	insertQuery := `INSERT INTO movie_likes (id, user_id, movie_id, created_at)
                    VALUES ($1, $2, $3, $4)
                    ON CONFLICT ON CONSTRAINT uq_user_movie_like DO NOTHING`
	deleteQuery := `DELETE FROM movie_likes WHERE user_id = $1 AND movie_id = $2`

	for attempt := 1; attempt <= toggleMaxAttempts; attempt++ {
		like := &domain.MovieLike{
			ID:        uuid.NewString(),
			UserID:    userID,
			MovieID:   movieID,
			CreatedAt: time.Now().UTC(),
		}

		s.logger.DebugContext(ctx, "Executing toggle insert for movie like",
			slog.String("userID", userID), slog.String("movieID", movieID), slog.Int("attempt", attempt))
		result, err := s.db.ExecContext(ctx, insertQuery, like.ID, like.UserID, like.MovieID, like.CreatedAt)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to insert movie like in DB", slog.String("error", err.Error()))
			return nil, wrapStoreError("failed to insert movie like", err)
		}
		if rows, _ := result.RowsAffected(); rows == 1 {
			s.logger.InfoContext(ctx, "Movie like created in DB",
				slog.String("likeID", like.ID), slog.String("userID", userID), slog.String("movieID", movieID))
			return like, nil
		}

		result, err = s.db.ExecContext(ctx, deleteQuery, userID, movieID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to delete movie like from DB", slog.String("error", err.Error()))
			return nil, wrapStoreError("failed to delete movie like", err)
		}
		if rows, _ := result.RowsAffected(); rows >= 1 {
			s.logger.InfoContext(ctx, "Movie like removed from DB",
				slog.String("userID", userID), slog.String("movieID", movieID))
			return nil, nil
		}

		s.logger.WarnContext(ctx, "Movie like toggle lost both races, retrying",
			slog.String("userID", userID), slog.String("movieID", movieID), slog.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("movie like toggle did not converge for user %s and movie %s: %w",
		userID, movieID, ErrStoreUnavailable)
}

// FindAllByMovie возвращает все лайки на фильме.
func (s *PostgresMovieLikeStore) FindAllByMovie(ctx context.Context, movieID string) ([]domain.MovieLike, error) {
	query := `SELECT id, user_id, movie_id, created_at FROM movie_likes WHERE movie_id = $1`
	likes := []domain.MovieLike{}

	s.logger.DebugContext(ctx, "Executing FindAllByMovie query", slog.String("movieID", movieID))
	if err := s.db.SelectContext(ctx, &likes, query, movieID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movie likes by movieID from DB",
			slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, wrapStoreError("failed to list movie likes by movie", err)
	}
	return likes, nil
}

// wrapStoreError переводит транзиентные сбои соединения и таймауты в
// ErrStoreUnavailable (единственный вид ошибки, который вызывающий может
// повторить). Остальные ошибки оборачиваются как есть.
func wrapStoreError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" { // connection_exception
		return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
