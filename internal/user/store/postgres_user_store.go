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

	"github.com/AndrejsVas/movie-rating-system/internal/user/domain"
)

// PostgresUserStore реализует UserStore для PostgreSQL.
type PostgresUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresUserStore создает новый экземпляр PostgresUserStore.
func NewPostgresUserStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil for PostgresUserStore")
	}
	return &PostgresUserStore{db: db, logger: logger}, nil
}

// Create создает нового пользователя в базе данных.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, email, user_type_id, created_at, updated_at)
              VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`

	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create user query", slog.String("userID", user.ID), slog.String("email", user.Email))
	_, err := s.db.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.UserTypeID, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "User already exists (unique constraint violation in DB)",
				slog.String("email", user.Email), slog.String("constraint", pqErr.Constraint))
			return ErrUserAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create user in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.InfoContext(ctx, "User created successfully in DB", slog.String("userID", user.ID))
	return nil
}

// GetByID находит пользователя по его ID.
func (s *PostgresUserStore) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT id, username, email, COALESCE(user_type_id::text, '') AS user_type_id, created_at, updated_at
              FROM users WHERE id = $1`
	var user domain.User

	s.logger.DebugContext(ctx, "Executing GetUserByID query", slog.String("userID", userID))
	err := s.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "User not found by ID in DB", slog.String("userID", userID))
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by ID from DB", slog.String("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// List возвращает всех пользователей.
func (s *PostgresUserStore) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, username, email, COALESCE(user_type_id::text, '') AS user_type_id, created_at, updated_at
              FROM users ORDER BY created_at DESC`
	users := []domain.User{}

	s.logger.DebugContext(ctx, "Executing List users query")
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list users from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update обновляет существующего пользователя.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET username = $1, email = $2, user_type_id = NULLIF($3, ''), updated_at = $4 WHERE id = $5`
	user.UpdatedAt = time.Now().UTC()

	s.logger.DebugContext(ctx, "Executing Update user query", slog.String("userID", user.ID))
	result, err := s.db.ExecContext(ctx, query, user.Username, user.Email, user.UserTypeID, user.UpdatedAt, user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			s.logger.WarnContext(ctx, "Update failed: username or email already exists (DB constraint)",
				slog.String("userID", user.ID), slog.String("constraint", pqErr.Constraint))
			return ErrUserAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to update user in DB", slog.String("userID", user.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check user update result: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No user found to update in DB", slog.String("userID", user.ID))
		return ErrUserNotFound
	}
	s.logger.InfoContext(ctx, "User updated successfully in DB", slog.String("userID", user.ID))
	return nil
}

// Delete удаляет пользователя. Судьба его лайков — забота ссылочной
// целостности схемы, а не этого хранилища.
func (s *PostgresUserStore) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE id = $1`

	s.logger.DebugContext(ctx, "Executing Delete user query", slog.String("userID", userID))
	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete user from DB", slog.String("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check user delete result: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No user found to delete in DB", slog.String("userID", userID))
		return ErrUserNotFound
	}
	s.logger.InfoContext(ctx, "User deleted successfully from DB", slog.String("userID", userID))
	return nil
}
