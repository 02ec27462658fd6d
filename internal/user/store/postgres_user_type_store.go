package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AndrejsVas/movie-rating-system/internal/user/domain"
)

// PostgresUserTypeStore реализует UserTypeStore для PostgreSQL.
type PostgresUserTypeStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresUserTypeStore создает новый экземпляр PostgresUserTypeStore.
func NewPostgresUserTypeStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserTypeStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil for PostgresUserTypeStore")
	}
	return &PostgresUserTypeStore{db: db, logger: logger}, nil
}

// Create создает новый тип пользователя.
func (s *PostgresUserTypeStore) Create(ctx context.Context, userType *domain.UserType) error {
	query := `INSERT INTO user_types (id, type, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	userType.CreatedAt = time.Now().UTC()
	userType.UpdatedAt = userType.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create user type query", slog.String("typeID", userType.ID), slog.String("type", userType.Type))
	_, err := s.db.ExecContext(ctx, query, userType.ID, userType.Type, userType.CreatedAt, userType.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			s.logger.WarnContext(ctx, "User type already exists (DB constraint)", slog.String("type", userType.Type))
			return ErrUserTypeAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create user type in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create user type: %w", err)
	}
	s.logger.InfoContext(ctx, "User type created successfully in DB", slog.String("typeID", userType.ID))
	return nil
}

// GetByID находит тип пользователя по ID.
func (s *PostgresUserTypeStore) GetByID(ctx context.Context, typeID string) (*domain.UserType, error) {
	query := `SELECT id, type, created_at, updated_at FROM user_types WHERE id = $1`
	var userType domain.UserType

	if err := s.db.GetContext(ctx, &userType, query, typeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "User type not found by ID in DB", slog.String("typeID", typeID))
			return nil, ErrUserTypeNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user type by ID from DB", slog.String("typeID", typeID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user type by ID: %w", err)
	}
	return &userType, nil
}

// List возвращает все типы пользователей.
func (s *PostgresUserTypeStore) List(ctx context.Context) ([]domain.UserType, error) {
	query := `SELECT id, type, created_at, updated_at FROM user_types ORDER BY type`
	types := []domain.UserType{}

	if err := s.db.SelectContext(ctx, &types, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list user types from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list user types: %w", err)
	}
	return types, nil
}

// Update обновляет существующий тип пользователя.
func (s *PostgresUserTypeStore) Update(ctx context.Context, userType *domain.UserType) error {
	query := `UPDATE user_types SET type = $1, updated_at = $2 WHERE id = $3`
	userType.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, query, userType.Type, userType.UpdatedAt, userType.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrUserTypeAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to update user type in DB", slog.String("typeID", userType.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update user type: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check user type update result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserTypeNotFound
	}
	s.logger.InfoContext(ctx, "User type updated successfully in DB", slog.String("typeID", userType.ID))
	return nil
}

// Delete удаляет тип пользователя.
func (s *PostgresUserTypeStore) Delete(ctx context.Context, typeID string) error {
	query := `DELETE FROM user_types WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, typeID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete user type from DB", slog.String("typeID", typeID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete user type: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check user type delete result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserTypeNotFound
	}
	s.logger.InfoContext(ctx, "User type deleted successfully from DB", slog.String("typeID", typeID))
	return nil
}
