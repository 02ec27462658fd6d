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

	"github.com/AndrejsVas/movie-rating-system/internal/movie/domain"
)

// PostgresMovieTypeStore реализует MovieTypeStore для PostgreSQL.
type PostgresMovieTypeStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresMovieTypeStore создает новый экземпляр PostgresMovieTypeStore.
func NewPostgresMovieTypeStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMovieTypeStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil for PostgresMovieTypeStore")
	}
	return &PostgresMovieTypeStore{db: db, logger: logger}, nil
}

// Create создает новый жанр в базе данных.
func (s *PostgresMovieTypeStore) Create(ctx context.Context, movieType *domain.MovieType) error {
	query := `INSERT INTO movie_types (id, type, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	movieType.CreatedAt = time.Now().UTC()
	movieType.UpdatedAt = movieType.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create movie type query", slog.String("typeID", movieType.ID), slog.String("type", movieType.Type))
	_, err := s.db.ExecContext(ctx, query, movieType.ID, movieType.Type, movieType.CreatedAt, movieType.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "Movie type already exists (unique constraint violation in DB)",
				slog.String("type", movieType.Type), slog.String("constraint", pqErr.Constraint))
			return ErrMovieTypeAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create movie type in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create movie type: %w", err)
	}
	s.logger.InfoContext(ctx, "Movie type created successfully in DB", slog.String("typeID", movieType.ID))
	return nil
}

// GetByID находит жанр по его ID.
func (s *PostgresMovieTypeStore) GetByID(ctx context.Context, typeID string) (*domain.MovieType, error) {
	query := `SELECT id, type, created_at, updated_at FROM movie_types WHERE id = $1`
	var movieType domain.MovieType

	s.logger.DebugContext(ctx, "Executing GetMovieTypeByID query", slog.String("typeID", typeID))
	err := s.db.GetContext(ctx, &movieType, query, typeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Movie type not found by ID in DB", slog.String("typeID", typeID))
			return nil, ErrMovieTypeNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get movie type by ID from DB", slog.String("typeID", typeID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get movie type by ID: %w", err)
	}
	return &movieType, nil
}

// List возвращает все жанры.
func (s *PostgresMovieTypeStore) List(ctx context.Context) ([]domain.MovieType, error) {
	query := `SELECT id, type, created_at, updated_at FROM movie_types ORDER BY type ASC`
	types := []domain.MovieType{}

	s.logger.DebugContext(ctx, "Executing List movie types query")
	if err := s.db.SelectContext(ctx, &types, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movie types from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list movie types: %w", err)
	}
	return types, nil
}

// Update обновляет существующий жанр.
func (s *PostgresMovieTypeStore) Update(ctx context.Context, movieType *domain.MovieType) error {
	query := `UPDATE movie_types SET type = $1, updated_at = $2 WHERE id = $3`
	movieType.UpdatedAt = time.Now().UTC()

	s.logger.DebugContext(ctx, "Executing Update movie type query", slog.String("typeID", movieType.ID))
	result, err := s.db.ExecContext(ctx, query, movieType.Type, movieType.UpdatedAt, movieType.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			s.logger.WarnContext(ctx, "Update failed: movie type name already exists (DB constraint)",
				slog.String("typeID", movieType.ID), slog.String("constraint", pqErr.Constraint))
			return ErrMovieTypeAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to update movie type in DB", slog.String("typeID", movieType.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update movie type: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check movie type update result: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No movie type found to update in DB", slog.String("typeID", movieType.ID))
		return ErrMovieTypeNotFound
	}
	s.logger.InfoContext(ctx, "Movie type updated successfully in DB", slog.String("typeID", movieType.ID))
	return nil
}

// Delete удаляет жанр.
func (s *PostgresMovieTypeStore) Delete(ctx context.Context, typeID string) error {
	query := `DELETE FROM movie_types WHERE id = $1`

	s.logger.DebugContext(ctx, "Executing Delete movie type query", slog.String("typeID", typeID))
	result, err := s.db.ExecContext(ctx, query, typeID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete movie type from DB", slog.String("typeID", typeID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete movie type: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check movie type delete result: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No movie type found to delete in DB", slog.String("typeID", typeID))
		return ErrMovieTypeNotFound
	}
	s.logger.InfoContext(ctx, "Movie type deleted successfully from DB", slog.String("typeID", typeID))
	return nil
}
