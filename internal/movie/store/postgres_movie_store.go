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

	"github.com/AndrejsVas/movie-rating-system/internal/movie/domain"
)

// PostgresMovieStore реализует MovieStore для PostgreSQL.
type PostgresMovieStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresMovieStore создает новый экземпляр PostgresMovieStore.
func NewPostgresMovieStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMovieStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil for PostgresMovieStore")
	}
	return &PostgresMovieStore{db: db, logger: logger}, nil
}

const movieColumns = `id, title, COALESCE(description, '') AS description, release_year,
              COALESCE(director, '') AS director, COALESCE(movie_type_id::text, '') AS movie_type_id,
              created_at, updated_at`

// Create создает новый фильм в базе данных.
func (s *PostgresMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (id, title, description, release_year, director, movie_type_id, created_at, updated_at)
              VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)`

	movie.CreatedAt = time.Now().UTC()
	movie.UpdatedAt = movie.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create movie query", slog.String("movieID", movie.ID), slog.String("title", movie.Title))
	_, err := s.db.ExecContext(ctx, query,
		movie.ID, movie.Title, movie.Description, movie.ReleaseYear, movie.Director,
		movie.MovieTypeID, movie.CreatedAt, movie.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "Movie already exists (unique constraint violation in DB)",
				slog.String("title", movie.Title), slog.String("constraint", pqErr.Constraint))
			return ErrMovieAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create movie in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create movie: %w", err)
	}
	s.logger.InfoContext(ctx, "Movie created successfully in DB", slog.String("movieID", movie.ID))
	return nil
}

// GetByID находит фильм по его ID.
func (s *PostgresMovieStore) GetByID(ctx context.Context, movieID string) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	var movie domain.Movie

	s.logger.DebugContext(ctx, "Executing GetMovieByID query", slog.String("movieID", movieID))
	err := s.db.GetContext(ctx, &movie, query, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Movie not found by ID in DB", slog.String("movieID", movieID))
			return nil, ErrMovieNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get movie by ID from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get movie by ID: %w", err)
	}
	return &movie, nil
}

// List возвращает все фильмы.
func (s *PostgresMovieStore) List(ctx context.Context) ([]domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY created_at DESC`
	movies := []domain.Movie{}

	s.logger.DebugContext(ctx, "Executing List movies query")
	if err := s.db.SelectContext(ctx, &movies, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movies from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// Update обновляет существующий фильм.
func (s *PostgresMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies SET title = $1, description = NULLIF($2, ''), release_year = $3,
              director = NULLIF($4, ''), movie_type_id = NULLIF($5, ''), updated_at = $6 WHERE id = $7`
	movie.UpdatedAt = time.Now().UTC()

	s.logger.DebugContext(ctx, "Executing Update movie query", slog.String("movieID", movie.ID))
	result, err := s.db.ExecContext(ctx, query,
		movie.Title, movie.Description, movie.ReleaseYear, movie.Director,
		movie.MovieTypeID, movie.UpdatedAt, movie.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			s.logger.WarnContext(ctx, "Update failed: movie title and year already taken (DB constraint)",
				slog.String("movieID", movie.ID), slog.String("constraint", pqErr.Constraint))
			return ErrMovieAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to update movie in DB", slog.String("movieID", movie.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update movie: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check movie update result: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No movie found to update in DB", slog.String("movieID", movie.ID))
		return ErrMovieNotFound
	}
	s.logger.InfoContext(ctx, "Movie updated successfully in DB", slog.String("movieID", movie.ID))
	return nil
}

// Delete удаляет фильм. Отзывы и лайки фильма подчищает ссылочная
// целостность схемы.
func (s *PostgresMovieStore) Delete(ctx context.Context, movieID string) error {
	query := `DELETE FROM movies WHERE id = $1`

	s.logger.DebugContext(ctx, "Executing Delete movie query", slog.String("movieID", movieID))
	result, err := s.db.ExecContext(ctx, query, movieID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete movie from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check movie delete result: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No movie found to delete in DB", slog.String("movieID", movieID))
		return ErrMovieNotFound
	}
	s.logger.InfoContext(ctx, "Movie deleted successfully from DB", slog.String("movieID", movieID))
	return nil
}

// ListByType возвращает фильмы жанра typeName (без учета регистра).
func (s *PostgresMovieStore) ListByType(ctx context.Context, typeName string) ([]domain.Movie, error) {
	query := `SELECT m.id, m.title, COALESCE(m.description, '') AS description, m.release_year,
              COALESCE(m.director, '') AS director, COALESCE(m.movie_type_id::text, '') AS movie_type_id,
              m.created_at, m.updated_at
              FROM movies m
              JOIN movie_types mt ON mt.id = m.movie_type_id
              WHERE LOWER(mt.type) = LOWER($1)
              ORDER BY m.title ASC`
	movies := []domain.Movie{}

	s.logger.DebugContext(ctx, "Executing ListMoviesByType query", slog.String("type", typeName))
	if err := s.db.SelectContext(ctx, &movies, query, typeName); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movies by type from DB", slog.String("type", typeName), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list movies by type: %w", err)
	}
	return movies, nil
}

// Top10 возвращает до 10 фильмов с наивысшей средней оценкой отзывов.
// Фильмы без отзывов получают среднюю оценку 0 и уходят в конец.
func (s *PostgresMovieStore) Top10(ctx context.Context) ([]domain.RatedMovie, error) {
	query := `SELECT m.id, m.title, COALESCE(m.description, '') AS description, m.release_year,
              COALESCE(m.director, '') AS director, COALESCE(m.movie_type_id::text, '') AS movie_type_id,
              m.created_at, m.updated_at,
              COALESCE(AVG(r.rating), 0) AS average_rating
              FROM movies m
              LEFT JOIN reviews r ON r.movie_id = m.id
              GROUP BY m.id
              ORDER BY average_rating DESC, m.title ASC
              LIMIT 10`
	movies := []domain.RatedMovie{}

	s.logger.DebugContext(ctx, "Executing Top10 movies query")
	if err := s.db.SelectContext(ctx, &movies, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load top 10 movies from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load top 10 movies: %w", err)
	}
	return movies, nil
}

// Random возвращает случайный фильм.
func (s *PostgresMovieStore) Random(ctx context.Context) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY random() LIMIT 1`
	var movie domain.Movie

	s.logger.DebugContext(ctx, "Executing Random movie query")
	err := s.db.GetContext(ctx, &movie, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Random movie requested on empty movies table")
			return nil, ErrMovieNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get random movie from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get random movie: %w", err)
	}
	return &movie, nil
}
