package postgres

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Драйвер PostgreSQL
)

// Connect открывает и проверяет соединение с PostgreSQL.
func Connect(dbURL string, logger *slog.Logger) (*sqlx.DB, error) {
	logger.Info("Attempting to connect to PostgreSQL database", slog.String("dbURL_used", maskPassword(dbURL)))

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping PostgreSQL database", slog.String("error", err.Error()))
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	logger.Info("Successfully connected to PostgreSQL database.")
	return db, nil
}

// maskPassword прячет пароль в строке подключения перед логированием.
func maskPassword(dbURL string) string {
	atIndex := strings.Index(dbURL, "@")
	if atIndex <= 0 {
		return dbURL
	}
	colonIndex := strings.LastIndex(dbURL[:atIndex], ":")
	if colonIndex <= 0 {
		return dbURL
	}
	return dbURL[:colonIndex] + ":********" + dbURL[atIndex:]
}
