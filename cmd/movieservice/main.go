package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AndrejsVas/movie-rating-system/internal/config"
	"github.com/AndrejsVas/movie-rating-system/internal/movie/api"
	"github.com/AndrejsVas/movie-rating-system/internal/movie/store"
	"github.com/AndrejsVas/movie-rating-system/internal/postgres"
)

func main() {
	cfg := config.Load("movie_service", "8082")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db, err := postgres.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("MovieService failed to initialize database connection", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		logger.Info("Closing MovieService PostgreSQL database connection...")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close MovieService PostgreSQL connection", slog.String("error", err.Error()))
		}
	}()

	movieStore, err := store.NewPostgresMovieStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize PostgreSQL movie store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	movieTypeStore, err := store.NewPostgresMovieTypeStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize PostgreSQL movie type store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("PostgreSQL stores initialized for MovieService.")

	movieHandler := api.NewMovieHandler(movieStore, movieTypeStore, logger, validator.New())
	router := api.NewMovieRouter(movieHandler)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Movie Service HTTP server starting", slog.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Movie Service HTTP ListenAndServe() failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Movie Service shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Movie Service HTTP Server Shutdown Failed", slog.String("error", err.Error()))
	} else {
		logger.Info("Movie Service HTTP Server gracefully stopped.")
	}

	logger.Info("Movie Service fully stopped.")
}
