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
	"github.com/AndrejsVas/movie-rating-system/internal/postgres"
	"github.com/AndrejsVas/movie-rating-system/internal/review/api"
	"github.com/AndrejsVas/movie-rating-system/internal/review/store"
)

func main() {
	cfg := config.Load("review_service", "8083")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db, err := postgres.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("ReviewService failed to initialize database connection", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		logger.Info("Closing ReviewService PostgreSQL database connection...")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close ReviewService PostgreSQL connection", slog.String("error", err.Error()))
		}
	}()

	reviewStore, err := store.NewPostgresReviewStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize PostgreSQL review store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("PostgreSQL stores initialized for ReviewService.")

	reviewHandler := api.NewReviewHandler(reviewStore, logger, validator.New())
	router := api.NewReviewRouter(reviewHandler)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Review Service HTTP server starting", slog.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Review Service HTTP ListenAndServe() failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Review Service shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Review Service HTTP Server Shutdown Failed", slog.String("error", err.Error()))
	} else {
		logger.Info("Review Service HTTP Server gracefully stopped.")
	}

	logger.Info("Review Service fully stopped.")
}
