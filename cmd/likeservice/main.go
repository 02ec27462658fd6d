package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AndrejsVas/movie-rating-system/internal/config"
	"github.com/AndrejsVas/movie-rating-system/internal/like/api"
	"github.com/AndrejsVas/movie-rating-system/internal/like/service"
	"github.com/AndrejsVas/movie-rating-system/internal/like/store"
	"github.com/AndrejsVas/movie-rating-system/internal/postgres"
)

func main() {
	cfg := config.Load("like_service", "8084")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db, err := postgres.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("LikeService failed to initialize database connection", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		logger.Info("Closing LikeService PostgreSQL database connection...")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close LikeService PostgreSQL connection", slog.String("error", err.Error()))
		}
	}()

	userLikeStore, err := store.NewPostgresUserLikeStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize PostgreSQL user like store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	movieLikeStore, err := store.NewPostgresMovieLikeStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize PostgreSQL movie like store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	lookup, err := store.NewPostgresLookup(db, logger)
	if err != nil {
		logger.Error("Failed to initialize PostgreSQL lookup", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("PostgreSQL stores initialized for LikeService.")

	likeService := service.NewLikeService(userLikeStore, movieLikeStore, lookup, logger)
	likeHandler := api.NewLikeHandler(likeService, logger)
	router := api.NewLikeRouter(likeHandler)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Like Service HTTP server starting", slog.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Like Service HTTP ListenAndServe() failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Like Service shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Like Service HTTP Server Shutdown Failed", slog.String("error", err.Error()))
	} else {
		logger.Info("Like Service HTTP Server gracefully stopped.")
	}

	logger.Info("Like Service fully stopped.")
}
