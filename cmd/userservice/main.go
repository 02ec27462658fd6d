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
	"github.com/AndrejsVas/movie-rating-system/internal/user/api"
	"github.com/AndrejsVas/movie-rating-system/internal/user/store"
)

func main() {
	cfg := config.Load("user_service", "8081")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db, err := postgres.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("UserService failed to initialize database connection", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		logger.Info("Closing UserService PostgreSQL database connection...")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close UserService PostgreSQL connection", slog.String("error", err.Error()))
		}
	}()

	userStore, err := store.NewPostgresUserStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize PostgreSQL user store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	userTypeStore, err := store.NewPostgresUserTypeStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize PostgreSQL user type store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("PostgreSQL stores initialized for UserService.")

	userHandler := api.NewUserHandler(userStore, userTypeStore, logger, validator.New())
	router := api.NewUserRouter(userHandler)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("User Service HTTP server starting", slog.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("User Service HTTP ListenAndServe() failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("User Service shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("User Service HTTP Server Shutdown Failed", slog.String("error", err.Error()))
	} else {
		logger.Info("User Service HTTP Server gracefully stopped.")
	}

	logger.Info("User Service fully stopped.")
}
