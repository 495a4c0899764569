package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hyeonsulee/cleanbot-server/internal/api"
	"github.com/hyeonsulee/cleanbot-server/internal/config"
	"github.com/hyeonsulee/cleanbot-server/internal/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Database is optional: the gate still moderates without a verdict
	// log, it just cannot serve the admin surfaces.
	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Warn("database unavailable, running without verdict log", "error", err)
		db = nil
	} else {
		defer db.Close()

		if err := database.RunMigrations(ctx, db, cfg.Database.MigrationsPath); err != nil {
			slog.Warn("migrations failed", "error", err)
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, follow-up tasks will not be queued", "error", err)
	}
	defer rdb.Close()

	router := api.NewRouter(db, rdb, cfg)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting moderation gate", "addr", cfg.Addr(), "provider", cfg.Classifier.Provider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
