package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/hyeonsulee/cleanbot-server/internal/config"
	"github.com/hyeonsulee/cleanbot-server/internal/database"
	"github.com/hyeonsulee/cleanbot-server/internal/embedding"
	"github.com/hyeonsulee/cleanbot-server/internal/queue"
	"github.com/hyeonsulee/cleanbot-server/internal/queue/workers"
	"github.com/hyeonsulee/cleanbot-server/internal/storage"
	"github.com/hyeonsulee/cleanbot-server/internal/vectorstore"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	registry := queue.NewHandlersRegistry()

	// Report notifications need no backing services.
	reportWorker := workers.NewReportWorker(cfg.Report.NotifyURL)
	registry.Register(queue.TypeReportNotify, asynq.HandlerFunc(reportWorker.ProcessTask))

	// Flagged-content indexing needs Postgres and an embedding key.
	if cfg.Classifier.OpenAIKey == "" {
		slog.Warn("openai key not configured, flagged-content indexing disabled")
	} else if db, err := database.NewPool(context.Background(), cfg.Database); err != nil {
		slog.Warn("database unavailable, flagged-content indexing disabled", "error", err)
	} else {
		defer db.Close()
		embedder := embedding.NewService(cfg.Classifier.OpenAIKey, "")
		flaggedWorker := workers.NewFlaggedWorker(embedder, vectorstore.NewPgVectorStore(db))
		registry.Register(queue.TypeIndexFlagged, asynq.HandlerFunc(flaggedWorker.ProcessTask))
	}

	// Evidence snapshots need Supabase storage credentials.
	if cfg.Storage.SupabaseURL != "" && cfg.Storage.SupabaseKey != "" {
		store := storage.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey)
		evidenceWorker := workers.NewEvidenceWorker(store, cfg.Storage.EvidenceBucket)
		registry.Register(queue.TypeSnapshotEvidence, asynq.HandlerFunc(evidenceWorker.ProcessTask))
	} else {
		slog.Warn("supabase storage not configured, evidence snapshots disabled")
	}

	slog.Info("starting worker", "concurrency", 5)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
