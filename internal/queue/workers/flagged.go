package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/hyeonsulee/cleanbot-server/internal/embedding"
	"github.com/hyeonsulee/cleanbot-server/internal/queue"
	"github.com/hyeonsulee/cleanbot-server/internal/vectorstore"
)

// FlaggedWorker embeds blocked submission text and adds it to the
// flagged-content similarity index, off the moderation request path.
type FlaggedWorker struct {
	embedder *embedding.Service
	store    vectorstore.Store
}

func NewFlaggedWorker(embedder *embedding.Service, store vectorstore.Store) *FlaggedWorker {
	return &FlaggedWorker{embedder: embedder, store: store}
}

func (w *FlaggedWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.IndexFlaggedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal index_flagged payload: %w", err)
	}
	if payload.Text == "" {
		slog.Warn("skipping flagged item with empty text", "verdict_id", payload.VerdictID)
		return nil
	}

	vec, err := w.embedder.Embed(ctx, payload.Text)
	if err != nil {
		return fmt.Errorf("embed flagged text: %w", err)
	}

	id, err := uuid.Parse(payload.VerdictID)
	if err != nil {
		id = uuid.New()
	}

	if err := w.store.Upsert(ctx, vectorstore.FlaggedContent{
		ID:        id,
		Content:   payload.Text,
		Reason:    payload.Reason,
		Embedding: vec,
	}); err != nil {
		return fmt.Errorf("index flagged content: %w", err)
	}

	slog.Info("indexed flagged content", "verdict_id", payload.VerdictID)
	return nil
}
