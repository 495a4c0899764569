package workers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/hyeonsulee/cleanbot-server/internal/queue"
	"github.com/hyeonsulee/cleanbot-server/internal/storage"
)

// EvidenceWorker uploads the image from a blocked submission to the
// evidence bucket so reviewers can see what was held.
type EvidenceWorker struct {
	store  storage.Storage
	bucket string
}

func NewEvidenceWorker(store storage.Storage, bucket string) *EvidenceWorker {
	return &EvidenceWorker{store: store, bucket: bucket}
}

func (w *EvidenceWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.SnapshotEvidencePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal snapshot_evidence payload: %w", err)
	}

	raw, err := base64.StdEncoding.DecodeString(payload.ImageData)
	if err != nil {
		// Malformed payloads can't succeed on retry.
		slog.Warn("dropping undecodable evidence image", "verdict_id", payload.VerdictID, "error", err)
		return nil
	}

	path := fmt.Sprintf("%s%s", payload.VerdictID, extensionFor(payload.ImageMIME))
	if err := w.store.Upload(ctx, w.bucket, path, bytes.NewReader(raw), payload.ImageMIME); err != nil {
		return fmt.Errorf("upload evidence snapshot: %w", err)
	}

	slog.Info("stored evidence snapshot", "verdict_id", payload.VerdictID, "path", path)
	return nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
