package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hyeonsulee/cleanbot-server/internal/audit"
	"github.com/hyeonsulee/cleanbot-server/internal/auth"
	"github.com/hyeonsulee/cleanbot-server/internal/moderation"
	"github.com/hyeonsulee/cleanbot-server/internal/queue"
)

// verdictLogger is the slice of audit.Service the handler needs.
type verdictLogger interface {
	LogVerdict(ctx context.Context, e audit.VerdictEntry) error
}

// ModerationHandler exposes the safety gate to the marketplace
// frontend. Forms call it before persisting a listing or nickname and
// act on the verdict.
type ModerationHandler struct {
	pipeline *moderation.Pipeline
	provider string
	audit    verdictLogger
	queue    *queue.Client
}

func NewModerationHandler(pipeline *moderation.Pipeline, provider string, auditSvc *audit.Service, queueClient *queue.Client) *ModerationHandler {
	h := &ModerationHandler{
		pipeline: pipeline,
		provider: provider,
		queue:    queueClient,
	}
	if auditSvc != nil {
		h.audit = auditSvc
	}
	return h
}

// Moderate runs one submission through the pipeline. It answers 200
// with a verdict for every well-formed request, including provider
// outages; only malformed caller input gets a 400.
func (h *ModerationHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	var req moderation.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	// Normalize here so the audit trail records the effective context,
	// not the empty wire value.
	if req.Context == "" {
		req.Context = moderation.ContextListing
	}

	start := time.Now()
	verdict, err := h.pipeline.Classify(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	verdictID := uuid.New()
	h.logVerdict(r, verdictID, req, verdict, time.Since(start).Milliseconds())
	if !verdict.IsSafe {
		h.enqueueFollowups(verdictID, req, verdict)
	}

	writeJSON(w, http.StatusOK, verdict)
}

func (h *ModerationHandler) logVerdict(r *http.Request, id uuid.UUID, req moderation.Request, v moderation.Verdict, latencyMs int64) {
	if h.audit == nil {
		return
	}

	userID := ""
	if c := auth.ClaimsFromContext(r.Context()); c != nil {
		userID = c.Sub
	}

	entry := audit.VerdictEntry{
		ID:        id,
		UserID:    userID,
		Context:   req.Context,
		Text:      req.Text,
		HadImage:  req.Image != "",
		IsSafe:    v.IsSafe,
		Reason:    v.Reason,
		Stage:     v.Stage,
		Provider:  h.provider,
		LatencyMs: latencyMs,
	}
	if err := h.audit.LogVerdict(r.Context(), entry); err != nil {
		slog.Warn("failed to log verdict", "error", err)
	}
}

func (h *ModerationHandler) enqueueFollowups(id uuid.UUID, req moderation.Request, v moderation.Verdict) {
	if h.queue == nil {
		return
	}

	if err := h.queue.EnqueueIndexFlagged(queue.IndexFlaggedPayload{
		VerdictID: id.String(),
		Text:      req.Text,
		Reason:    v.Reason,
	}); err != nil {
		slog.Warn("failed to enqueue flagged indexing", "error", err)
	}

	if req.Image != "" {
		data, mimeType := moderation.SplitImagePayload(req.Image)
		if err := h.queue.EnqueueSnapshotEvidence(queue.SnapshotEvidencePayload{
			VerdictID: id.String(),
			ImageData: data,
			ImageMIME: mimeType,
		}); err != nil {
			slog.Warn("failed to enqueue evidence snapshot", "error", err)
		}
	}
}
