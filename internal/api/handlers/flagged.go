package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hyeonsulee/cleanbot-server/internal/embedding"
	"github.com/hyeonsulee/cleanbot-server/internal/vectorstore"
)

// FlaggedHandler lets reviewers search the flagged-content index for
// submissions similar to a given text, to spot repeat spam that varies
// its wording.
type FlaggedHandler struct {
	embedder *embedding.Service
	store    vectorstore.Store
}

func NewFlaggedHandler(embedder *embedding.Service, store vectorstore.Store) *FlaggedHandler {
	return &FlaggedHandler{embedder: embedder, store: store}
}

func (h *FlaggedHandler) Similar(w http.ResponseWriter, r *http.Request) {
	if h.embedder == nil || h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "flagged-content index not available"})
		return
	}

	var req struct {
		Text string `json:"text"`
		TopK int    `json:"top_k"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	vec, err := h.embedder.Embed(r.Context(), req.Text)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "embedding failed: " + err.Error()})
		return
	}

	matches, err := h.store.SimilarTo(r.Context(), vec, req.TopK)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}
