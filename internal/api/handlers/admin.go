package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hyeonsulee/cleanbot-server/internal/audit"
	"github.com/hyeonsulee/cleanbot-server/internal/moderation"
)

type AdminHandler struct {
	audit     *audit.Service
	blacklist *moderation.Blacklist
}

func NewAdminHandler(auditSvc *audit.Service, blacklist *moderation.Blacklist) *AdminHandler {
	return &AdminHandler{audit: auditSvc, blacklist: blacklist}
}

// Verdicts lists recent moderation decisions, newest first.
func (h *AdminHandler) Verdicts(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "verdict log not available"})
		return
	}

	q := audit.VerdictQuery{
		OnlyBlocked: r.URL.Query().Get("blocked") == "true",
		Stage:       r.URL.Query().Get("stage"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Offset = n
		}
	}

	logs, err := h.audit.RecentVerdicts(r.Context(), q)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"verdicts": logs})
}

// Stats summarizes block rates per pipeline stage over the last N days.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "verdict log not available"})
		return
	}

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	rates, err := h.audit.BlockRates(r.Context(), time.Now().AddDate(0, 0, -days))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"days": days, "stages": rates})
}

// Blacklist exposes the active term set and its version.
func (h *AdminHandler) Blacklist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": h.blacklist.Version,
		"count":   h.blacklist.Len(),
		"terms":   h.blacklist.Terms,
	})
}
