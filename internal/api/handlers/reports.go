package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hyeonsulee/cleanbot-server/internal/auth"
	"github.com/hyeonsulee/cleanbot-server/internal/queue"
	"github.com/hyeonsulee/cleanbot-server/internal/report"
)

type ReportHandler struct {
	reports *report.Service
	queue   *queue.Client
}

func NewReportHandler(reports *report.Service, queueClient *queue.Client) *ReportHandler {
	return &ReportHandler{reports: reports, queue: queueClient}
}

// Create files a user report against published content and queues an
// admin notification.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "reports not available"})
		return
	}

	var req struct {
		TargetID   string `json:"target_id"`
		TargetType string `json:"target_type"`
		Reason     string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	email := ""
	if c := auth.ClaimsFromContext(r.Context()); c != nil {
		email = c.Email
	}

	created, err := h.reports.Create(r.Context(), report.Report{
		TargetID:      req.TargetID,
		TargetType:    req.TargetType,
		Reason:        req.Reason,
		ReporterEmail: email,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if h.queue != nil {
		if err := h.queue.EnqueueReportNotify(queue.ReportNotifyPayload{
			ReportID:      created.ID.String(),
			TargetID:      created.TargetID,
			TargetType:    created.TargetType,
			Reason:        created.Reason,
			ReporterEmail: created.ReporterEmail,
		}); err != nil {
			slog.Warn("failed to enqueue report notification", "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, created)
}

// List returns recent reports for admin review.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "reports not available"})
		return
	}

	limit, offset := 0, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, _ = strconv.Atoi(v)
	}

	reports, err := h.reports.List(r.Context(), limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}
