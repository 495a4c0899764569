package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"

	"github.com/hyeonsulee/cleanbot-server/internal/queue"
)

// ReportWorker delivers user-report notifications to the configured
// admin webhook.
type ReportWorker struct {
	notifyURL  string
	httpClient *http.Client
}

func NewReportWorker(notifyURL string) *ReportWorker {
	return &ReportWorker{
		notifyURL: notifyURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (w *ReportWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.ReportNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal report_notify payload: %w", err)
	}

	if w.notifyURL == "" {
		slog.Info("no report notify URL configured, skipping", "report_id", payload.ReportID)
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"report_id":      payload.ReportID,
		"target":         fmt.Sprintf("%s #%s", payload.TargetType, payload.TargetID),
		"reason":         payload.Reason,
		"reporter_email": payload.ReporterEmail,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", w.notifyURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create notify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver report notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("notify endpoint returned %d", resp.StatusCode)
	}

	slog.Info("delivered report notification", "report_id", payload.ReportID)
	return nil
}
