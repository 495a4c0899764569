package queue

const (
	TypeIndexFlagged     = "moderation:index_flagged"
	TypeSnapshotEvidence = "moderation:snapshot_evidence"
	TypeReportNotify     = "report:notify"
)

// IndexFlaggedPayload carries a blocked submission's text so the worker
// can embed it and add it to the flagged-content similarity index.
type IndexFlaggedPayload struct {
	VerdictID string `json:"verdict_id"`
	Text      string `json:"text"`
	Reason    string `json:"reason"`
}

// SnapshotEvidencePayload carries the offending image for reviewer
// evidence retention.
type SnapshotEvidencePayload struct {
	VerdictID string `json:"verdict_id"`
	ImageData string `json:"image_data"` // base64, no data-URI prefix
	ImageMIME string `json:"image_mime"`
}

type ReportNotifyPayload struct {
	ReportID      string `json:"report_id"`
	TargetID      string `json:"target_id"`
	TargetType    string `json:"target_type"`
	Reason        string `json:"reason"`
	ReporterEmail string `json:"reporter_email"`
}
