package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Report is a user-submitted complaint about already-published content,
// the manual counterpart to the automated gate.
type Report struct {
	ID            uuid.UUID `json:"id"`
	TargetID      string    `json:"target_id"`
	TargetType    string    `json:"target_type"`
	Reason        string    `json:"reason"`
	ReporterEmail string    `json:"reporter_email"`
	CreatedAt     time.Time `json:"created_at"`
}

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, r Report) (*Report, error) {
	if r.TargetID == "" || r.Reason == "" {
		return nil, fmt.Errorf("report requires target_id and reason")
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.ReporterEmail == "" {
		r.ReporterEmail = "anonymous"
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO reports (id, target_id, target_type, reason, reporter_email)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		r.ID, r.TargetID, r.TargetType, r.Reason, r.ReporterEmail,
	).Scan(&r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return &r, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Report, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, target_id, target_type, reason, reporter_email, created_at
		 FROM reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.TargetID, &r.TargetType, &r.Reason, &r.ReporterEmail, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
