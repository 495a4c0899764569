package audit

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyeonsulee/cleanbot-server/internal/moderation"
)

// Service persists moderation verdicts for admin review. Verdicts
// themselves are immutable; this is an append-only trail.
type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// maxSnippet keeps logged text short; the full text never needs to be
// retained to review a verdict.
const maxSnippet = 200

// truncateSnippet cuts on a rune boundary. Hangul runes are three bytes
// wide, so a byte-index slice would leave invalid UTF-8 that Postgres
// rejects on insert.
func truncateSnippet(s string) string {
	if len(s) <= maxSnippet {
		return s
	}
	cut := maxSnippet
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

type VerdictEntry struct {
	ID        uuid.UUID
	UserID    string
	Context   moderation.Context
	Text      string
	HadImage  bool
	IsSafe    bool
	Reason    string
	Stage     moderation.Stage
	Provider  string
	LatencyMs int64
}

func (s *Service) LogVerdict(ctx context.Context, e VerdictEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	snippet := truncateSnippet(e.Text)

	_, err := s.db.Exec(ctx,
		`INSERT INTO moderation_logs (id, user_id, context, text_snippet, had_image, is_safe, reason, stage, provider, latency_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.UserID, string(e.Context), snippet, e.HadImage, e.IsSafe, e.Reason, string(e.Stage), e.Provider, e.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("insert moderation log: %w", err)
	}
	return nil
}

type VerdictLog struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Context   string    `json:"context"`
	Text      string    `json:"text_snippet"`
	HadImage  bool      `json:"had_image"`
	IsSafe    bool      `json:"is_safe"`
	Reason    string    `json:"reason"`
	Stage     string    `json:"stage"`
	Provider  string    `json:"provider"`
	LatencyMs int64     `json:"latency_ms"`
	CreatedAt time.Time `json:"created_at"`
}

type VerdictQuery struct {
	OnlyBlocked bool
	Stage       string
	Limit       int
	Offset      int
}

func (s *Service) RecentVerdicts(ctx context.Context, q VerdictQuery) ([]VerdictLog, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	query := `SELECT id, user_id, context, text_snippet, had_image, is_safe, reason, stage, provider, latency_ms, created_at
			  FROM moderation_logs WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if q.OnlyBlocked {
		query += " AND is_safe = false"
	}
	if q.Stage != "" {
		query += fmt.Sprintf(" AND stage = $%d", argIdx)
		args = append(args, q.Stage)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query moderation logs: %w", err)
	}
	defer rows.Close()

	var logs []VerdictLog
	for rows.Next() {
		var l VerdictLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Context, &l.Text, &l.HadImage, &l.IsSafe, &l.Reason, &l.Stage, &l.Provider, &l.LatencyMs, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan moderation log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// BlockRate summarizes verdict outcomes per stage for the admin
// dashboard.
type BlockRate struct {
	Stage   string `json:"stage"`
	Total   int    `json:"total"`
	Blocked int    `json:"blocked"`
}

func (s *Service) BlockRates(ctx context.Context, since time.Time) ([]BlockRate, error) {
	rows, err := s.db.Query(ctx,
		`SELECT stage, COUNT(*), COUNT(*) FILTER (WHERE is_safe = false)
		 FROM moderation_logs WHERE created_at >= $1
		 GROUP BY stage ORDER BY stage`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("query block rates: %w", err)
	}
	defer rows.Close()

	var rates []BlockRate
	for rows.Next() {
		var r BlockRate
		if err := rows.Scan(&r.Stage, &r.Total, &r.Blocked); err != nil {
			return nil, fmt.Errorf("scan block rate: %w", err)
		}
		rates = append(rates, r)
	}
	return rates, nil
}
