package vectorstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type PgVectorStore struct {
	db *pgxpool.Pool
}

func NewPgVectorStore(db *pgxpool.Pool) *PgVectorStore {
	return &PgVectorStore{db: db}
}

func (s *PgVectorStore) Upsert(ctx context.Context, item FlaggedContent) error {
	id := item.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	embedding := pgvector.NewVector(item.Embedding)

	_, err := s.db.Exec(ctx,
		`INSERT INTO flagged_contents (id, content, reason, embedding)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET content = $2, reason = $3, embedding = $4`,
		id, item.Content, item.Reason, embedding,
	)
	if err != nil {
		return fmt.Errorf("upsert flagged content: %w", err)
	}
	return nil
}

func (s *PgVectorStore) SimilarTo(ctx context.Context, queryVec []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = 10
	}

	embedding := pgvector.NewVector(queryVec)

	rows, err := s.db.Query(ctx,
		`SELECT id, content, reason, 1 - (embedding <=> $1) AS score
		 FROM flagged_contents
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		embedding, topK,
	)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.Content, &m.Reason, &m.Score); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, nil
}
