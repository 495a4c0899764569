package vectorstore

import (
	"context"

	"github.com/google/uuid"
)

// FlaggedContent is one blocked submission in the similarity index.
type FlaggedContent struct {
	ID        uuid.UUID
	Content   string
	Reason    string
	Embedding []float32
}

// Match is a similarity hit against previously flagged content.
type Match struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
	Reason  string    `json:"reason"`
	Score   float64   `json:"score"`
}

// Store indexes flagged submissions so reviewers can spot repeat spam
// that varies its wording.
type Store interface {
	Upsert(ctx context.Context, item FlaggedContent) error
	SimilarTo(ctx context.Context, embedding []float32, topK int) ([]Match, error)
}
