package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = "text-embedding-3-small"

// Service generates text embeddings for the flagged-content index.
type Service struct {
	client *openai.Client
	model  string
}

func NewService(apiKey, model string) *Service {
	if model == "" {
		model = defaultModel
	}
	return &Service{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(s.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding in response")
	}
	return resp.Data[0].Embedding, nil
}
