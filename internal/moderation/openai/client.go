package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyeonsulee/cleanbot-server/internal/moderation"
)

const defaultModel = "gpt-4o-mini"

// Client classifies content through an OpenAI vision-capable chat
// model. OpenAI reports no per-category safety ratings on chat
// completions, so responses carry an empty ratings set and the verdict
// rests entirely on the parsed JSON answer.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *Client) Name() string { return "openai" }

func (c *Client) Classify(ctx context.Context, req moderation.ClassifyRequest) (*moderation.ClassifyResponse, error) {
	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: req.Rubric},
	}
	if req.ImageData != "" {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", req.ImageMIME, req.ImageData),
			},
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai classify: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return &moderation.ClassifyResponse{Answer: resp.Choices[0].Message.Content}, nil
}
