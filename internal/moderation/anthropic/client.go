package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hyeonsulee/cleanbot-server/internal/moderation"
)

const defaultModel = "claude-3-haiku-20240307"

// Client classifies content through an Anthropic multimodal model.
// Like OpenAI, Anthropic exposes no per-category ratings channel, so
// responses carry an empty ratings set.
type Client struct {
	client anthropic.Client
	model  string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (c *Client) Name() string { return "anthropic" }

func (c *Client) Classify(ctx context.Context, req moderation.ClassifyRequest) (*moderation.ClassifyResponse, error) {
	blocks := []anthropic.ContentBlockParamUnion{
		anthropic.NewTextBlock(req.Rubric),
	}
	if req.ImageData != "" {
		blocks = append(blocks, anthropic.NewImageBlockBase64(req.ImageMIME, req.ImageData))
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic classify: %w", err)
	}

	answer := ""
	for _, block := range resp.Content {
		if block.Type == "text" {
			answer += block.Text
		}
	}

	return &moderation.ClassifyResponse{Answer: answer}, nil
}
