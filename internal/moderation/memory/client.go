package memory

import (
	"context"
	"sync/atomic"

	"github.com/hyeonsulee/cleanbot-server/internal/moderation"
)

// Client is a deterministic in-memory classifier with a predetermined
// response, for tests and local development.
type Client struct {
	answer  string
	ratings []moderation.CategoryRating
	err     error
	calls   atomic.Int64
}

// NewClient creates a classifier that always returns the given answer
// and ratings.
func NewClient(answer string, ratings []moderation.CategoryRating) *Client {
	return &Client{answer: answer, ratings: ratings}
}

// NewFailingClient creates a classifier whose every call fails with err,
// simulating an unreachable provider.
func NewFailingClient(err error) *Client {
	return &Client{err: err}
}

func (c *Client) Classify(_ context.Context, _ moderation.ClassifyRequest) (*moderation.ClassifyResponse, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &moderation.ClassifyResponse{
		Answer:  c.answer,
		Ratings: c.ratings,
	}, nil
}

func (c *Client) Name() string { return "memory" }

// Calls reports how many times Classify has been invoked.
func (c *Client) Calls() int { return int(c.calls.Load()) }
