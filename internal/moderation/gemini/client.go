package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hyeonsulee/cleanbot-server/internal/moderation"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"
)

// Client calls the Gemini generateContent REST API. Every harm category
// is configured to BLOCK_NONE so the model delivers its judgment as
// JSON instead of refusing generation; the per-category safetyRatings
// it returns anyway feed the signal check.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string, baseURL ...string) *Client {
	if model == "" {
		model = defaultModel
	}
	url := defaultBaseURL
	if len(baseURL) > 0 && baseURL[0] != "" {
		url = baseURL[0]
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: url,
		httpClient: &http.Client{
			Timeout: time.Minute,
		},
	}
}

func (c *Client) Name() string { return "gemini" }

type generateRequest struct {
	Contents       []content       `json:"contents"`
	SafetySettings []safetySetting `json:"safetySettings"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		SafetyRatings []struct {
			Category    string `json:"category"`
			Probability string `json:"probability"`
		} `json:"safetyRatings"`
	} `json:"candidates"`
}

func permissiveSafetySettings() []safetySetting {
	categories := []moderation.Category{
		moderation.CategoryHarassment,
		moderation.CategoryHateSpeech,
		moderation.CategorySexuallyExplicit,
		moderation.CategoryDangerousContent,
	}
	settings := make([]safetySetting, len(categories))
	for i, cat := range categories {
		settings[i] = safetySetting{Category: string(cat), Threshold: "BLOCK_NONE"}
	}
	return settings
}

func (c *Client) Classify(ctx context.Context, req moderation.ClassifyRequest) (*moderation.ClassifyResponse, error) {
	parts := []part{{Text: req.Rubric}}
	if req.ImageData != "" {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: req.ImageMIME,
			Data:     req.ImageData,
		}})
	}

	gReq := generateRequest{
		Contents:       []content{{Role: "user", Parts: parts}},
		SafetySettings: permissiveSafetySettings(),
	}

	body, err := json.Marshal(gReq)
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode, string(b))
	}

	var gResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return nil, fmt.Errorf("gemini decode: %w", err)
	}
	if len(gResp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	cand := gResp.Candidates[0]

	answer := ""
	for _, p := range cand.Content.Parts {
		answer += p.Text
	}

	ratings := make([]moderation.CategoryRating, 0, len(cand.SafetyRatings))
	for _, r := range cand.SafetyRatings {
		ratings = append(ratings, moderation.CategoryRating{
			Category:    moderation.Category(r.Category),
			Probability: moderation.Probability(r.Probability),
		})
	}

	return &moderation.ClassifyResponse{Answer: answer, Ratings: ratings}, nil
}
