package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonsulee/cleanbot-server/internal/moderation"
)

func TestClassify(t *testing.T) {
	var captured generateRequest
	var capturedKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		capturedKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "{\"isSafe\": true, "}, {"text": "\"reason\": \"ok\"}"}]},
				"safetyRatings": [
					{"category": "HARM_CATEGORY_SEXUALLY_EXPLICIT", "probability": "NEGLIGIBLE"},
					{"category": "HARM_CATEGORY_DANGEROUS_CONTENT", "probability": "MEDIUM"}
				]
			}]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "", srv.URL)
	resp, err := c.Classify(context.Background(), moderation.ClassifyRequest{
		Rubric:    "evaluate this listing",
		ImageData: "aGVsbG8=",
		ImageMIME: "image/png",
	})
	require.NoError(t, err)

	assert.Equal(t, "test-key", capturedKey)

	// Generation must be permissive across all categories so the model
	// answers with a verdict instead of refusing.
	require.Len(t, captured.SafetySettings, 4)
	for _, s := range captured.SafetySettings {
		assert.Equal(t, "BLOCK_NONE", s.Threshold)
	}

	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 2)
	assert.Equal(t, "evaluate this listing", captured.Contents[0].Parts[0].Text)
	require.NotNil(t, captured.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/png", captured.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, "aGVsbG8=", captured.Contents[0].Parts[1].InlineData.Data)

	// Multi-part answers are concatenated; ratings pass through.
	assert.Equal(t, `{"isSafe": true, "reason": "ok"}`, resp.Answer)
	require.Len(t, resp.Ratings, 2)
	assert.Equal(t, moderation.CategoryDangerousContent, resp.Ratings[1].Category)
	assert.Equal(t, moderation.ProbabilityMedium, resp.Ratings[1].Probability)
}

func TestClassifyTextOnlyOmitsInlineData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Nil(t, req.Contents[0].Parts[0].InlineData)

		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"isSafe\": true, \"reason\": \"ok\"}"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "", srv.URL)
	resp, err := c.Classify(context.Background(), moderation.ClassifyRequest{Rubric: "evaluate"})
	require.NoError(t, err)
	assert.Empty(t, resp.Ratings)
}

func TestClassifyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", "", srv.URL)
	_, err := c.Classify(context.Background(), moderation.ClassifyRequest{Rubric: "evaluate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestClassifyNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "", srv.URL)
	_, err := c.Classify(context.Background(), moderation.ClassifyRequest{Rubric: "evaluate"})
	assert.Error(t, err)
}
