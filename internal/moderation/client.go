package moderation

import "context"

// ClassifyRequest is the single outbound call the pipeline makes.
// ImageData is base64 without any data-URI prefix.
type ClassifyRequest struct {
	Rubric    string
	Text      string
	ImageData string
	ImageMIME string
}

// ClassifyResponse is the raw collaborator output: the model's free-text
// answer (expected to contain embedded JSON) plus whatever per-category
// safety ratings the provider reports alongside it.
type ClassifyResponse struct {
	Answer  string
	Ratings []CategoryRating
}

// Classifier abstracts the remote multimodal content-safety model.
// Implementations must configure the provider's own generation gate to
// its most permissive setting for every harm category, so that the
// model reports a judgment as data instead of refusing to answer.
// Every failure mode (network, auth, provider exception) surfaces as a
// plain error; the pipeline does not distinguish subtypes.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResponse, error)
	Name() string
}
