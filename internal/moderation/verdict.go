package moderation

import "fmt"

// Context selects which moderation rubric applies to a request.
// It is a closed set: unknown values are rejected up front instead of
// silently falling back to the listing rubric.
type Context string

const (
	// ContextListing covers ad and product listings (title, company, URL, body).
	ContextListing Context = "listing"
	// ContextProfile covers identity strings such as nicknames.
	ContextProfile Context = "profile"
)

func (c Context) Validate() error {
	switch c {
	case ContextListing, ContextProfile:
		return nil
	}
	return fmt.Errorf("unknown moderation context %q", string(c))
}

// Stage records which filter produced a verdict.
type Stage string

const (
	StageBlacklist Stage = "blacklist"
	StageSignal    Stage = "signal"
	StageModel     Stage = "model"
	StageFallback  Stage = "fallback"
)

// Request is one moderation call. Text is the caller-assembled
// concatenation of all user-supplied fields for a single listing or
// profile. Image, if set, is a base64 payload optionally carrying a
// data-URI prefix.
type Request struct {
	Text    string  `json:"text"`
	Image   string  `json:"image,omitempty"`
	Context Context `json:"context,omitempty"`
}

// Verdict is the single gating decision for one request. Reason is
// always non-empty and written for end users (Korean in this
// deployment). Stage is internal bookkeeping for the audit trail and is
// not part of the wire contract.
type Verdict struct {
	IsSafe bool   `json:"is_safe"`
	Reason string `json:"reason"`
	Stage  Stage  `json:"-"`
}
