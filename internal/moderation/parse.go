package moderation

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnparsableAnswer means the model's free-text answer carried no
// decodable verdict object. It is not a judgment either way; the
// fallback policy resolves it.
var ErrUnparsableAnswer = errors.New("no verdict object in classifier answer")

type verdictPayload struct {
	IsSafe *bool  `json:"isSafe"`
	Reason string `json:"reason"`
}

// ExtractVerdict pulls the {isSafe, reason} object out of a raw model
// answer that may wrap it in prose or formatting. It attempts a decode
// from every '{' offset and takes the first object that carries an
// isSafe field; json.Decoder consumes exactly one value and respects
// string and escape boundaries, so a '}' inside the reason string does
// not truncate the object the way first-brace/last-brace slicing would.
func ExtractVerdict(raw string) (Verdict, error) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		var p verdictPayload
		if err := dec.Decode(&p); err != nil || p.IsSafe == nil {
			continue
		}
		return Verdict{IsSafe: *p.IsSafe, Reason: p.Reason, Stage: StageModel}, nil
	}
	return Verdict{}, ErrUnparsableAnswer
}
