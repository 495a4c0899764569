package moderation

import (
	"strings"
	"unicode"
)

// Normalize strips every whitespace rune and lower-cases the rest, so
// blacklist matching is robust against spacing and casing evasion
// ("V I A G R A" collapses to "viagra"). Character substitution is not
// defeated here; that tier of evasion is left to the model stage.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
