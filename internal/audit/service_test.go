package audit

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateSnippet(t *testing.T) {
	short := "중고 전자레인지 팝니다"
	assert.Equal(t, short, truncateSnippet(short))

	// 300 bytes of three-byte Hangul runes; 200 is not a rune boundary,
	// so the cut must walk back instead of splitting a rune.
	long := strings.Repeat("가", 100)
	got := truncateSnippet(long)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxSnippet)
	assert.Equal(t, strings.Repeat("가", 66), got)

	ascii := strings.Repeat("a", 250)
	got = truncateSnippet(ascii)
	assert.Equal(t, maxSnippet, len(got))
	assert.True(t, utf8.ValidString(got))
}
