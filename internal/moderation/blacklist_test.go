package moderation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistMatch(t *testing.T) {
	b := DefaultBlacklist()

	term, ok := b.Match(Normalize("조건만남 구함"))
	require.True(t, ok)
	assert.Equal(t, "조건만남", term)

	// Spacing and casing evasion collapses under normalization.
	term, ok = b.Match(Normalize("조 건 만 남 합니다"))
	require.True(t, ok)
	assert.Equal(t, "조건만남", term)

	_, ok = b.Match(Normalize("정상적인 전자레인지 판매합니다"))
	assert.False(t, ok)
}

func TestBlacklistExcludesAmbiguousSlang(t *testing.T) {
	// Everyday words that double as slang are judged by the model
	// stage, never hard-blocked.
	b := DefaultBlacklist()
	for _, text := range []string{"국내산 고기 팝니다", "떨이 세일", "전통주 판매"} {
		_, ok := b.Match(Normalize(text))
		assert.False(t, ok, "should not block %q", text)
	}
}

func TestLoadBlacklist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blacklist.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"v2","terms":["금지어","BadWord"]}`), 0o644))

	b, err := LoadBlacklist(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", b.Version)
	assert.Equal(t, 2, b.Len())

	// Terms are normalized at load time, so matching is case-insensitive.
	term, ok := b.Match(Normalize("this has a BADWORD inside"))
	require.True(t, ok)
	assert.Equal(t, "badword", term)
}

func TestLoadBlacklistErrors(t *testing.T) {
	_, err := LoadBlacklist(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"v1","terms":[]}`), 0o644))
	_, err = LoadBlacklist(path)
	assert.Error(t, err)
}
