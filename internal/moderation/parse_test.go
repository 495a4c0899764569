package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVerdict(t *testing.T) {
	v, err := ExtractVerdict(`{"isSafe": true, "reason": "정상 상품"}`)
	require.NoError(t, err)
	assert.True(t, v.IsSafe)
	assert.Equal(t, "정상 상품", v.Reason)
	assert.Equal(t, StageModel, v.Stage)
}

func TestExtractVerdictWrappedInProse(t *testing.T) {
	raw := "Sure! Here is my analysis:\n```json\n{\"isSafe\": false, \"reason\": \"무기류 판매\"}\n```\nLet me know if you need more."
	v, err := ExtractVerdict(raw)
	require.NoError(t, err)
	assert.False(t, v.IsSafe)
	assert.Equal(t, "무기류 판매", v.Reason)
}

func TestExtractVerdictBracesInsideReason(t *testing.T) {
	// A '}' inside the reason string must not truncate the object.
	raw := `verdict: {"isSafe": false, "reason": "금지 표현 {주석} 포함"} end`
	v, err := ExtractVerdict(raw)
	require.NoError(t, err)
	assert.False(t, v.IsSafe)
	assert.Equal(t, "금지 표현 {주석} 포함", v.Reason)
}

func TestExtractVerdictSkipsDecoyObjects(t *testing.T) {
	// Earlier objects without an isSafe field are passed over.
	raw := `{"note": "metadata"} {"isSafe": true, "reason": "ok"}`
	v, err := ExtractVerdict(raw)
	require.NoError(t, err)
	assert.True(t, v.IsSafe)
	assert.Equal(t, "ok", v.Reason)
}

func TestExtractVerdictNoObject(t *testing.T) {
	for _, raw := range []string{
		"",
		"I cannot evaluate this content.",
		`{"reason": "missing flag"}`,
		`{"isSafe": "yes"}`,
		"{broken json",
	} {
		_, err := ExtractVerdict(raw)
		assert.ErrorIs(t, err, ErrUnparsableAnswer, "raw=%q", raw)
	}
}
