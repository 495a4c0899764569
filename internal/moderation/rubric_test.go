package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRubric(t *testing.T) {
	r := BuildRubric(ContextListing, "전자레인지 팝니다", true)
	assert.Contains(t, r, "online marketplace")
	assert.Contains(t, r, `Input: "전자레인지 팝니다"`)
	assert.Contains(t, r, "[Image Attached]")
	assert.Contains(t, r, `"isSafe": boolean`)

	r = BuildRubric(ContextProfile, "멋진닉네임", false)
	assert.Contains(t, r, "identity string")
	assert.Contains(t, r, "[No Image]")
	assert.NotContains(t, r, "[Image Attached]")
}
