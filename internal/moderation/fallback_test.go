package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackHoldsUncheckedImages(t *testing.T) {
	policy := DefaultFallbackPolicy()

	for _, kind := range []FailureKind{FailureUnavailable, FailureUnparsable} {
		v := policy.Resolve(kind, true)
		assert.False(t, v.IsSafe)
		assert.Equal(t, StageFallback, v.Stage)
		assert.Equal(t, "이미지 검사를 완료하지 못해 등록이 보류되었습니다. 잠시 후 다시 시도해주세요.", v.Reason)
	}
}

func TestFallbackApprovesTextOnly(t *testing.T) {
	policy := DefaultFallbackPolicy()

	v := policy.Resolve(FailureUnavailable, false)
	assert.True(t, v.IsSafe)
	assert.Equal(t, StageFallback, v.Stage)
	assert.Equal(t, "검사 시스템 지연으로 임시 승인되었습니다.", v.Reason)

	v = policy.Resolve(FailureUnparsable, false)
	assert.True(t, v.IsSafe)
	assert.Equal(t, "검사 완료 (AI 응답 불분명, 임시 승인)", v.Reason)
}

func TestFallbackImageHoldDisabled(t *testing.T) {
	policy := FallbackPolicy{BlockUncheckedImages: false}

	v := policy.Resolve(FailureUnavailable, true)
	assert.True(t, v.IsSafe)
}
