package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalPolicyVetoesHigh(t *testing.T) {
	policy := DefaultSignalPolicy()

	v, vetoed := policy.Check([]CategoryRating{
		{Category: CategoryHarassment, Probability: ProbabilityLow},
		{Category: CategorySexuallyExplicit, Probability: ProbabilityHigh},
	})
	require.True(t, vetoed)
	assert.False(t, v.IsSafe)
	assert.Equal(t, StageSignal, v.Stage)
	assert.Equal(t, "선정적인 콘텐츠가 감지되어 등록할 수 없습니다.", v.Reason)
}

func TestSignalPolicyAllowsMediumByDefault(t *testing.T) {
	// Swimwear and kitchen-knife listings routinely rate MEDIUM; the
	// model stage judges them in context instead.
	policy := DefaultSignalPolicy()

	_, vetoed := policy.Check([]CategoryRating{
		{Category: CategorySexuallyExplicit, Probability: ProbabilityMedium},
		{Category: CategoryDangerousContent, Probability: ProbabilityMedium},
	})
	assert.False(t, vetoed)
}

func TestSignalPolicyTightenedThreshold(t *testing.T) {
	policy := SignalPolicy{CategoryDangerousContent: ProbabilityMedium}

	v, vetoed := policy.Check([]CategoryRating{
		{Category: CategoryDangerousContent, Probability: ProbabilityMedium},
	})
	require.True(t, vetoed)
	assert.Equal(t, "위험 콘텐츠가 감지되어 등록할 수 없습니다.", v.Reason)
}

func TestSignalPolicyIgnoresUnwatchedCategories(t *testing.T) {
	policy := DefaultSignalPolicy()

	_, vetoed := policy.Check([]CategoryRating{
		{Category: CategoryHateSpeech, Probability: ProbabilityHigh},
		{Category: CategoryHarassment, Probability: ProbabilityHigh},
	})
	assert.False(t, vetoed)
}

func TestProbabilityAtLeast(t *testing.T) {
	assert.True(t, ProbabilityHigh.AtLeast(ProbabilityHigh))
	assert.True(t, ProbabilityHigh.AtLeast(ProbabilityMedium))
	assert.False(t, ProbabilityMedium.AtLeast(ProbabilityHigh))
	assert.False(t, ProbabilityNegligible.AtLeast(ProbabilityLow))

	// Unknown bands never trip a threshold.
	assert.False(t, Probability("EXTREME").AtLeast(ProbabilityNegligible))
}
