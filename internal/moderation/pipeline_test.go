package moderation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonsulee/cleanbot-server/internal/moderation"
	"github.com/hyeonsulee/cleanbot-server/internal/moderation/memory"
)

const safeAnswer = `{"isSafe": true, "reason": "검사를 통과했습니다."}`

func newPipeline(client *memory.Client) *moderation.Pipeline {
	return moderation.NewPipeline(
		moderation.DefaultBlacklist(),
		client,
		moderation.DefaultSignalPolicy(),
		moderation.DefaultFallbackPolicy(),
		5*time.Second,
	)
}

func TestClassifyCleanListing(t *testing.T) {
	client := memory.NewClient(safeAnswer, nil)
	p := newPipeline(client)

	v, err := p.Classify(context.Background(), moderation.Request{
		Text: "정상적인 전자레인지 판매합니다",
	})
	require.NoError(t, err)
	assert.True(t, v.IsSafe)
	assert.Equal(t, "검사를 통과했습니다.", v.Reason)
	assert.Equal(t, moderation.StageModel, v.Stage)
	assert.Equal(t, 1, client.Calls(), "exactly one provider call per clean request")
}

func TestClassifyBlacklistShortCircuits(t *testing.T) {
	client := memory.NewClient(safeAnswer, nil)
	p := newPipeline(client)

	v, err := p.Classify(context.Background(), moderation.Request{
		Text: "조건만남 구함",
	})
	require.NoError(t, err)
	assert.False(t, v.IsSafe)
	assert.Equal(t, moderation.StageBlacklist, v.Stage)
	assert.Contains(t, v.Reason, "조건만남")
	assert.Equal(t, 0, client.Calls(), "blacklist hit must skip the provider")
}

func TestClassifySignalVetoOverridesModelAnswer(t *testing.T) {
	// The provider ratings veto even a self-reported safe answer.
	client := memory.NewClient(safeAnswer, []moderation.CategoryRating{
		{Category: moderation.CategorySexuallyExplicit, Probability: moderation.ProbabilityHigh},
	})
	p := newPipeline(client)

	v, err := p.Classify(context.Background(), moderation.Request{Text: "의류 판매"})
	require.NoError(t, err)
	assert.False(t, v.IsSafe)
	assert.Equal(t, moderation.StageSignal, v.Stage)
}

func TestClassifyProviderFailure(t *testing.T) {
	client := memory.NewFailingClient(errors.New("connection refused"))
	p := newPipeline(client)

	// Text-only submissions pass in degraded mode.
	v, err := p.Classify(context.Background(), moderation.Request{Text: "중고 책상 팝니다"})
	require.NoError(t, err)
	assert.True(t, v.IsSafe)
	assert.Equal(t, moderation.StageFallback, v.Stage)

	// Submissions with an image are held instead.
	v, err = p.Classify(context.Background(), moderation.Request{
		Text:  "중고 책상 팝니다",
		Image: "data:image/jpeg;base64,/9j/4AAQ",
	})
	require.NoError(t, err)
	assert.False(t, v.IsSafe)
	assert.Equal(t, moderation.StageFallback, v.Stage)
}

func TestClassifyUnparsableAnswer(t *testing.T) {
	client := memory.NewClient("I am unable to respond in JSON today.", nil)
	p := newPipeline(client)

	v, err := p.Classify(context.Background(), moderation.Request{Text: "자전거 팝니다"})
	require.NoError(t, err)
	assert.True(t, v.IsSafe)
	assert.Equal(t, moderation.StageFallback, v.Stage)
	assert.Equal(t, "검사 완료 (AI 응답 불분명, 임시 승인)", v.Reason)
}

func TestClassifyFillsEmptyReason(t *testing.T) {
	client := memory.NewClient(`{"isSafe": false, "reason": ""}`, nil)
	p := newPipeline(client)

	v, err := p.Classify(context.Background(), moderation.Request{Text: "무언가"})
	require.NoError(t, err)
	assert.False(t, v.IsSafe)
	assert.Equal(t, "유해한 콘텐츠로 판정되었습니다.", v.Reason)
}

func TestClassifyContextHandling(t *testing.T) {
	client := memory.NewClient(safeAnswer, nil)
	p := newPipeline(client)

	// Empty context defaults to listing.
	_, err := p.Classify(context.Background(), moderation.Request{Text: "안녕하세요"})
	require.NoError(t, err)

	_, err = p.Classify(context.Background(), moderation.Request{
		Text:    "멋진닉네임",
		Context: moderation.ContextProfile,
	})
	require.NoError(t, err)

	// Unknown contexts are the pipeline's only error path.
	_, err = p.Classify(context.Background(), moderation.Request{
		Text:    "안녕하세요",
		Context: moderation.Context("comment"),
	})
	assert.Error(t, err)
}

// blockingClassifier hangs until the pipeline's deadline cancels it,
// simulating a provider that never answers.
type blockingClassifier struct{}

func (blockingClassifier) Classify(ctx context.Context, _ moderation.ClassifyRequest) (*moderation.ClassifyResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingClassifier) Name() string { return "blocking" }

func TestClassifyTimeoutResolvesThroughFallback(t *testing.T) {
	p := moderation.NewPipeline(
		moderation.DefaultBlacklist(),
		blockingClassifier{},
		moderation.DefaultSignalPolicy(),
		moderation.DefaultFallbackPolicy(),
		50*time.Millisecond,
	)

	start := time.Now()
	v, err := p.Classify(context.Background(), moderation.Request{Text: "중고 책상 팝니다"})
	require.NoError(t, err)
	assert.True(t, v.IsSafe)
	assert.Equal(t, moderation.StageFallback, v.Stage)
	assert.Less(t, time.Since(start), 2*time.Second, "expiry must be bounded by the configured timeout")

	v, err = p.Classify(context.Background(), moderation.Request{
		Text:  "중고 책상 팝니다",
		Image: "data:image/jpeg;base64,/9j/4AAQ",
	})
	require.NoError(t, err)
	assert.False(t, v.IsSafe)
	assert.Equal(t, moderation.StageFallback, v.Stage)
}

func TestClassifyIsIdempotent(t *testing.T) {
	client := memory.NewClient(`{"isSafe": false, "reason": "도검류 판매"}`, nil)
	p := newPipeline(client)

	req := moderation.Request{Text: "일본도 판매합니다"}
	first, err := p.Classify(context.Background(), req)
	require.NoError(t, err)
	second, err := p.Classify(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, client.Calls())
}
