package moderation

// FailureKind classifies why the remote stage produced no verdict.
type FailureKind int

const (
	// FailureUnavailable covers network, auth and provider errors,
	// including timeout expiry.
	FailureUnavailable FailureKind = iota
	// FailureUnparsable means the provider answered but no verdict
	// object could be extracted.
	FailureUnparsable
)

// FallbackPolicy resolves a verdict when the remote classifier fails.
// The shipped policy is image-conservative: text-only submissions pass
// (the blacklist already screened them) but submissions with an image
// are held, because the model was the only stage that could look at it.
type FallbackPolicy struct {
	BlockUncheckedImages bool
}

func DefaultFallbackPolicy() FallbackPolicy {
	return FallbackPolicy{BlockUncheckedImages: true}
}

// Resolve always returns a verdict; there is no failure path out of the
// fallback. Reasons are distinct per branch so a degraded-mode approval
// is never mistaken for a clean pass, and a held image is never mistaken
// for a policy block.
func (p FallbackPolicy) Resolve(kind FailureKind, hadImage bool) Verdict {
	if hadImage && p.BlockUncheckedImages {
		return Verdict{
			IsSafe: false,
			Reason: "이미지 검사를 완료하지 못해 등록이 보류되었습니다. 잠시 후 다시 시도해주세요.",
			Stage:  StageFallback,
		}
	}

	reason := "검사 시스템 지연으로 임시 승인되었습니다."
	if kind == FailureUnparsable {
		reason = "검사 완료 (AI 응답 불분명, 임시 승인)"
	}
	return Verdict{IsSafe: true, Reason: reason, Stage: StageFallback}
}
