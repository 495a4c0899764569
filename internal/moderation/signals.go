package moderation

// Category identifies a provider-side harm category. The values mirror
// the provider's wire names so ratings can be passed through untouched.
type Category string

const (
	CategoryHarassment       Category = "HARM_CATEGORY_HARASSMENT"
	CategoryHateSpeech       Category = "HARM_CATEGORY_HATE_SPEECH"
	CategorySexuallyExplicit Category = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	CategoryDangerousContent Category = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// Probability is a provider-reported risk band for one category.
type Probability string

const (
	ProbabilityNegligible Probability = "NEGLIGIBLE"
	ProbabilityLow        Probability = "LOW"
	ProbabilityMedium     Probability = "MEDIUM"
	ProbabilityHigh       Probability = "HIGH"
)

var probabilityRank = map[Probability]int{
	ProbabilityNegligible: 0,
	ProbabilityLow:        1,
	ProbabilityMedium:     2,
	ProbabilityHigh:       3,
}

// AtLeast reports whether p is in band min or a more severe one.
// Unknown bands rank below NEGLIGIBLE and never trip a threshold.
func (p Probability) AtLeast(min Probability) bool {
	pr, ok := probabilityRank[p]
	if !ok {
		return false
	}
	return pr >= probabilityRank[min]
}

// CategoryRating is one provider-reported category/band pair attached
// to a single classification response.
type CategoryRating struct {
	Category    Category
	Probability Probability
}

// SignalPolicy maps a category to the minimum probability band that
// forces an unsafe verdict. The ratings are a structurally separate
// channel from the model's self-reported JSON answer, so the policy can
// veto that answer but never approve on its behalf.
type SignalPolicy map[Category]Probability

// DefaultSignalPolicy vetoes only HIGH ratings in the two categories
// relevant to a marketplace. MEDIUM is deliberately allowed: swimwear
// listings and kitchen knives routinely land there, and the model's
// contextual judgment handles them.
func DefaultSignalPolicy() SignalPolicy {
	return SignalPolicy{
		CategorySexuallyExplicit: ProbabilityHigh,
		CategoryDangerousContent: ProbabilityHigh,
	}
}

var categoryLabels = map[Category]string{
	CategorySexuallyExplicit: "선정적인 콘텐츠",
	CategoryDangerousContent: "위험 콘텐츠",
	CategoryHarassment:       "괴롭힘 콘텐츠",
	CategoryHateSpeech:       "혐오 콘텐츠",
}

// Check inspects the provider ratings against the policy and returns a
// hard-block verdict on the first threshold hit. Categories absent from
// the policy are ignored regardless of band.
func (p SignalPolicy) Check(ratings []CategoryRating) (Verdict, bool) {
	for _, r := range ratings {
		min, watched := p[r.Category]
		if !watched || !r.Probability.AtLeast(min) {
			continue
		}
		label := categoryLabels[r.Category]
		if label == "" {
			label = "유해 콘텐츠"
		}
		return Verdict{
			IsSafe: false,
			Reason: label + "가 감지되어 등록할 수 없습니다.",
			Stage:  StageSignal,
		}, true
	}
	return Verdict{}, false
}
