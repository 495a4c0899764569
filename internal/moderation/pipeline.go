package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const defaultTimeout = 20 * time.Second

// Pipeline is the layered content-safety gate: normalizer → blacklist →
// remote classifier → provider signal check → verdict parser, with the
// fallback policy catching every remote failure. All configuration is
// read-only after construction, so a single Pipeline serves concurrent
// requests without locking.
type Pipeline struct {
	blacklist *Blacklist
	client    Classifier
	signals   SignalPolicy
	fallback  FallbackPolicy
	timeout   time.Duration
}

func NewPipeline(blacklist *Blacklist, client Classifier, signals SignalPolicy, fallback FallbackPolicy, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Pipeline{
		blacklist: blacklist,
		client:    client,
		signals:   signals,
		fallback:  fallback,
		timeout:   timeout,
	}
}

// Classify produces exactly one verdict per request. The only error
// return is a caller programming mistake (unknown context); transient
// provider failures always resolve to a concrete verdict through the
// fallback policy instead of propagating.
func (p *Pipeline) Classify(ctx context.Context, req Request) (Verdict, error) {
	if req.Context == "" {
		req.Context = ContextListing
	}
	if err := req.Context.Validate(); err != nil {
		return Verdict{}, err
	}

	if term, ok := p.blacklist.Match(Normalize(req.Text)); ok {
		slog.Warn("blacklist hit", "term", term, "context", req.Context)
		return Verdict{
			IsSafe: false,
			Reason: fmt.Sprintf("부적절한 단어(%q)가 포함되어 있습니다.", term),
			Stage:  StageBlacklist,
		}, nil
	}

	hadImage := req.Image != ""
	creq := ClassifyRequest{
		Rubric: BuildRubric(req.Context, req.Text, hadImage),
		Text:   req.Text,
	}
	if hadImage {
		creq.ImageData, creq.ImageMIME = SplitImagePayload(req.Image)
	}

	// The sole suspension point. Timeout expiry is indistinguishable
	// from any other provider failure.
	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.Classify(cctx, creq)
	if err != nil {
		slog.Warn("classifier unavailable", "provider", p.client.Name(), "error", err, "had_image", hadImage)
		return p.fallback.Resolve(FailureUnavailable, hadImage), nil
	}

	if v, vetoed := p.signals.Check(resp.Ratings); vetoed {
		slog.Warn("provider signal veto", "provider", p.client.Name(), "reason", v.Reason)
		return v, nil
	}

	v, err := ExtractVerdict(resp.Answer)
	if err != nil {
		slog.Warn("unparsable classifier answer", "provider", p.client.Name(), "had_image", hadImage)
		return p.fallback.Resolve(FailureUnparsable, hadImage), nil
	}
	if v.Reason == "" {
		if v.IsSafe {
			v.Reason = "검사를 통과했습니다."
		} else {
			v.Reason = "유해한 콘텐츠로 판정되었습니다."
		}
	}
	return v, nil
}
