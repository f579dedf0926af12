// Package usecases implements the moderation request pipeline:
// validating, rate limiting, scoring, deciding and responding.
package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/infrastructure/metrics"
	"github.com/orris-inc/modgate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/modgate/internal/shared/errors"
	"github.com/orris-inc/modgate/internal/shared/goroutine"
	"github.com/orris-inc/modgate/internal/shared/logger"
)

// Pipeline stages, used as the stage label of the error metric.
const (
	StageValidating   = "validating"
	StageRateLimiting = "rate_limiting"
	StageScoring      = "scoring"
	StageDeciding     = "deciding"
)

// DefaultScoringTimeout bounds a scorer call when none is configured.
const DefaultScoringTimeout = 10 * time.Second

var errScorerPanicked = stderrors.New("category scorer panicked")

// ModerationResult is what the responding stage hands to the transport.
type ModerationResult struct {
	Verdict   *moderation.Verdict
	Timestamp time.Time
}

// Pipeline runs the stages shared by every content kind after validation.
type Pipeline struct {
	limiter        ratelimit.Limiter
	scorer         moderation.Scorer
	policies       moderation.PolicySet
	scoringTimeout time.Duration
	now            func() time.Time
	logger         logger.Interface
}

func NewPipeline(
	limiter ratelimit.Limiter,
	scorer moderation.Scorer,
	policies moderation.PolicySet,
	scoringTimeout time.Duration,
	logger logger.Interface,
) *Pipeline {
	if scoringTimeout <= 0 {
		scoringTimeout = DefaultScoringTimeout
	}
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	return &Pipeline{
		limiter:        limiter,
		scorer:         scorer,
		policies:       policies,
		scoringTimeout: scoringTimeout,
		now:            time.Now,
		logger:         logger,
	}
}

// Policies returns the policy set the pipeline judges with.
func (p *Pipeline) Policies() moderation.PolicySet {
	return p.policies
}

// run executes rate limiting, scoring, deciding and responding for content that
// already passed validation. The first failing stage ends the request.
func (p *Pipeline) run(ctx context.Context, clientID string, content moderation.Content) (*ModerationResult, error) {
	now := p.now()

	if err := p.admit(ctx, clientID, now); err != nil {
		return nil, p.fail(StageRateLimiting, err)
	}

	scores, err := p.score(ctx, content)
	if err != nil {
		return nil, p.fail(StageScoring, err)
	}

	verdict, err := p.decide(content.Kind, scores)
	if err != nil {
		return nil, p.fail(StageDeciding, err)
	}

	p.record(content.Kind, verdict)

	return &ModerationResult{
		Verdict:   verdict,
		Timestamp: now.UTC(),
	}, nil
}

func (p *Pipeline) admit(ctx context.Context, clientID string, now time.Time) error {
	// The admission record stands even if the caller goes away mid-request.
	decision, err := p.limiter.Admit(context.WithoutCancel(ctx), clientID, now)
	if err != nil {
		p.logger.Errorw("rate limiter failed", "client_id", clientID, "error", err)
		return errors.NewInternalError("Failed to check rate limit", err.Error())
	}

	switch {
	case !decision.Allowed:
		metrics.AdmissionDecisions.WithLabelValues("denied").Inc()
		p.logger.Infow("rate limit exceeded",
			"client_id", clientID,
			"limit", decision.Limit,
			"retry_after", decision.RetryAfter,
		)
		return errors.NewRateLimitError(decision.RetryAfter)
	case decision.Degraded:
		metrics.AdmissionDecisions.WithLabelValues("degraded").Inc()
	default:
		metrics.AdmissionDecisions.WithLabelValues("allowed").Inc()
	}
	return nil
}

type scoreResult struct {
	scores moderation.Scores
	err    error
}

// score calls the scorer under the scoring timeout. A scorer that ignores its
// context is abandoned once the timeout fires.
func (p *Pipeline) score(ctx context.Context, content moderation.Content) (moderation.Scores, error) {
	scoreCtx, cancel := context.WithTimeout(ctx, p.scoringTimeout)
	defer cancel()

	if err := scoreCtx.Err(); err != nil {
		p.logger.Warnw("request ended before scoring", "kind", content.Kind.String(), "error", err)
		return nil, errors.NewScoringUnavailableError("Content scoring is temporarily unavailable")
	}

	resultCh := make(chan scoreResult, 1)
	done := goroutine.SafeGo(p.logger, "category-scorer", func() {
		scores, err := p.scorer.Score(scoreCtx, content)
		resultCh <- scoreResult{scores: scores, err: err}
	})

	var res scoreResult
	select {
	case res = <-resultCh:
	case <-done:
		select {
		case res = <-resultCh:
		default:
			res.err = errScorerPanicked
		}
	case <-scoreCtx.Done():
		res.err = scoreCtx.Err()
	}

	if res.err != nil {
		p.logger.Warnw("category scoring failed",
			"kind", content.Kind.String(),
			"timeout", p.scoringTimeout,
			"error", res.err,
		)
		return nil, errors.NewScoringUnavailableError("Content scoring is temporarily unavailable")
	}
	return res.scores, nil
}

func (p *Pipeline) decide(kind moderation.ContentKind, scores moderation.Scores) (*moderation.Verdict, error) {
	policy, err := p.policies.For(kind)
	if err != nil {
		p.logger.Errorw("no policy for content kind", "kind", kind.String(), "error", err)
		return nil, errors.NewInternalError("Failed to evaluate content")
	}

	verdict, err := moderation.Decide(scores, policy)
	if err != nil {
		p.logger.Errorw("failed to decide verdict", "kind", kind.String(), "error", err)
		return nil, errors.NewInternalError("Failed to evaluate content", err.Error())
	}
	return verdict, nil
}

func (p *Pipeline) record(kind moderation.ContentKind, verdict *moderation.Verdict) {
	outcome := "approved"
	if !verdict.IsApproved {
		outcome = "rejected"
	}
	metrics.Verdicts.WithLabelValues(kind.String(), outcome).Inc()
	for _, category := range verdict.Categories.Violations() {
		metrics.CategoryViolations.WithLabelValues(kind.String(), category).Inc()
	}
}

// fail counts err against stage and passes it through.
func (p *Pipeline) fail(stage string, err error) error {
	errType := string(errors.ErrorTypeInternal)
	if appErr := errors.GetAppError(err); appErr != nil {
		errType = string(appErr.Type)
	}
	metrics.PipelineErrors.WithLabelValues(stage, errType).Inc()
	return err
}
