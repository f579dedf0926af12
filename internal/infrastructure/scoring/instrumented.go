package scoring

import (
	"context"
	"errors"
	"time"

	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/infrastructure/metrics"
)

const (
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeTimeout = "timeout"
)

// Instrumented records call duration and outcome of a named scorer.
type Instrumented struct {
	name  string
	inner moderation.Scorer
}

func NewInstrumented(name string, inner moderation.Scorer) *Instrumented {
	return &Instrumented{name: name, inner: inner}
}

func (s *Instrumented) Score(ctx context.Context, content moderation.Content) (moderation.Scores, error) {
	start := time.Now()
	scores, err := s.inner.Score(ctx, content)

	kind := content.Kind.String()
	metrics.ScoringDuration.WithLabelValues(s.name, kind).Observe(time.Since(start).Seconds())
	metrics.ScoringCalls.WithLabelValues(s.name, kind, callOutcome(err)).Inc()

	return scores, err
}

func callOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	default:
		return outcomeError
	}
}
