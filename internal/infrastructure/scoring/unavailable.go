package scoring

import (
	"context"
	"fmt"

	"github.com/orris-inc/modgate/internal/domain/moderation"
)

// Unavailable is the scorer used for a content kind with no backend configured.
type Unavailable struct{}

func (Unavailable) Score(_ context.Context, content moderation.Content) (moderation.Scores, error) {
	return nil, fmt.Errorf("%w: scoring backend for %s content is not initialised", moderation.ErrScorerUnavailable, content.Kind)
}
