// Package scoring assembles the configured category scorers and the
// decorators shared by all of them.
package scoring

import (
	"context"
	"fmt"

	"github.com/orris-inc/modgate/internal/domain/moderation"
)

// Router dispatches content to the scorer registered for its kind.
type Router struct {
	routes map[moderation.ContentKind]moderation.Scorer
}

func NewRouter(routes map[moderation.ContentKind]moderation.Scorer) *Router {
	r := &Router{routes: make(map[moderation.ContentKind]moderation.Scorer, len(routes))}
	for kind, s := range routes {
		r.routes[kind] = s
	}
	return r
}

func (r *Router) Score(ctx context.Context, content moderation.Content) (moderation.Scores, error) {
	s, ok := r.routes[content.Kind]
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: no scorer for %s content", moderation.ErrScorerUnavailable, content.Kind)
	}
	return s.Score(ctx, content)
}
