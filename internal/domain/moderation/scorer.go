package moderation

import (
	"context"
	"errors"
)

// ErrScorerUnavailable is returned by a Scorer that cannot produce scores,
// for example because its backend is not configured or not reachable.
var ErrScorerUnavailable = errors.New("category scorer unavailable")

// Scores maps a category name to a risk score in [0,1].
type Scores map[string]float64

// Clone returns a copy that can be mutated independently of s.
func (s Scores) Clone() Scores {
	if s == nil {
		return nil
	}
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Scorer produces per-category risk scores for a piece of content. It is the
// only slow collaborator in a moderation request and must honour ctx.
type Scorer interface {
	Score(ctx context.Context, content Content) (Scores, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, content Content) (Scores, error)

func (f ScorerFunc) Score(ctx context.Context, content Content) (Scores, error) {
	return f(ctx, content)
}
