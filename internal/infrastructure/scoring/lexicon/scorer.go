package lexicon

import (
	"context"
	"fmt"
	"math"

	"github.com/orris-inc/modgate/internal/domain/moderation"
)

// Scorer scores text against a Lexicon. It reports every configured category,
// with zero for categories that have no matching rule.
type Scorer struct {
	lex        *Lexicon
	categories []string
}

// NewScorer creates a lexicon scorer. When categories is empty the lexicon's
// own categories are reported.
func NewScorer(lex *Lexicon, categories []string) *Scorer {
	if len(categories) == 0 {
		categories = lex.Categories()
	}
	return &Scorer{lex: lex, categories: categories}
}

func (s *Scorer) Score(ctx context.Context, content moderation.Content) (moderation.Scores, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if content.Kind != moderation.ContentKindText {
		return nil, fmt.Errorf("%w: lexicon scorer cannot score %s content", moderation.ErrScorerUnavailable, content.Kind)
	}

	plain := PlainText(content.Text)
	window := tokenWindow(Tokenize(plain))

	scores := make(moderation.Scores, len(s.categories))
	for _, category := range s.categories {
		scores[category] = round(s.lex.score(category, plain, window))
	}
	return scores, nil
}

// round trims floating point noise from combined weights.
func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
