package moderation

import (
	"fmt"
	"strings"
)

const (
	// ReasonApproved is the reason attached to every approved verdict.
	ReasonApproved = "Content approved"

	reasonViolationPrefix = "Violation found in content: "
)

// Decide turns scores into a verdict under policy. It is a pure function:
// a category is a violation only when its score is strictly greater than its
// threshold, and the verdict is approved only when no category is a violation.
func Decide(scores Scores, policy Policy) (*Verdict, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: no category scores", ErrMalformedScores)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	order := policy.evaluationOrder(scores)
	categories := make(Categories, 0, len(order))
	for _, category := range order {
		score := scores[category]
		if !inUnitInterval(score) {
			return nil, fmt.Errorf("%w: score %v for %q outside [0,1]", ErrMalformedScores, score, category)
		}
		threshold := policy.ThresholdFor(category)
		categories = append(categories, CategoryScore{
			Category:    category,
			Score:       score,
			Threshold:   threshold,
			IsViolation: score > threshold,
		})
	}

	violations := categories.Violations()
	verdict := &Verdict{
		IsApproved: len(violations) == 0,
		Categories: categories,
		Reason:     ReasonApproved,
	}
	if !verdict.IsApproved {
		verdict.Reason = reasonViolationPrefix + strings.Join(violations, ", ")
	}
	return verdict, nil
}
