package moderation

import (
	"fmt"
	"math"
	"slices"
)

// DefaultThreshold is the global threshold applied when none is configured.
const DefaultThreshold = 0.7

// Policy fixes how scores are judged for one content kind.
type Policy struct {
	// Categories is the evaluation order. Scored categories missing from it
	// are evaluated afterwards in lexical order.
	Categories []string
	// DefaultThreshold applies to every category without an override.
	DefaultThreshold float64
	// Thresholds holds per-category overrides.
	Thresholds map[string]float64
}

// NewPolicy copies its inputs so later mutation by the caller has no effect.
func NewPolicy(categories []string, defaultThreshold float64, overrides map[string]float64) Policy {
	thresholds := make(map[string]float64, len(overrides))
	for k, v := range overrides {
		thresholds[k] = v
	}
	return Policy{
		Categories:       slices.Clone(categories),
		DefaultThreshold: defaultThreshold,
		Thresholds:       thresholds,
	}
}

// ThresholdFor returns the threshold applied to category.
func (p Policy) ThresholdFor(category string) float64 {
	if t, ok := p.Thresholds[category]; ok {
		return t
	}
	return p.DefaultThreshold
}

// Validate checks that every threshold is a unit-interval number.
func (p Policy) Validate() error {
	if !inUnitInterval(p.DefaultThreshold) {
		return fmt.Errorf("%w: default threshold %v outside [0,1]", ErrMalformedScores, p.DefaultThreshold)
	}
	for category, t := range p.Thresholds {
		if !inUnitInterval(t) {
			return fmt.Errorf("%w: threshold %v for %q outside [0,1]", ErrMalformedScores, t, category)
		}
	}
	return nil
}

// evaluationOrder lists the categories of scores in the order they are judged.
func (p Policy) evaluationOrder(scores Scores) []string {
	order := make([]string, 0, len(scores))
	seen := make(map[string]struct{}, len(scores))
	for _, category := range p.Categories {
		if _, ok := scores[category]; !ok {
			continue
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		order = append(order, category)
	}

	var extra []string
	for category := range scores {
		if _, ok := seen[category]; !ok {
			extra = append(extra, category)
		}
	}
	slices.Sort(extra)

	return append(order, extra...)
}

func inUnitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// PolicySet holds the policy for each content kind.
type PolicySet struct {
	Text  Policy
	Image Policy
}

// For returns the policy that judges content of kind.
func (s PolicySet) For(kind ContentKind) (Policy, error) {
	switch kind {
	case ContentKindText:
		return s.Text, nil
	case ContentKindImage:
		return s.Image, nil
	default:
		return Policy{}, fmt.Errorf("%w: %q", ErrUnsupportedContent, kind)
	}
}
