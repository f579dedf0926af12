package moderation

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var textCategories = []string{
	"hate_speech",
	"harassment",
	"self_harm",
	"sexual_content",
	"violence",
	"illegal_activities",
	"personal_information",
}

func textPolicy() Policy {
	return NewPolicy(textCategories, DefaultThreshold, nil)
}

func TestDecide_ViolationAboveThreshold(t *testing.T) {
	verdict, err := Decide(Scores{"hate_speech": 0.8, "violence": 0.2}, textPolicy())
	require.NoError(t, err)

	assert.False(t, verdict.IsApproved)
	hate, ok := verdict.Categories.Get("hate_speech")
	require.True(t, ok)
	assert.True(t, hate.IsViolation)
	assert.Equal(t, 0.7, hate.Threshold)
	violence, ok := verdict.Categories.Get("violence")
	require.True(t, ok)
	assert.False(t, violence.IsViolation)
	assert.Equal(t, "Violation found in content: hate_speech", verdict.Reason)
}

func TestDecide_ScoreAtThresholdIsNotViolation(t *testing.T) {
	verdict, err := Decide(Scores{"hate_speech": 0.7}, textPolicy())
	require.NoError(t, err)

	assert.True(t, verdict.IsApproved)
	hate, _ := verdict.Categories.Get("hate_speech")
	assert.False(t, hate.IsViolation)
	assert.Equal(t, ReasonApproved, verdict.Reason)
}

func TestDecide_EvaluationOrder(t *testing.T) {
	scores := Scores{
		"violence":    0.9,
		"zeta_custom": 0.95,
		"hate_speech": 0.75,
		"alpha_extra": 0.1,
		"self_harm":   0.2,
	}

	verdict, err := Decide(scores, textPolicy())
	require.NoError(t, err)

	var names []string
	for _, cs := range verdict.Categories {
		names = append(names, cs.Category)
	}
	assert.Equal(t, []string{"hate_speech", "self_harm", "violence", "alpha_extra", "zeta_custom"}, names)
	assert.Equal(t, "Violation found in content: hate_speech, violence, zeta_custom", verdict.Reason)
}

func TestDecide_DeterministicAcrossRuns(t *testing.T) {
	scores := Scores{"b": 0.9, "a": 0.9, "c": 0.9, "violence": 0.9}
	first, err := Decide(scores, textPolicy())
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		again, err := Decide(scores, textPolicy())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDecide_PerCategoryThresholds(t *testing.T) {
	policy := NewPolicy(textCategories, 0.7, map[string]float64{"self_harm": 0.3})

	verdict, err := Decide(Scores{"self_harm": 0.4, "violence": 0.4}, policy)
	require.NoError(t, err)

	assert.False(t, verdict.IsApproved)
	selfHarm, _ := verdict.Categories.Get("self_harm")
	assert.True(t, selfHarm.IsViolation)
	assert.Equal(t, 0.3, selfHarm.Threshold)
	assert.Equal(t, "Violation found in content: self_harm", verdict.Reason)
}

func TestDecide_ApprovedIsNorOfViolations(t *testing.T) {
	policy := textPolicy()
	base := Scores{}
	for _, c := range textCategories {
		base[c] = 0.1
	}

	verdict, err := Decide(base, policy)
	require.NoError(t, err)
	require.True(t, verdict.IsApproved)

	for _, category := range textCategories {
		t.Run(category, func(t *testing.T) {
			scores := Scores{}
			for k, v := range base {
				scores[k] = v
			}
			scores[category] = 0.71

			verdict, err := Decide(scores, policy)
			require.NoError(t, err)
			assert.False(t, verdict.IsApproved)
			assert.Equal(t, []string{category}, verdict.Categories.Violations())

			// raising any other score further never restores approval
			for _, other := range textCategories {
				scores[other] = 1.0
				verdict, err = Decide(scores, policy)
				require.NoError(t, err)
				assert.False(t, verdict.IsApproved)
			}
		})
	}
}

func TestDecide_MalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		scores Scores
		policy Policy
	}{
		{name: "empty scores", scores: Scores{}, policy: textPolicy()},
		{name: "nil scores", scores: nil, policy: textPolicy()},
		{name: "NaN score", scores: Scores{"violence": math.NaN()}, policy: textPolicy()},
		{name: "infinite score", scores: Scores{"violence": math.Inf(1)}, policy: textPolicy()},
		{name: "negative score", scores: Scores{"violence": -0.1}, policy: textPolicy()},
		{name: "score above one", scores: Scores{"violence": 1.2}, policy: textPolicy()},
		{
			name:   "threshold out of range",
			scores: Scores{"violence": 0.5},
			policy: NewPolicy(textCategories, 1.5, nil),
		},
		{
			name:   "NaN override",
			scores: Scores{"violence": 0.5},
			policy: NewPolicy(textCategories, 0.7, map[string]float64{"violence": math.NaN()}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := Decide(tt.scores, tt.policy)
			assert.ErrorIs(t, err, ErrMalformedScores)
			assert.Nil(t, verdict)
		})
	}
}

func TestVerdict_MarshalPreservesOrder(t *testing.T) {
	verdict, err := Decide(Scores{"violence": 0.9, "hate_speech": 0.1}, textPolicy())
	require.NoError(t, err)

	raw, err := json.Marshal(verdict)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"is_approved": false,
		"categories": {
			"hate_speech": {"score": 0.1, "threshold": 0.7, "is_violation": false},
			"violence": {"score": 0.9, "threshold": 0.7, "is_violation": true}
		},
		"reason": "Violation found in content: violence"
	}`, string(raw))
	assert.Less(t, strings.Index(string(raw), "hate_speech"), strings.Index(string(raw), "violence"))
}

func TestPolicySet_For(t *testing.T) {
	set := PolicySet{
		Text:  textPolicy(),
		Image: NewPolicy([]string{"explicit_content"}, 0.7, nil),
	}

	p, err := set.For(ContentKindImage)
	require.NoError(t, err)
	assert.Equal(t, []string{"explicit_content"}, p.Categories)

	_, err = set.For(ContentKind("video"))
	assert.ErrorIs(t, err, ErrUnsupportedContent)
}
