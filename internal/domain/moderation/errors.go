package moderation

import "errors"

var (
	// ErrMalformedScores is returned by Decide when the score map or the
	// policy thresholds cannot be evaluated.
	ErrMalformedScores = errors.New("malformed category scores")

	// ErrUnsupportedContent is returned for a content kind with no policy.
	ErrUnsupportedContent = errors.New("unsupported content kind")
)
