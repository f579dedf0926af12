package usecases

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/modgate/internal/shared/logger"
)

type mockLimiter struct {
	AdmitFunc func(ctx context.Context, clientID string, now time.Time) (ratelimit.Decision, error)
	ResetFunc func(ctx context.Context, clientID string) error

	admitCalls atomic.Int32
}

func (m *mockLimiter) Admit(ctx context.Context, clientID string, now time.Time) (ratelimit.Decision, error) {
	m.admitCalls.Add(1)
	if m.AdmitFunc != nil {
		return m.AdmitFunc(ctx, clientID, now)
	}
	return ratelimit.Decision{Allowed: true, Limit: 60, Remaining: 59}, nil
}

func (m *mockLimiter) Reset(ctx context.Context, clientID string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, clientID)
	}
	return nil
}

type mockScorer struct {
	ScoreFunc func(ctx context.Context, content moderation.Content) (moderation.Scores, error)

	calls atomic.Int32
}

func (m *mockScorer) Score(ctx context.Context, content moderation.Content) (moderation.Scores, error) {
	m.calls.Add(1)
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, content)
	}
	return moderation.Scores{}, nil
}

func scoresOf(scores moderation.Scores) *mockScorer {
	return &mockScorer{
		ScoreFunc: func(context.Context, moderation.Content) (moderation.Scores, error) {
			return scores.Clone(), nil
		},
	}
}

type mockLogger struct {
	InfowFunc  func(msg string, keysAndValues ...any)
	WarnwFunc  func(msg string, keysAndValues ...any)
	ErrorwFunc func(msg string, keysAndValues ...any)
}

func (m *mockLogger) Debug(msg string, args ...any)      {}
func (m *mockLogger) Info(msg string, args ...any)       {}
func (m *mockLogger) Warn(msg string, args ...any)       {}
func (m *mockLogger) Error(msg string, args ...any)      {}
func (m *mockLogger) Fatal(msg string, args ...any)      {}
func (m *mockLogger) With(args ...any) logger.Interface  { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}

func (m *mockLogger) Infow(msg string, keysAndValues ...any) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...any) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Fatalw(msg string, keysAndValues ...any) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}
