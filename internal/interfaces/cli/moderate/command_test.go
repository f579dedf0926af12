package moderate

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/modgate/internal/application/moderation/usecases"
	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/shared/errors"
)

type mockTextUC struct {
	lastCmd usecases.ModerateTextCommand
	result  *usecases.ModerationResult
	err     error
}

func (m *mockTextUC) Execute(_ context.Context, cmd usecases.ModerateTextCommand) (*usecases.ModerationResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockImageUC struct {
	lastCmd usecases.ModerateImageCommand
	result  *usecases.ModerationResult
	err     error
}

func (m *mockImageUC) Execute(_ context.Context, cmd usecases.ModerateImageCommand) (*usecases.ModerationResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func resultWith(approved bool) *usecases.ModerationResult {
	return &usecases.ModerationResult{
		Verdict: &moderation.Verdict{
			IsApproved: approved,
			Categories: moderation.Categories{},
			Reason:     "Content approved",
		},
		Timestamp: fixedTime,
	}
}

type envelope struct {
	Status string `json:"status"`
	Data   struct {
		IsApproved bool   `json:"is_approved"`
		Reason     string `json:"reason"`
	} `json:"data"`
	Error *struct {
		Type string `json:"type"`
	} `json:"error"`
	RetryAfterSeconds int `json:"retry_after_seconds"`
}

func decode(t *testing.T, buf *bytes.Buffer) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	return env
}

func TestModerator_Text(t *testing.T) {
	tests := []struct {
		name       string
		result     *usecases.ModerationResult
		err        error
		wantErr    error
		wantStatus string
		wantType   string
	}{
		{
			name:       "approved",
			result:     resultWith(true),
			wantStatus: "success",
		},
		{
			name:       "rejected",
			result:     resultWith(false),
			wantErr:    ErrRejected,
			wantStatus: "success",
		},
		{
			name:       "rate limited",
			err:        errors.NewRateLimitError(time.Minute),
			wantErr:    ErrRetryable,
			wantStatus: "error",
			wantType:   "rate_limit_exceeded",
		},
		{
			name:       "scorer unavailable",
			err:        errors.NewScoringUnavailableError("Content scoring is temporarily unavailable"),
			wantErr:    ErrRetryable,
			wantStatus: "error",
			wantType:   "scoring_unavailable",
		},
		{
			name:       "internal",
			err:        errors.NewInternalError("Failed to evaluate content"),
			wantErr:    ErrRejected,
			wantStatus: "error",
			wantType:   "internal_error",
		},
		{
			name:       "validation",
			err:        errors.NewValidationError("Text content is required"),
			wantErr:    ErrRejected,
			wantStatus: "error",
			wantType:   "validation_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			textUC := &mockTextUC{result: tt.result, err: tt.err}
			var out bytes.Buffer
			m := &moderator{text: textUC, out: &out, now: func() time.Time { return fixedTime }}

			err := m.moderateText(context.Background(), "cli:test", "hello")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, "cli:test", textUC.lastCmd.ClientID)
			assert.Equal(t, "hello", textUC.lastCmd.Text)

			env := decode(t, &out)
			assert.Equal(t, tt.wantStatus, env.Status)
			if tt.wantType != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantType, env.Error.Type)
			}
		})
	}
}

func TestModerator_RateLimitedCarriesRetryAfter(t *testing.T) {
	var out bytes.Buffer
	m := &moderator{
		text: &mockTextUC{err: errors.NewRateLimitError(time.Minute)},
		out:  &out,
		now:  func() time.Time { return fixedTime },
	}

	require.ErrorIs(t, m.moderateText(context.Background(), "cli:test", "hello"), ErrRetryable)
	assert.Equal(t, 60, decode(t, &out).RetryAfterSeconds)
}

func TestModerator_ImageDetectsMediaType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	imageUC := &mockImageUC{result: resultWith(true)}
	var out bytes.Buffer
	m := &moderator{image: imageUC, out: &out, now: func() time.Time { return fixedTime }}

	err := m.moderateImage(context.Background(), "cli:test", png, "photo.png")

	require.NoError(t, err)
	assert.Equal(t, "image/png", imageUC.lastCmd.MediaType)
	assert.Equal(t, "photo.png", imageUC.lastCmd.Filename)
	assert.Equal(t, png, imageUC.lastCmd.Data)

	env := decode(t, &out)
	assert.Equal(t, "success", env.Status)
	assert.True(t, env.Data.IsApproved)
}
