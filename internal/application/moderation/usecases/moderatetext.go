package usecases

import (
	"context"

	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/shared/utils/logutil"
)

type ModerateTextCommand struct {
	ClientID    string
	Text        string
	ContentType string
}

type ModerateTextUseCase struct {
	pipeline  *Pipeline
	validator TextValidator
}

func NewModerateTextUseCase(pipeline *Pipeline, validator TextValidator) *ModerateTextUseCase {
	return &ModerateTextUseCase{
		pipeline:  pipeline,
		validator: validator,
	}
}

func (uc *ModerateTextUseCase) Execute(ctx context.Context, cmd ModerateTextCommand) (*ModerationResult, error) {
	log := uc.pipeline.logger
	log.Debugw("executing moderate text use case",
		"client_id", cmd.ClientID,
		"text", logutil.TruncateForLog(cmd.Text, 64),
	)

	if err := uc.validator.Validate(cmd.Text, cmd.ContentType); err != nil {
		log.Infow("invalid text submission", "client_id", cmd.ClientID, "error", err)
		return nil, uc.pipeline.fail(StageValidating, err)
	}

	result, err := uc.pipeline.run(ctx, cmd.ClientID, moderation.NewTextContent(cmd.Text))
	if err != nil {
		return nil, err
	}

	log.Infow("text moderated",
		"client_id", cmd.ClientID,
		"approved", result.Verdict.IsApproved,
		"reason", result.Verdict.Reason,
	)
	return result, nil
}
