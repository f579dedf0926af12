package usecases

import (
	"context"

	"github.com/orris-inc/modgate/internal/domain/moderation"
)

type ModerateImageCommand struct {
	ClientID  string
	Data      []byte
	MediaType string
	Filename  string
}

type ModerateImageUseCase struct {
	pipeline  *Pipeline
	validator ImageValidator
}

func NewModerateImageUseCase(pipeline *Pipeline, validator ImageValidator) *ModerateImageUseCase {
	return &ModerateImageUseCase{
		pipeline:  pipeline,
		validator: validator,
	}
}

func (uc *ModerateImageUseCase) Execute(ctx context.Context, cmd ModerateImageCommand) (*ModerationResult, error) {
	log := uc.pipeline.logger
	log.Debugw("executing moderate image use case",
		"client_id", cmd.ClientID,
		"filename", cmd.Filename,
		"media_type", cmd.MediaType,
		"size", len(cmd.Data),
	)

	if err := uc.validator.Validate(cmd.Data, cmd.MediaType, cmd.Filename); err != nil {
		log.Infow("invalid image upload", "client_id", cmd.ClientID, "filename", cmd.Filename, "error", err)
		return nil, uc.pipeline.fail(StageValidating, err)
	}

	content := moderation.NewImageContent(cmd.Data, normalizeMediaType(cmd.MediaType), cmd.Filename)
	result, err := uc.pipeline.run(ctx, cmd.ClientID, content)
	if err != nil {
		return nil, err
	}

	log.Infow("image moderated",
		"client_id", cmd.ClientID,
		"filename", cmd.Filename,
		"approved", result.Verdict.IsApproved,
		"reason", result.Verdict.Reason,
	)
	return result, nil
}
