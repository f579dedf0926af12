package usecases

import (
	"context"

	"github.com/orris-inc/modgate/internal/application/moderation/dto"
)

type ModerateTextExecutor interface {
	Execute(ctx context.Context, cmd ModerateTextCommand) (*ModerationResult, error)
}

type ModerateImageExecutor interface {
	Execute(ctx context.Context, cmd ModerateImageCommand) (*ModerationResult, error)
}

type ListCategoriesExecutor interface {
	Execute(ctx context.Context) (*dto.CategoriesDTO, error)
}
