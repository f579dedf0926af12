package usecases

import (
	"context"

	"github.com/orris-inc/modgate/internal/application/moderation/dto"
	"github.com/orris-inc/modgate/internal/domain/moderation"
)

type ListCategoriesUseCase struct {
	policies moderation.PolicySet
}

func NewListCategoriesUseCase(policies moderation.PolicySet) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{policies: policies}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) (*dto.CategoriesDTO, error) {
	return &dto.CategoriesDTO{
		Text:  dto.ToPolicyDTO(moderation.ContentKindText, uc.policies.Text),
		Image: dto.ToPolicyDTO(moderation.ContentKindImage, uc.policies.Image),
	}, nil
}
