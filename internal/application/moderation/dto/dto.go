package dto

import "github.com/orris-inc/modgate/internal/domain/moderation"

// CategoryDTO describes one moderated category and the threshold it is judged against.
type CategoryDTO struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
}

// PolicyDTO lists the categories of one content kind in evaluation order.
type PolicyDTO struct {
	ContentType      string        `json:"content_type"`
	DefaultThreshold float64       `json:"default_threshold"`
	Categories       []CategoryDTO `json:"categories"`
}

type CategoriesDTO struct {
	Text  PolicyDTO `json:"text"`
	Image PolicyDTO `json:"image"`
}

func ToPolicyDTO(kind moderation.ContentKind, policy moderation.Policy) PolicyDTO {
	categories := make([]CategoryDTO, 0, len(policy.Categories))
	for _, name := range policy.Categories {
		categories = append(categories, CategoryDTO{
			Name:      name,
			Threshold: policy.ThresholdFor(name),
		})
	}
	return PolicyDTO{
		ContentType:      kind.String(),
		DefaultThreshold: policy.DefaultThreshold,
		Categories:       categories,
	}
}
