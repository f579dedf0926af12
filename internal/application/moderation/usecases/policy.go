package usecases

import (
	"github.com/orris-inc/modgate/internal/domain/moderation"
	sharedConfig "github.com/orris-inc/modgate/internal/shared/config"
)

// PoliciesFromConfig builds the per-kind policies from moderation settings.
// Per-category overrides apply to whichever kind scores that category.
func PoliciesFromConfig(cfg sharedConfig.ModerationConfig) moderation.PolicySet {
	return moderation.PolicySet{
		Text:  moderation.NewPolicy(cfg.TextCategories, cfg.DefaultThreshold, cfg.Thresholds),
		Image: moderation.NewPolicy(cfg.ImageCategories, cfg.DefaultThreshold, cfg.Thresholds),
	}
}

func TextValidatorFromConfig(cfg sharedConfig.ModerationConfig) TextValidator {
	return TextValidator{
		MinLength: cfg.TextMinLength,
		MaxLength: cfg.TextMaxLength,
	}
}

func ImageValidatorFromConfig(cfg sharedConfig.UploadConfig) ImageValidator {
	return ImageValidator{
		MaxSize:           cfg.MaxSize,
		AllowedTypes:      cfg.AllowedTypes,
		AllowedExtensions: cfg.AllowedExtensions,
	}
}
