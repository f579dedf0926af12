package moderation

import (
	"github.com/orris-inc/modgate/internal/application/moderation/usecases"
	"github.com/orris-inc/modgate/internal/domain/moderation"
)

// ModerateTextRequest is the body of POST /api/v1/moderate/text.
type ModerateTextRequest struct {
	Text        string `json:"text" validate:"required" example:"Have a wonderful day"`
	ContentType string `json:"content_type" validate:"omitempty,eq=text" example:"text"`
}

func (r *ModerateTextRequest) ToCommand(clientID string) usecases.ModerateTextCommand {
	return usecases.ModerateTextCommand{
		ClientID:    clientID,
		Text:        r.Text,
		ContentType: r.ContentType,
	}
}

// VerdictResponse documents the success payload. The handler renders
// moderation.Verdict directly.
type VerdictResponse struct {
	IsApproved bool                                `json:"is_approved"`
	Categories map[string]moderation.CategoryScore `json:"categories"`
	Reason     string                              `json:"reason"`
}
