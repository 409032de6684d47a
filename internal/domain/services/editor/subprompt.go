package editor

import (
	"context"

	models "website-editor/internal/domain/models/editor"
)

// CreateSubPromptRequest appends a revision under ParentSubID
type CreateSubPromptRequest struct {
	UserID      string  `json:"-"`
	UiID        string  `json:"uiId"`
	SubPrompt   string  `json:"subPrompt"`
	ParentSubID string  `json:"parentSubId"`
	Code        string  `json:"code"`
	ModelID     *string `json:"modelId"`
}

// SubPromptService defines revision operations
type SubPromptService interface {
	// GetSubPrompt retrieves a revision with its code
	GetSubPrompt(ctx context.Context, id string) (*models.SubPrompt, error)

	// GetCode retrieves a code payload
	GetCode(ctx context.Context, id string) (*models.Code, error)

	// CreateSubPrompt allocates a sub_id and stores the revision and its code atomically
	CreateSubPrompt(ctx context.Context, req *CreateSubPromptRequest) (*models.SubPrompt, error)
}
