package editor

import (
	"context"

	models "website-editor/internal/domain/models/editor"
)

// SubPromptRepository defines data access for revisions and their codes
type SubPromptRepository interface {
	// GetByID retrieves a subprompt with its code
	// Returns domain.ErrNotFound if not found
	GetByID(ctx context.Context, id string) (*models.SubPrompt, error)

	// ListByUiID retrieves every subprompt of a UI with codes, ordered by created_at, sub_id
	// Returns empty slice if the UI has no revisions
	ListByUiID(ctx context.Context, uiID string) ([]models.SubPrompt, error)

	// ListSubIDs returns every sub_id already used within a UI
	ListSubIDs(ctx context.Context, uiID string) ([]string, error)

	// CreateWithCode inserts the subprompt and then its code (sp.Code must be set).
	// Callers wrap it in a transaction so both rows exist or neither does.
	// Returns *domain.ConflictError when (ui_id, sub_id) is already taken
	CreateWithCode(ctx context.Context, sp *models.SubPrompt) error

	// CopyTree copies every subprompt of sourceUiID, with its code, into targetUiID.
	// sub_id, prompt text, model and created_at are kept verbatim. Returns rows copied.
	CopyTree(ctx context.Context, sourceUiID, targetUiID string) (int, error)

	// GetCode retrieves a code payload by its own ID
	// Returns domain.ErrNotFound if not found
	GetCode(ctx context.Context, id string) (*models.Code, error)
}
