package editor

import (
	"context"

	models "website-editor/internal/domain/models/editor"
)

// UiRepository defines data access for UI rows
type UiRepository interface {
	// Create inserts a new UI and fills in ID, CreatedAt and UpdatedAt
	Create(ctx context.Context, ui *models.Ui) error

	// GetByID retrieves a UI with its owner attached (no revisions)
	// Returns domain.ErrNotFound if not found
	GetByID(ctx context.Context, id string) (*models.Ui, error)

	// Update applies the non-nil fields of update and returns the stored row
	// Returns domain.ErrNotFound if not found
	Update(ctx context.Context, id string, update *models.UiUpdate) (*models.Ui, error)

	// Delete removes the UI; subprompts, codes and likes cascade
	// Returns domain.ErrNotFound if not found
	Delete(ctx context.Context, id string) error

	// LockForUpdate takes a row lock on the UI for the current transaction.
	// Serializes revision allocation per UI. Returns domain.ErrNotFound if not found
	LockForUpdate(ctx context.Context, id string) error
}
