package editor

import (
	"context"
	"time"

	models "website-editor/internal/domain/models/editor"
)

// OptionalText tracks tri-state PATCH semantics for one field.
// Transport-agnostic (no JSON tags): the handler maps from httputil.OptionalString.
//   - Present=false: field absent from request (don't change)
//   - Present=true, Value=nil: field is null (rejected, neither field is nullable)
//   - Present=true, Value=&"text": field has value
type OptionalText struct {
	Present bool
	Value   *string
}

// UpdateUiRequest is a partial update; absent fields are left unchanged
type UpdateUiRequest struct {
	Img    OptionalText
	Prompt OptionalText
}

// UpdatedUi echoes the fields that were written
type UpdatedUi struct {
	ID        string    `json:"id"`
	Img       *string   `json:"img,omitempty"`
	Prompt    *string   `json:"prompt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UiService defines operations on the UI aggregate
type UiService interface {
	// GetUiDetail retrieves a UI with owner and full revision tree.
	// requesterID may be empty; when set, Liked is filled in
	GetUiDetail(ctx context.Context, id, requesterID string) (*models.Ui, error)

	// ForkUi copies another user's UI and its whole tree into a UI owned by requesterID
	ForkUi(ctx context.Context, sourceID, requesterID string) (*models.Ui, error)

	// DeleteUi removes the aggregate; only the owner may delete
	DeleteUi(ctx context.Context, id, requesterID string) error

	// UpdateUi changes preview image and/or prompt; only the owner may update
	UpdateUi(ctx context.Context, id, requesterID string, req *UpdateUiRequest) (*UpdatedUi, error)
}
