package editor

import (
	"context"

	models "website-editor/internal/domain/models/editor"
)

// FeedRepository defines the read-only listings over UI rows.
// Listed UIs carry their owner but never their revisions.
type FeedRepository interface {
	// List returns UIs ordered and filtered per query (query must be validated)
	List(ctx context.Context, query *models.FeedQuery) ([]models.Ui, error)

	// ListRecentlyUpdated returns UIs ordered by updated_at DESC
	ListRecentlyUpdated(ctx context.Context, limit int, publicOnly bool) ([]models.Ui, error)

	// ListByOwner returns a user's UIs, newest first
	ListByOwner(ctx context.Context, ownerID string, start, limit int, publicOnly bool) ([]models.Ui, error)

	// ListLikedBy returns UIs the user liked, most recent like first
	ListLikedBy(ctx context.Context, userID string, start, limit int) ([]models.Ui, error)
}
